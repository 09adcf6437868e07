package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/rtshim/pkg/daemon"
	"github.com/charlie0129/rtshim/pkg/platform"
	"github.com/charlie0129/rtshim/pkg/power"
	"github.com/charlie0129/rtshim/pkg/version"
)

// NewDaemonCommand runs the daemon that every other command talks to.
func NewDaemonCommand() *cobra.Command {
	var opts daemon.Options

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run rtshim daemon in the foreground",
		Long: `Run rtshim daemon in the foreground.

The daemon reads its settings from the config file and reloads them on
SIGHUP or when the file changes. --backend and --poll-interval take
precedence over the config file for as long as the daemon runs.`,
		GroupID: gAdvanced,
		Args:    cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			opts.ConfigPath = configPath
			opts.SocketPath = unixSocketPath
			return opts.Validate()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			fields := logrus.Fields{
				"version":  version.Version,
				"commit":   version.GitCommit,
				"platform": platform.Current().String(),
				"socket":   opts.SocketPath,
			}
			if opts.Backend != "" {
				fields["backendOverride"] = opts.Backend
			}
			logrus.WithFields(fields).Info("rtshim daemon starting")

			return daemon.Run(opts)
		},
	}

	f := cmd.Flags()

	f.StringVar(&opts.Backend, "backend", "",
		fmt.Sprintf("Power backend to use instead of the configured one (%s).", strings.Join(power.BackendNames(), ", ")))
	f.DurationVar(&opts.PollInterval, "poll-interval", 0,
		"Charge sampling interval for polling backends. Overrides the config file when set.")
	f.BoolVar(&opts.AllowNonRoot, "always-allow-non-root-access", false,
		"Always allow non-root users to access the daemon.")

	return cmd
}
