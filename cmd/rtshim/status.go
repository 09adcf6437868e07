package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/rtshim/pkg/config"
	"github.com/charlie0129/rtshim/pkg/power"
)

type statusData struct {
	report *power.Report
	config *config.RawFileConfig
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	c := newClient()

	r, err := c.GetBattery()
	if err != nil {
		return nil, fmt.Errorf("failed to get battery status: %w", err)
	}

	conf, err := c.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &statusData{
		report: r,
		config: conf,
	}, nil
}

type statusJSON struct {
	Battery       *power.Report    `json:"battery"`
	Configuration statusConfigJSON `json:"configuration"`
}

type statusConfigJSON struct {
	Backend             string `json:"backend"`
	PollIntervalSeconds int    `json:"pollIntervalSeconds"`
	ManifestPath        string `json:"manifestPath"`
	ResourcesDir        string `json:"resourcesDir"`
	Locale              string `json:"locale"`
	AllowNonRootAccess  bool   `json:"allowNonRootAccess"`
}

func NewStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current battery status",
		Long:    `Get battery status, power supply status and the daemon configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			cfg := config.NewFileFromConfig(data.config, "")

			if asJSON {
				out := statusJSON{
					Battery: data.report,
					Configuration: statusConfigJSON{
						Backend:             cfg.Backend(),
						PollIntervalSeconds: int(cfg.PollInterval().Seconds()),
						ManifestPath:        cfg.ManifestPath(),
						ResourcesDir:        cfg.ResourcesDir(),
						Locale:              cfg.Locale(),
						AllowNonRootAccess:  cfg.AllowNonRootAccess(),
					},
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			r := data.report

			cmd.Println(bold("Battery status:"))
			if r.ChargePercent != nil {
				cmd.Printf("  Current charge: %s\n", bold("%d%%", *r.ChargePercent))
			} else {
				cmd.Printf("  Current charge: %s\n", orNA("", false))
			}
			if r.BatteryStatus != nil {
				cmd.Printf("  State: %s\n", bold("%s", batteryStateText(*r.BatteryStatus)))
			} else {
				cmd.Printf("  State: %s\n", orNA("", false))
			}
			if r.PowerSupplyStatus != nil {
				cmd.Printf("  Power supply: %s\n", bold("%s", powerSupplyText(*r.PowerSupplyStatus)))
			} else {
				cmd.Printf("  Power supply: %s\n", orNA("", false))
			}
			if r.RemainingDischargeSeconds != nil && r.RemainingDischargeTime() > 0 {
				cmd.Printf("  Time remaining: %s\n", bold("~%s", formatDuration(r.RemainingDischargeTime())))
			}
			if r.EnergySaverStatus != nil {
				cmd.Printf("  Energy saver: %s\n", bold("%s", r.EnergySaverStatus.String()))
			} else {
				cmd.Printf("  Energy saver: %s\n", orNA("", false))
			}

			cmd.Println()

			cmd.Println(bold("Daemon configuration:"))
			cmd.Printf("  Backend: %s (%s)\n", bold("%s", cfg.Backend()), r.Backend)
			cmd.Printf("  Poll interval: %s\n", bold("%s", cfg.PollInterval()))
			cmd.Printf("  Manifest: %s\n", orNA(cfg.ManifestPath(), cfg.ManifestPath() != ""))
			cmd.Printf("  Resources: %s\n", orNA(cfg.ResourcesDir(), cfg.ResourcesDir() != ""))
			cmd.Printf("  Locale: %s\n", orNA(cfg.Locale(), cfg.Locale() != ""))
			cmd.Printf("  Allow non-root users to access the daemon: %s\n", bool2Text(cfg.AllowNonRootAccess()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

func batteryStateText(s power.BatteryStatus) string {
	switch s {
	case power.BatteryCharging:
		return color.GreenString("charging")
	case power.BatteryDischarging:
		return color.RedString("discharging")
	case power.BatteryIdle:
		return "not charging"
	default:
		return "no battery"
	}
}

func powerSupplyText(s power.PowerSupplyStatus) string {
	switch s {
	case power.PowerSupplyAdequate:
		return color.GreenString("plugged in")
	case power.PowerSupplyInadequate:
		return color.YellowString("plugged in, not enough power")
	default:
		return "on battery"
	}
}
