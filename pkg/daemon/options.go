package daemon

import (
	"slices"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/rtshim/pkg/config"
	"github.com/charlie0129/rtshim/pkg/power"
)

// Options are the startup settings of the daemon. Backend and PollInterval
// take precedence over the config file when set, including across reloads.
type Options struct {
	ConfigPath   string
	SocketPath   string
	AllowNonRoot bool

	Backend      string
	PollInterval time.Duration
}

// Validate rejects overrides that would only fail once the daemon runs.
func (o Options) Validate() error {
	if o.ConfigPath == "" {
		return pkgerrors.New("config path is empty")
	}
	if o.SocketPath == "" {
		return pkgerrors.New("socket path is empty")
	}
	if o.Backend != "" && !slices.Contains(power.BackendNames(), o.Backend) {
		return pkgerrors.Errorf("unknown power backend %q, expected one of %v", o.Backend, power.BackendNames())
	}
	if o.PollInterval < 0 {
		return pkgerrors.Errorf("poll interval %s is negative", o.PollInterval)
	}
	return nil
}

func (o Options) backend(conf config.Config) string {
	if o.Backend != "" {
		return o.Backend
	}
	return conf.Backend()
}

func (o Options) pollInterval(conf config.Config) time.Duration {
	if o.PollInterval > 0 {
		return o.PollInterval
	}
	return conf.PollInterval()
}
