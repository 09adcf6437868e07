package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/rtshim/pkg/events"
	"github.com/charlie0129/rtshim/pkg/power"
	"github.com/charlie0129/rtshim/pkg/statusbar"
)

// lowChargePercent is the charge below which a discharging battery is
// shown in the warning color.
const lowChargePercent = 20

var (
	chargingColor = statusbar.Color{A: 0xff, G: 0xff}
	lowColor      = statusbar.Color{A: 0xff, R: 0xff}
)

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   "Show a live battery status line",
		GroupID: gBasic,
		Long: `Show a live battery status line that updates whenever the charge
level changes. Press Ctrl-C to stop.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := newClient()

			r, err := c.GetBattery()
			if err != nil {
				return err
			}

			sb := statusbar.New(statusbar.NewTerminalSurface(cmd.OutOrStdout()))
			if err := sb.ProgressIndicator().Show(); err != nil {
				return err
			}
			if err := applyReport(sb, r); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			for ev := range c.SubscribeEvents(ctx) {
				switch ev.Name {
				case events.BatteryCharge, events.ConfigReloaded:
					// Both can change every field, re-read all of them.
					r, err := c.GetBattery()
					if err != nil {
						logrus.WithError(err).Debug("failed to refresh battery status")
						continue
					}
					if err := applyReport(sb, r); err != nil {
						logrus.WithError(err).Warn("failed to draw status line")
					}
				default:
					logrus.WithField("event", ev.Name).Trace("ignoring event")
				}
			}

			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

// applyReport shows r on the status bar.
func applyReport(sb *statusbar.StatusBar, r *power.Report) error {
	p := sb.ProgressIndicator()

	if r.ChargePercent == nil {
		if err := sb.SetForegroundColor(nil); err != nil {
			return err
		}
		if err := p.SetProgressValue(nil); err != nil {
			return err
		}
		return p.SetText("battery: n/a")
	}

	percent := *r.ChargePercent
	state := power.BatteryNotPresent
	if r.BatteryStatus != nil {
		state = *r.BatteryStatus
	}

	var fg *statusbar.Color
	switch {
	case state == power.BatteryCharging:
		fg = &chargingColor
	case state == power.BatteryDischarging && percent < lowChargePercent:
		fg = &lowColor
	}
	if err := sb.SetForegroundColor(fg); err != nil {
		return err
	}

	text := fmt.Sprintf("battery %d%% %s", percent, state)
	if d := r.RemainingDischargeTime(); d > 0 {
		text += ", " + formatDuration(d) + " left"
	}
	if err := p.SetText(text); err != nil {
		return err
	}

	v := float64(percent) / 100
	return p.SetProgressValue(&v)
}
