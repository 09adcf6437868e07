package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/charlie0129/rtshim/pkg/client"
	"github.com/charlie0129/rtshim/pkg/version"
)

func newClient() *client.Client {
	return client.NewClient(unixSocketPath)
}

func versionString() string {
	return version.Version
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

// orNA renders unsupported values.
func orNA(s string, ok bool) string {
	if !ok {
		return color.New(color.Faint).Sprint("n/a")
	}
	return bold("%s", s)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
