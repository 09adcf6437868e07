package main

import (
	"io"
	"strings"
	"testing"
)

func TestDaemonCommandRejectsBadOverrides(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown backend", args: []string{"--backend", "upower"}, wantErr: "unknown power backend"},
		{name: "negative interval", args: []string{"--poll-interval=-1s"}, wantErr: "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCommand()
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(append([]string{"daemon", "--daemon-socket", t.TempDir() + "/rtshim.sock"}, tt.args...))

			err := cmd.Execute()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Execute() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
