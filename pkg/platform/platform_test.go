package platform

import (
	"errors"
	"runtime"
	"testing"
)

func TestCurrent(t *testing.T) {
	info := Current()
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("Current() = %+v, want %s/%s", info, runtime.GOOS, runtime.GOARCH)
	}

	v, err := OSVersion()
	if err != nil && !errors.Is(err, ErrUnsupported) {
		t.Errorf("OSVersion() error = %v", err)
	}
	if v != info.OSVersion {
		t.Errorf("Current().OSVersion = %q, OSVersion() = %q", info.OSVersion, v)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{info: Info{OS: "linux", Arch: "amd64"}, want: "linux/amd64"},
		{info: Info{OS: "darwin", Arch: "arm64", OSVersion: "14.5.0"}, want: "darwin/arm64 14.5.0"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
