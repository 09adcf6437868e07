package platform

import "runtime"

// Info identifies the platform the binary is running on.
type Info struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	// OSVersion is empty where the version is not available.
	OSVersion string `json:"osVersion,omitempty"`
}

// Current returns the platform of the running binary.
func Current() Info {
	v, _ := OSVersion()
	return Info{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		OSVersion: v,
	}
}

func (i Info) String() string {
	s := i.OS + "/" + i.Arch
	if i.OSVersion != "" {
		s += " " + i.OSVersion
	}
	return s
}
