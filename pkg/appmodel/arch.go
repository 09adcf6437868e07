package appmodel

import (
	"strings"

	"github.com/pkg/errors"
)

// ProcessorArchitecture is the processor architecture a package was built for.
type ProcessorArchitecture int

const (
	ArchX86     ProcessorArchitecture = 0
	ArchArm     ProcessorArchitecture = 5
	ArchX64     ProcessorArchitecture = 9
	ArchNeutral ProcessorArchitecture = 11
	ArchArm64   ProcessorArchitecture = 12
	ArchUnknown ProcessorArchitecture = 65535
)

func (a ProcessorArchitecture) String() string {
	switch a {
	case ArchX86:
		return "x86"
	case ArchArm:
		return "arm"
	case ArchX64:
		return "x64"
	case ArchNeutral:
		return "neutral"
	case ArchArm64:
		return "arm64"
	default:
		return "unknown"
	}
}

func (a ProcessorArchitecture) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ProcessorArchitecture) UnmarshalText(b []byte) error {
	v, err := ParseArchitecture(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseArchitecture parses an architecture name. Go architecture names
// (386, amd64) are accepted as well.
func ParseArchitecture(s string) (ProcessorArchitecture, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x86", "386":
		return ArchX86, nil
	case "arm":
		return ArchArm, nil
	case "x64", "amd64":
		return ArchX64, nil
	case "neutral":
		return ArchNeutral, nil
	case "arm64":
		return ArchArm64, nil
	case "unknown":
		return ArchUnknown, nil
	default:
		return ArchUnknown, errors.Errorf("unknown processor architecture %q", s)
	}
}

// ArchitectureFromGOARCH maps a GOARCH value. Anything without a
// counterpart is ArchUnknown.
func ArchitectureFromGOARCH(goarch string) ProcessorArchitecture {
	a, err := ParseArchitecture(goarch)
	if err != nil {
		return ArchUnknown
	}
	return a
}
