package appmodel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PackageVersion is a four part package version.
type PackageVersion struct {
	Major    uint16 `json:"major"`
	Minor    uint16 `json:"minor"`
	Build    uint16 `json:"build"`
	Revision uint16 `json:"revision"`
}

// versionMarkers are the pre-release markers bundle versions may use in
// place of a dot, e.g. 1.2b3 or 2.0fc1.
var versionMarkers = strings.NewReplacer("fc", ".", "a", ".", "b", ".", "d", ".")

// ParsePackageVersion parses "major.minor[.build[.revision]]".
func ParsePackageVersion(version string) (PackageVersion, error) {
	clean := versionMarkers.Replace(strings.TrimSpace(version))

	parts := strings.Split(clean, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return PackageVersion{}, errors.Errorf("invalid version format: %s", version)
	}

	var nums [4]uint16
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return PackageVersion{}, errors.Errorf("invalid version component %q in %s", p, version)
		}
		nums[i] = uint16(n)
	}

	return PackageVersion{
		Major:    nums[0],
		Minor:    nums[1],
		Build:    nums[2],
		Revision: nums[3],
	}, nil
}

func (v PackageVersion) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// Compare compares two versions and returns:
// -1 if v < other
// 0 if v == other
// 1 if v > other
func (v PackageVersion) Compare(other PackageVersion) int {
	a := [4]uint16{v.Major, v.Minor, v.Build, v.Revision}
	b := [4]uint16{other.Major, other.Minor, other.Build, other.Revision}

	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}

	return 0
}

// AtLeast returns true if this version is greater than or equal to the other version.
func (v PackageVersion) AtLeast(other PackageVersion) bool {
	return v.Compare(other) >= 0
}
