package appmodel

import (
	"path"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"

	"github.com/charlie0129/rtshim/pkg/platform"
	"github.com/charlie0129/rtshim/pkg/version"
)

// BuildInfo identifies the package from the Go build information embedded
// in the running binary. It has no notion of product id or publisher.
type BuildInfo struct {
	info   *debug.BuildInfo
	goarch string
}

var _ Provider = &BuildInfo{}

// NewBuildInfo reads the build information of the running binary.
func NewBuildInfo() (*BuildInfo, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, errors.Wrap(platform.ErrUnsupported, "binary was built without module support")
	}
	return newBuildInfo(info, runtime.GOARCH), nil
}

func newBuildInfo(info *debug.BuildInfo, goarch string) *BuildInfo {
	return &BuildInfo{info: info, goarch: goarch}
}

func (b *BuildInfo) Architecture() (ProcessorArchitecture, error) {
	return ArchitectureFromGOARCH(b.goarch), nil
}

// FullName is the main module path.
func (b *BuildInfo) FullName() (string, error) {
	if b.info.Main.Path == "" {
		return "", errors.Wrap(platform.ErrUnsupported, "build info has no main module")
	}
	return b.info.Main.Path, nil
}

// Name is the last element of the main module path.
func (b *BuildInfo) Name() (string, error) {
	full, err := b.FullName()
	if err != nil {
		return "", err
	}
	return path.Base(full), nil
}

func (b *BuildInfo) ProductID() (string, error) {
	return "", errors.Wrap(platform.ErrUnsupported, "build info has no product id")
}

func (b *BuildInfo) Publisher() (string, error) {
	return "", errors.Wrap(platform.ErrUnsupported, "build info has no publisher")
}

// Version is the main module version, or the linked version for
// development builds.
func (b *BuildInfo) Version() (PackageVersion, error) {
	v := b.info.Main.Version
	if v == "" || v == "(devel)" {
		v = version.Version
	}
	return ParsePackageVersion(trimModuleVersion(v))
}

// trimModuleVersion turns v1.2.3-rc.1+dirty into 1.2.3.
func trimModuleVersion(v string) string {
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	return v
}
