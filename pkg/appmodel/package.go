package appmodel

import (
	"errors"

	"github.com/charlie0129/rtshim/pkg/platform"
)

// Provider is a platform source of package identity. Fields the platform
// cannot supply return platform.ErrUnsupported.
type Provider interface {
	Architecture() (ProcessorArchitecture, error)
	FullName() (string, error)
	Name() (string, error)
	ProductID() (string, error)
	Publisher() (string, error)
	Version() (PackageVersion, error)
}

// PackageID provides package identification info, such as name, version,
// and publisher.
type PackageID struct {
	Provider
}

// NewPackageID returns a PackageID reading from p.
func NewPackageID(p Provider) *PackageID {
	return &PackageID{Provider: p}
}

// Info is a snapshot of every field the provider supports.
type Info struct {
	Architecture *ProcessorArchitecture `json:"architecture,omitempty"`
	FullName     string                 `json:"fullName,omitempty"`
	Name         string                 `json:"name,omitempty"`
	ProductID    string                 `json:"productId,omitempty"`
	Publisher    string                 `json:"publisher,omitempty"`
	Version      *PackageVersion        `json:"version,omitempty"`
}

// Info reads all fields. Unsupported fields are left empty; any other
// error is returned.
func (id *PackageID) Info() (*Info, error) {
	info := &Info{}

	arch, err := id.Architecture()
	if err := keep(err); err != nil {
		return nil, err
	}
	if err == nil {
		info.Architecture = &arch
	}

	for _, f := range []struct {
		get func() (string, error)
		dst *string
	}{
		{id.FullName, &info.FullName},
		{id.Name, &info.Name},
		{id.ProductID, &info.ProductID},
		{id.Publisher, &info.Publisher},
	} {
		v, err := f.get()
		if err := keep(err); err != nil {
			return nil, err
		}
		*f.dst = v
	}

	ver, err := id.Version()
	if err := keep(err); err != nil {
		return nil, err
	}
	if err == nil {
		info.Version = &ver
	}

	return info, nil
}

// keep drops unsupported errors.
func keep(err error) error {
	if errors.Is(err, platform.ErrUnsupported) {
		return nil
	}
	return err
}
