package appmodel

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/charlie0129/rtshim/pkg/platform"
)

// Manifest is a package manifest file. JSON manifests are valid YAML, so
// both formats are accepted.
type Manifest struct {
	raw rawManifest
}

type rawManifest struct {
	Name         string `yaml:"name"`
	FullName     string `yaml:"fullName"`
	ProductID    string `yaml:"productId"`
	Publisher    string `yaml:"publisher"`
	Version      string `yaml:"version"`
	Architecture string `yaml:"architecture"`
}

var _ Provider = &Manifest{}

// LoadManifest reads a manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}

	m, err := ParseManifest(b)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest %s", path)
	}

	return m, nil
}

// ParseManifest decodes a manifest and validates its version and
// architecture fields.
func ParseManifest(b []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(b, &m.raw); err != nil {
		return nil, err
	}
	if m.raw.Name == "" {
		return nil, errors.New("manifest has no name")
	}
	if m.raw.Version != "" {
		if _, err := ParsePackageVersion(m.raw.Version); err != nil {
			return nil, err
		}
	}
	if m.raw.Architecture != "" {
		if _, err := ParseArchitecture(m.raw.Architecture); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Manifest) Architecture() (ProcessorArchitecture, error) {
	if m.raw.Architecture == "" {
		return ArchitectureFromGOARCH(runtime.GOARCH), nil
	}
	return ParseArchitecture(m.raw.Architecture)
}

func (m *Manifest) FullName() (string, error) {
	if m.raw.FullName == "" {
		return m.raw.Name, nil
	}
	return m.raw.FullName, nil
}

func (m *Manifest) Name() (string, error) {
	return m.raw.Name, nil
}

func (m *Manifest) ProductID() (string, error) {
	return orUnsupported(m.raw.ProductID, "productId")
}

func (m *Manifest) Publisher() (string, error) {
	return orUnsupported(m.raw.Publisher, "publisher")
}

func (m *Manifest) Version() (PackageVersion, error) {
	if m.raw.Version == "" {
		return PackageVersion{}, errors.Wrap(platform.ErrUnsupported, "manifest has no version")
	}
	return ParsePackageVersion(m.raw.Version)
}

func orUnsupported(v, field string) (string, error) {
	if v == "" {
		return "", errors.Wrapf(platform.ErrUnsupported, "manifest has no %s", field)
	}
	return v, nil
}
