package appmodel

import (
	"errors"
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/charlie0129/rtshim/pkg/platform"
)

func TestParsePackageVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    PackageVersion
		wantErr bool
	}{
		{in: "1.2", want: PackageVersion{Major: 1, Minor: 2}},
		{in: "1.2.3", want: PackageVersion{Major: 1, Minor: 2, Build: 3}},
		{in: "1.2.3.4", want: PackageVersion{Major: 1, Minor: 2, Build: 3, Revision: 4}},
		{in: "1.2b3", want: PackageVersion{Major: 1, Minor: 2, Build: 3}},
		{in: "2.0fc1", want: PackageVersion{Major: 2, Minor: 0, Build: 1}},
		{in: "3.1a2", want: PackageVersion{Major: 3, Minor: 1, Build: 2}},
		{in: "1", wantErr: true},
		{in: "1.2.3.4.5", wantErr: true},
		{in: "1.x", wantErr: true},
		{in: "1.70000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePackageVersion(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePackageVersion(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePackageVersion(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePackageVersion(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPackageVersionCompare(t *testing.T) {
	a := PackageVersion{Major: 1, Minor: 2, Build: 3}
	b := PackageVersion{Major: 1, Minor: 2, Build: 3, Revision: 1}

	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("unexpected comparison results")
	}
	if !b.AtLeast(a) || a.AtLeast(b) {
		t.Errorf("unexpected AtLeast results")
	}
	if a.String() != "1.2.3.0" {
		t.Errorf("String() = %q, want 1.2.3.0", a.String())
	}
}

func TestManifest(t *testing.T) {
	p := filepath.Join(t.TempDir(), "manifest.yaml")
	content := `name: demo
fullName: com.example.demo
publisher: Example Ltd
version: 1.4.2
architecture: arm64
`
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	m, err := LoadManifest(p)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	id := NewPackageID(m)

	if name, _ := id.Name(); name != "demo" {
		t.Errorf("Name() = %q, want demo", name)
	}
	if full, _ := id.FullName(); full != "com.example.demo" {
		t.Errorf("FullName() = %q, want com.example.demo", full)
	}
	if arch, _ := id.Architecture(); arch != ArchArm64 {
		t.Errorf("Architecture() = %v, want %v", arch, ArchArm64)
	}
	if _, err := id.ProductID(); !errors.Is(err, platform.ErrUnsupported) {
		t.Errorf("ProductID() error = %v, want %v", err, platform.ErrUnsupported)
	}

	info, err := id.Info()
	if err != nil {
		t.Fatalf("Info returned error: %v", err)
	}
	if info.ProductID != "" || info.Publisher != "Example Ltd" {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.Version == nil || *info.Version != (PackageVersion{Major: 1, Minor: 4, Build: 2}) {
		t.Errorf("Info().Version = %v, want 1.4.2.0", info.Version)
	}
}

func TestManifestJSON(t *testing.T) {
	m, err := ParseManifest([]byte(`{"name": "demo", "productId": "42", "version": "2.0"}`))
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}
	if id, _ := m.ProductID(); id != "42" {
		t.Errorf("ProductID() = %q, want 42", id)
	}
	if full, _ := m.FullName(); full != "demo" {
		t.Errorf("FullName() = %q, want the name when fullName is absent", full)
	}
}

func TestManifestInvalid(t *testing.T) {
	for _, in := range []string{
		`fullName: nameless`,
		`{name: demo, version: "one"}`,
		`{name: demo, architecture: sparc}`,
	} {
		if _, err := ParseManifest([]byte(in)); err == nil {
			t.Errorf("ParseManifest(%q) expected error", in)
		}
	}
}

func TestBuildInfo(t *testing.T) {
	b := newBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Path: "github.com/example/tool", Version: "v1.3.0-rc.1"},
	}, "amd64")

	if name, _ := b.Name(); name != "tool" {
		t.Errorf("Name() = %q, want tool", name)
	}
	if arch, _ := b.Architecture(); arch != ArchX64 {
		t.Errorf("Architecture() = %v, want %v", arch, ArchX64)
	}
	if v, err := b.Version(); err != nil || v != (PackageVersion{Major: 1, Minor: 3}) {
		t.Errorf("Version() = %v, %v, want 1.3.0.0", v, err)
	}
	if _, err := b.Publisher(); !errors.Is(err, platform.ErrUnsupported) {
		t.Errorf("Publisher() error = %v, want %v", err, platform.ErrUnsupported)
	}

	empty := newBuildInfo(&debug.BuildInfo{}, "riscv64")
	if _, err := empty.Name(); !errors.Is(err, platform.ErrUnsupported) {
		t.Errorf("Name() error = %v, want %v", err, platform.ErrUnsupported)
	}
	if arch, _ := empty.Architecture(); arch != ArchUnknown {
		t.Errorf("Architecture() = %v, want %v", arch, ArchUnknown)
	}
}
