package resources

import (
	"errors"
	"reflect"
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"

	"github.com/charlie0129/rtshim/pkg/platform"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"default.yaml": {Data: []byte("greeting: Hello\nfarewell: Goodbye\nbrand: rtshim\n")},
		"en.json":      {Data: []byte(`{"greeting": "Hi", "color": "color"}`)},
		"en-GB.yaml":   {Data: []byte("color: colour\n")},
		"de.yml":       {Data: []byte("greeting: Hallo\nfarewell: Tschüss\n")},
		"notes.txt":    {Data: []byte("ignored")},
	}
}

func TestLoaderFallbackChain(t *testing.T) {
	l, err := NewLoader(testFS(), "en-GB")
	if err != nil {
		t.Fatalf("NewLoader returned error: %v", err)
	}

	if l.Locale().String() != "en-GB" {
		t.Errorf("Locale() = %v, want en-GB", l.Locale())
	}

	tests := map[string]string{
		"color":    "colour",  // en-GB
		"greeting": "Hi",      // en
		"brand":    "rtshim",  // default
		"missing":  "",        // nowhere
		"farewell": "Goodbye", // default, not de
	}
	for name, want := range tests {
		if got := l.GetString(name); got != want {
			t.Errorf("GetString(%q) = %q, want %q", name, got, want)
		}
	}

	if _, ok := l.Lookup("missing"); ok {
		t.Errorf("Lookup(missing) reported a value")
	}
}

func TestLoaderLanguageMatch(t *testing.T) {
	l, err := NewLoader(testFS(), "not a locale!", "de-AT")
	if err != nil {
		t.Fatalf("NewLoader returned error: %v", err)
	}

	if got := l.GetString("greeting"); got != "Hallo" {
		t.Errorf("GetString(greeting) = %q, want Hallo", got)
	}
	if got := l.GetString("brand"); got != "rtshim" {
		t.Errorf("GetString(brand) = %q, want rtshim", got)
	}
}

func TestLoaderNoMatchUsesDefault(t *testing.T) {
	l, err := NewLoader(testFS(), "ja")
	if err != nil {
		t.Fatalf("NewLoader returned error: %v", err)
	}

	if l.Locale() != language.Und {
		t.Errorf("Locale() = %v, want und", l.Locale())
	}
	if got := l.GetString("greeting"); got != "Hello" {
		t.Errorf("GetString(greeting) = %q, want Hello", got)
	}
}

func TestLoaderEmpty(t *testing.T) {
	for name, fsys := range map[string]fstest.MapFS{
		"empty":    {},
		"no table": {"readme.md": {Data: []byte("#")}},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := NewLoader(fsys, "en"); !errors.Is(err, platform.ErrUnsupported) {
				t.Errorf("NewLoader() error = %v, want %v", err, platform.ErrUnsupported)
			}
		})
	}
}

func TestLoaderInvalidTable(t *testing.T) {
	fsys := fstest.MapFS{"en.yaml": {Data: []byte("greeting: [unterminated")}}
	if _, err := NewLoader(fsys, "en"); err == nil {
		t.Errorf("expected error for an invalid table")
	}
}

func TestEnvLocales(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "C")
	t.Setenv("LANG", "pt_BR.UTF-8")

	if got, want := EnvLocales(), []string{"pt-BR"}; !reflect.DeepEqual(got, want) {
		t.Errorf("EnvLocales() = %v, want %v", got, want)
	}

	t.Setenv("LC_ALL", "fr_CA@euro")
	if got, want := EnvLocales(), []string{"fr-CA", "pt-BR"}; !reflect.DeepEqual(got, want) {
		t.Errorf("EnvLocales() = %v, want %v", got, want)
	}
}
