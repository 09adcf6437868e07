package resources

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/charlie0129/rtshim/pkg/platform"
)

// DefaultTable is the base name of the table used when no locale matches.
const DefaultTable = "default"

var tableExts = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// Loader provides access to the string resources of one resolved locale.
type Loader struct {
	locale language.Tag
	// chain is searched in order: the matched table, its parent locales,
	// then the default table.
	chain []map[string]string
}

// NewLoader loads the string tables in the root of fsys and resolves the
// best table for the preferred locales. Invalid preferences are ignored.
func NewLoader(fsys fs.FS, preferred ...string) (*Loader, error) {
	tables, def, err := readTables(fsys)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 && def == nil {
		return nil, errors.Wrap(platform.ErrUnsupported, "no string resources found")
	}

	var prefs []language.Tag
	for _, p := range preferred {
		tag, err := language.Parse(p)
		if err != nil {
			logrus.Debugf("ignoring invalid locale %q: %v", p, err)
			continue
		}
		prefs = append(prefs, tag)
	}

	l := &Loader{locale: language.Und}

	if len(tables) > 0 {
		tags := make([]language.Tag, 0, len(tables))
		for tag := range tables {
			tags = append(tags, tag)
		}
		sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })

		matcher := language.NewMatcher(tags)
		_, idx, conf := matcher.Match(prefs...)
		if conf != language.No || def == nil {
			l.locale = tags[idx]
			for t := tags[idx]; ; t = t.Parent() {
				if table, ok := tables[t]; ok {
					l.chain = append(l.chain, table)
				}
				if t == language.Und {
					break
				}
			}
		}
	}
	if def != nil {
		l.chain = append(l.chain, def)
	}

	logrus.WithFields(logrus.Fields{
		"preferred": preferred,
		"locale":    l.locale.String(),
		"tables":    len(l.chain),
	}).Debug("string resources loaded")

	return l, nil
}

// NewForCurrentLocale resolves the locale from the environment.
func NewForCurrentLocale(fsys fs.FS) (*Loader, error) {
	return NewLoader(fsys, EnvLocales()...)
}

// NewForViewIndependentUse is NewForCurrentLocale. There are no views
// with their own locale context.
func NewForViewIndependentUse(fsys fs.FS) (*Loader, error) {
	return NewForCurrentLocale(fsys)
}

// Locale returns the resolved locale, language.Und when only the default
// table applies.
func (l *Loader) Locale() language.Tag {
	return l.locale
}

// Lookup returns the string named name.
func (l *Loader) Lookup(name string) (string, bool) {
	for _, table := range l.chain {
		if v, ok := table[name]; ok {
			return v, true
		}
	}
	return "", false
}

// GetString returns the string named name, or "" when there is none.
func (l *Loader) GetString(name string) string {
	v, _ := l.Lookup(name)
	return v
}

// EnvLocales returns the POSIX locale preferences in priority order,
// converted to BCP 47.
func EnvLocales() []string {
	var ret []string
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(key)
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		ret = append(ret, strings.ReplaceAll(v, "_", "-"))
	}
	return ret
}

func readTables(fsys fs.FS) (map[language.Tag]map[string]string, map[string]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, errors.Wrap(platform.ErrUnsupported, "no string resources found")
		}
		return nil, nil, errors.Wrap(err, "failed to list string resources")
	}

	tables := map[language.Tag]map[string]string{}
	var def map[string]string

	for _, e := range entries {
		ext := path.Ext(e.Name())
		if e.IsDir() || !tableExts[ext] {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ext)

		b, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to read %s", e.Name())
		}
		table := map[string]string{}
		if err := yaml.Unmarshal(b, &table); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to parse %s", e.Name())
		}

		if base == DefaultTable {
			def = table
			continue
		}
		tag, err := language.Parse(base)
		if err != nil {
			logrus.Warnf("skipping string table %s: %v", e.Name(), err)
			continue
		}
		tables[tag] = table
	}

	return tables, def, nil
}
