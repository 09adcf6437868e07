package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/rtshim/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Backend:             ptr.To("auto"),
		PollIntervalSeconds: ptr.To(10),
		ManifestPath:        ptr.To(""),
		ResourcesDir:        ptr.To(""),
		Locale:              ptr.To(""),
		AllowNonRootAccess:  ptr.To(false),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	Backend             *string `json:"backend,omitempty"`
	PollIntervalSeconds *int    `json:"pollIntervalSeconds,omitempty"`
	ManifestPath        *string `json:"manifestPath,omitempty"`
	ResourcesDir        *string `json:"resourcesDir,omitempty"`
	Locale              *string `json:"locale,omitempty"`
	AllowNonRootAccess  *bool   `json:"allowNonRootAccess,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		Backend:             ptr.To(c.Backend()),
		PollIntervalSeconds: ptr.To(int(c.PollInterval() / time.Second)),
		ManifestPath:        ptr.To(c.ManifestPath()),
		ResourcesDir:        ptr.To(c.ResourcesDir()),
		Locale:              ptr.To(c.Locale()),
		AllowNonRootAccess:  ptr.To(c.AllowNonRootAccess()),
	}

	return rawConfig, nil
}

// get returns the configured value, or the default when unset.
func get[T any](f *File, pick func(*RawFileConfig) *T) T {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if v := pick(f.c); v != nil {
		return *v
	}
	return *pick(defaultFileConfig)
}

// set stores v in the field selected by pick.
func set[T any](f *File, pick func(*RawFileConfig) **T, v T) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	*pick(f.c) = &v
}

func (f *File) Backend() string {
	return get(f, func(c *RawFileConfig) *string { return c.Backend })
}

func (f *File) PollInterval() time.Duration {
	secs := get(f, func(c *RawFileConfig) *int { return c.PollIntervalSeconds })
	if secs <= 0 {
		secs = *defaultFileConfig.PollIntervalSeconds
	}
	return time.Duration(secs) * time.Second
}

func (f *File) ManifestPath() string {
	return get(f, func(c *RawFileConfig) *string { return c.ManifestPath })
}

func (f *File) ResourcesDir() string {
	return get(f, func(c *RawFileConfig) *string { return c.ResourcesDir })
}

func (f *File) Locale() string {
	return get(f, func(c *RawFileConfig) *string { return c.Locale })
}

func (f *File) AllowNonRootAccess() bool {
	return get(f, func(c *RawFileConfig) *bool { return c.AllowNonRootAccess })
}

func (f *File) SetBackend(s string) {
	set(f, func(c *RawFileConfig) **string { return &c.Backend }, s)
}

func (f *File) SetPollInterval(d time.Duration) {
	if d < time.Second {
		panic("poll interval must be at least one second")
	}
	set(f, func(c *RawFileConfig) **int { return &c.PollIntervalSeconds }, int(d/time.Second))
}

func (f *File) SetManifestPath(s string) {
	set(f, func(c *RawFileConfig) **string { return &c.ManifestPath }, s)
}

func (f *File) SetResourcesDir(s string) {
	set(f, func(c *RawFileConfig) **string { return &c.ResourcesDir }, s)
}

func (f *File) SetLocale(s string) {
	set(f, func(c *RawFileConfig) **string { return &c.Locale }, s)
}

func (f *File) SetAllowNonRootAccess(b bool) {
	set(f, func(c *RawFileConfig) **bool { return &c.AllowNonRootAccess }, b)
}

// Path returns the file the config is loaded from.
func (f *File) Path() string {
	return f.filepath
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"backend":            f.Backend(),
		"pollInterval":       f.PollInterval().String(),
		"manifestPath":       f.ManifestPath(),
		"resourcesDir":       f.ResourcesDir(),
		"locale":             f.Locale(),
		"allowNonRootAccess": f.AllowNonRootAccess(),
	}
}
