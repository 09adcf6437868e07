package config

import "time"

type Config interface {
	// Backend is the power backend name, see power.NewBackend.
	Backend() string
	PollInterval() time.Duration
	// ManifestPath is the package manifest. Empty means the Go build info.
	ManifestPath() string
	// ResourcesDir holds the string tables. Empty disables resources.
	ResourcesDir() string
	// Locale overrides the locale from the environment.
	Locale() string
	AllowNonRootAccess() bool

	SetBackend(string)
	SetPollInterval(time.Duration)
	SetManifestPath(string)
	SetResourcesDir(string)
	SetLocale(string)
	SetAllowNonRootAccess(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
