package power

// Android builds use this file as well.
func newPlatformBackend(opts Options) Backend {
	return NewSysfs(opts)
}
