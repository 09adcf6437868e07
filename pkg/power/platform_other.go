//go:build ios || !(linux || darwin || windows || freebsd || dragonfly || netbsd || openbsd || solaris)

package power

func newPlatformBackend(Options) Backend {
	return Unsupported{}
}
