//go:build (darwin && !ios) || windows || freebsd || dragonfly || netbsd || openbsd || solaris

package power

func newPlatformBackend(opts Options) Backend {
	return newDistatus(opts)
}
