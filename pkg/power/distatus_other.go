//go:build ios || !(linux || darwin || windows || freebsd || dragonfly || netbsd || openbsd || solaris)

package power

func newDistatus(Options) Backend {
	return Unsupported{}
}
