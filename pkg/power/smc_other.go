//go:build !darwin || ios

package power

func newSMC(Options) (Backend, error) {
	return Unsupported{}, nil
}
