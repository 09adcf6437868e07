//go:build !darwin || !cgo

package platform

// OSVersion returns the operating system version. Only macOS reports one.
func OSVersion() (string, error) {
	return "", ErrUnsupported
}
