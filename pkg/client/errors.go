package client

import (
	"errors"

	"github.com/charlie0129/rtshim/pkg/platform"
)

var (
	// ErrDaemonNotRunning is returned when the daemon is not running
	ErrDaemonNotRunning = errors.New("daemon not running")

	// ErrPermissionDenied is returned when the user does not have permission to perform the requested action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when 404 is returned from the daemon
	ErrNotFound = errors.New("404 not found")

	// ErrUnsupported is returned when the daemon's platform lacks the
	// requested facility.
	ErrUnsupported = platform.ErrUnsupported
)
