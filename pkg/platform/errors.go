package platform

import "errors"

// ErrUnsupported is returned when the running platform has no native
// facility for the requested capability. The condition is static for the
// lifetime of the process, so callers should not retry.
var ErrUnsupported = errors.New("platform unsupported")
