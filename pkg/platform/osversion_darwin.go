//go:build darwin && cgo

package platform

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Foundation
// #import <Foundation/Foundation.h>
//
// void getSystemVersion(int *major, int *minor, int *patch) {
//     NSAutoreleasePool *pool = [[NSAutoreleasePool alloc] init];
//     NSOperatingSystemVersion version = [[NSProcessInfo processInfo] operatingSystemVersion];
//     *major = (int)version.majorVersion;
//     *minor = (int)version.minorVersion;
//     *patch = (int)version.patchVersion;
//     [pool release];
// }
import "C"

import (
	"fmt"
	"sync"
)

var (
	cachedOSVersion string
	osVersionOnce   sync.Once
)

// OSVersion returns the operating system version, e.g. 14.5.0.
func OSVersion() (string, error) {
	osVersionOnce.Do(func() {
		var major, minor, patch C.int
		C.getSystemVersion(&major, &minor, &patch)
		cachedOSVersion = fmt.Sprintf("%d.%d.%d", int(major), int(minor), int(patch))
	})
	return cachedOSVersion, nil
}
