// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import (
	"errors"
	"syscall"
)

var (
	// ErrInvalidPath indicates a sysfs path was empty or malformed.
	ErrInvalidPath = errors.New("invalid hwmon path")
	// ErrInvalidValue indicates a sysfs attribute held a value that could not be parsed.
	ErrInvalidValue = errors.New("invalid hwmon value")
	// ErrDeviceGone indicates the underlying device node disappeared (ENOENT/ENODEV).
	// Callers at the daemon boundary treat this as a clean, intentional shutdown.
	ErrDeviceGone = errors.New("hwmon device gone")
	// ErrTransient indicates a sysfs operation failed in a way that may succeed on retry
	// (EAGAIN, EIO, EINTR, and similar).
	ErrTransient = errors.New("transient hwmon I/O error")
	// ErrFatal indicates a sysfs operation failed in a way retrying cannot fix
	// (EACCES, EINVAL, or retries exhausted).
	ErrFatal = errors.New("fatal hwmon I/O error")
	// ErrOperationTimeout indicates a context deadline elapsed before an operation completed.
	ErrOperationTimeout = errors.New("hwmon operation timeout")
	// ErrDiscoveryFailure indicates the hwmon base directory could not be scanned.
	ErrDiscoveryFailure = errors.New("hwmon discovery failure")
)

// Kind classifies a sysfs I/O failure for policy decisions made above this package.
type Kind int

const (
	// KindNone means the operation succeeded.
	KindNone Kind = iota
	// KindDeviceGone means the device node no longer exists; terminal for that sensor.
	KindDeviceGone
	// KindTransient means the operation may succeed if retried.
	KindTransient
	// KindFatal means the operation failed in a way retrying will not fix.
	KindFatal
)

// Classify maps a sysfs error to its Kind. A nil error classifies as KindNone.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrDeviceGone):
		return KindDeviceGone
	case errors.Is(err, ErrTransient):
		return KindTransient
	default:
		return KindFatal
	}
}

// Errno extracts the underlying syscall.Errno from a classified error, if
// any, so a caller can check it against a REMOVERCS allow-list.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}
