// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"context"
	"errors"
	"fmt"

	"github.com/bmcd/hwmond/pkg/hwmon"
)

// ErrFanWriteFatal signals that a FanSpeed target write failed, either by
// exhausting its retry budget or with a non-retryable error; the caller (service/hwmond) must terminate the process so the
// supervisor restarts it in a clean state (§4.9).
var ErrFanWriteFatal = errors.New("fan target write failed persistently")

// WriteTarget applies an incoming write of value to t, delegating the actual
// sysfs write to io. It is a no-op, without touching sysfs, when value
// already equals the published target (§ scenario S6's idempotence rule).
//
// On failure, FanPwm swallows the error (returns nil, nothing is logged, and
// the previous published target is kept) while FanSpeed returns ErrFanWriteFatal, matching the
// asymmetric policy the two attribute conventions were given upstream.
func WriteTarget(ctx context.Context, io *hwmon.IO, t *TargetCapability, value int64) error {
	if value == t.Target {
		return nil
	}

	err := io.WriteInt(ctx, t.Path, value)
	if err != nil {
		if t.Kind == FanPwm {
			return nil
		}
		return fmt.Errorf("%w: %s: %w", ErrFanWriteFatal, t.Path, err)
	}

	t.Target = value
	return nil
}
