// SPDX-License-Identifier: BSD-3-Clause

// Package sensor turns a discovered hwmon sensor and its resolved
// configuration into a published object: a Value capability plus whichever
// of Warning, Critical, Status, and FanTarget the sysfs contents and
// configuration support. It also implements the per-tick post-processing
// pipeline (gain/offset/clamp) and the fan target write policy.
package sensor
