// SPDX-License-Identifier: BSD-3-Clause

package sensor

import "github.com/bmcd/hwmond/internal/sensorcfg"

// Adjust applies the linear correction and clamp steps of the poll pipeline
// (§4.5 steps 5-6): adjusted = raw*gain + offset, then clamp to
// [minValue, maxValue] if configured. Scale (step 7) is not applied here -
// it is metadata attached to the Value capability, never divided out.
func Adjust(raw int64, cfg *sensorcfg.Config) int64 {
	v := float64(raw)*cfg.Gain + cfg.Offset
	adjusted := int64(v)

	if cfg.MinValue != nil && adjusted < *cfg.MinValue {
		adjusted = *cfg.MinValue
	}
	if cfg.MaxValue != nil && adjusted > *cfg.MaxValue {
		adjusted = *cfg.MaxValue
	}

	return adjusted
}
