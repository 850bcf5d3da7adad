// SPDX-License-Identifier: BSD-3-Clause

// Package threshold implements the stateless bound-crossing evaluation used
// by the Warning and Critical capabilities. It holds no per-sensor state;
// transition detection (comparing the new verdict to the previously
// published one) is the publisher's job, not this package's.
package threshold

// Verdict is the result of evaluating a value against a (low, high) bound pair.
type Verdict struct {
	AlarmLow  bool
	AlarmHigh bool
}

// Evaluate reports whether value crosses below low or above high. Comparison
// is strict: a value exactly equal to a bound is not an alarm.
func Evaluate(value, low, high int64) Verdict {
	return Verdict{
		AlarmLow:  value < low,
		AlarmHigh: value > high,
	}
}
