// SPDX-License-Identifier: BSD-3-Clause

// Package average computes the interval average of a sensor that exposes a
// device-maintained running average alongside the interval it has been
// accumulated over. Two consecutive (average, interval) samples are enough
// to recover the average over just the most recent poll interval, without
// the intermediate products overflowing.
package average

// State holds the previous (average, interval) sample for one sensor.
type State struct {
	PrevAverage  int64
	PrevInterval int64
	initialized  bool
}

// Update folds in a new (curAverage, curInterval) sample and returns the
// average over the interval since the previous sample.
//
// The naive formula (curAverage*curInterval - prevAverage*prevInterval) /
// delta is algebraically equivalent but multiplies values that can be large
// running sums; Update instead multiplies the small difference
// (curAverage-prevAverage) by the bounded ratio prevInterval/delta, keeping
// intermediate magnitudes small.
//
// delta = curInterval - PrevInterval must be strictly positive: the device's
// interval counter is expected to monotonically advance between polls. A
// non-positive delta means the counter has not advanced since the last
// sample, and the caller should keep publishing the previously computed
// value rather than calling Update.
func (s *State) Update(curAverage, curInterval int64) int64 {
	if !s.initialized {
		s.PrevAverage = curAverage
		s.PrevInterval = curInterval
		s.initialized = true
		return curAverage
	}

	delta := curInterval - s.PrevInterval
	if delta <= 0 {
		panic("average: non-positive interval delta")
	}

	ratio := float64(s.PrevInterval) / float64(delta)
	result := int64(float64(curAverage-s.PrevAverage)*ratio) + curAverage

	s.PrevAverage = curAverage
	s.PrevInterval = curInterval

	return result
}

// Ready reports whether Update has been called at least once, i.e. whether a
// meaningful interval average can be computed yet.
func (s *State) Ready() bool { return s.initialized }
