// SPDX-License-Identifier: BSD-3-Clause

package sensor

import "github.com/bmcd/hwmond/pkg/hwmon"

// ThresholdCapability is the Warning or Critical capability: a bound pair
// plus the last-evaluated alarm state, so the publisher can detect
// transitions without re-deriving them from scratch.
type ThresholdCapability struct {
	Low, High           int64
	AlarmLow, AlarmHigh bool
}

// StatusCapability reports whether the sensor's fault attribute last read as zero.
type StatusCapability struct {
	Functional bool
}

// FanKind distinguishes the two controllable-fan attribute conventions.
type FanKind int

const (
	// FanSpeed writes to "fan<id>_target" and terminates the process on
	// persistent write failure.
	FanSpeed FanKind = iota
	// FanPwm writes to the bare "pwm<id>" file (no entry suffix) and
	// swallows persistent write failures rather than exiting.
	FanPwm
)

// TargetCapability is the writable fan-target property plus the attribute
// path and write policy needed to apply an incoming write.
type TargetCapability struct {
	Kind   FanKind
	Path   string
	Target int64
}

// Object is one published sensor: a stable identity, a Value, and whichever
// optional capabilities the factory attached. Capability composition is by
// an open-ended set of pointers, not a class hierarchy: a capability that
// does not apply to this sensor is simply a nil pointer.
type Object struct {
	Key   hwmon.Key
	Label string
	Path  string // "<root>/<namespace>/<label>"

	Unit  string
	Scale int
	Value int64

	Warning  *ThresholdCapability
	Critical *ThresholdCapability
	Status   *StatusCapability
	Target   *TargetCapability
}

// ObjectPath composes the bus object path for a sensor, per §6:
// "<dbus-root>/<class-namespace>/<label>".
func ObjectPath(root, namespace, label string) string {
	return root + "/" + namespace + "/" + label
}
