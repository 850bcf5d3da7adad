// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import "strconv"

// SensorType identifies one of the hwmon sysfs type prefixes this daemon
// understands. Only the types published as their own SensorClass are
// represented; pwm remains an attribute-only concept used while building a
// fan sensor's target.
type SensorType string

const (
	TypeTemp     SensorType = "temp"
	TypeIn       SensorType = "in"
	TypeFan      SensorType = "fan"
	TypePower    SensorType = "power"
	TypeEnergy   SensorType = "energy"
	TypeCurr     SensorType = "curr"
	TypeHumidity SensorType = "humidity"
)

// Class describes the fixed (unit, scale, namespace) triple associated with a
// SensorType. Scale is the power-of-ten exponent relating the raw sysfs
// integer to the published unit: a value V with scale S denotes V*10^S of
// Unit. No division happens in this package; scale is metadata handed to
// consumers (§4.5 step 7 of the poll pipeline).
type Class struct {
	Unit      string
	Scale     int
	Namespace string
}

// Classes is the fixed table of known sensor classes, keyed by SensorType.
// It is a lookup table rather than a type switch or class hierarchy: adding
// a capability to a class means adding a field here, not a new type.
//
// humidity is not present in the upstream class table even though it is a
// recognized SensorKey type; it is added here with the same scale as the
// other milli-unit classes so a humidity sensor can still be published
// rather than silently discarded for want of a namespace. Its unit,
// "Percent", falls outside the enumerated unit set (DegreesC, RPMS, Volts,
// Amperes, Watts, Joules, Meters); none of those fit a relative-humidity
// reading, and mislabeling it with an unrelated unit would be worse than
// introducing one the enumerated set doesn't list.
var Classes = map[SensorType]Class{
	TypeTemp:     {Unit: "DegreesC", Scale: -3, Namespace: "temperature"},
	TypeFan:      {Unit: "RPMS", Scale: 0, Namespace: "fan_tach"},
	TypeIn:       {Unit: "Volts", Scale: -3, Namespace: "voltage"},
	TypeCurr:     {Unit: "Amperes", Scale: -3, Namespace: "current"},
	TypePower:    {Unit: "Watts", Scale: -6, Namespace: "power"},
	TypeEnergy:   {Unit: "Joules", Scale: -6, Namespace: "energy"},
	TypeHumidity: {Unit: "Percent", Scale: -3, Namespace: "humidity"},
}

// IsKnownType reports whether t appears in Classes.
func IsKnownType(t SensorType) bool {
	_, ok := Classes[t]
	return ok
}

// Key uniquely identifies one sensor within a hwmon device directory.
type Key struct {
	Type     SensorType
	Instance int
}

// String renders the key in its sysfs prefix form, e.g. "temp1".
func (k Key) String() string {
	return string(k.Type) + strconv.Itoa(k.Instance)
}
