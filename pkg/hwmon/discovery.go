// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// attributeFilePattern matches a hwmon attribute file name and captures its
// type prefix, instance number, and entry suffix, e.g. "temp1_input" ->
// ("temp", "1", "input").
var attributeFilePattern = regexp.MustCompile(`^(fan|in|temp|power|energy|curr|humidity)([0-9]+)_([a-z]+)$`)

// Device describes one discovered hwmon device directory and the sensors found in it.
type Device struct {
	Path    string
	Name    string
	Sensors map[Key]*Sensor
}

// Sensor is a discovered sensor's raw attribute set, prior to config resolution.
type Sensor struct {
	Key        Key
	Attributes map[string]struct{}
	Label      string
}

// HasAttribute reports whether entry (e.g. "input", "max") was found for this sensor.
func (s *Sensor) HasAttribute(entry string) bool {
	_, ok := s.Attributes[entry]
	return ok
}

// Discover lists path directly and groups its attribute files into sensors
// keyed by (type, instance), per §4.3: path is the hwmon instance root
// itself (what --path names), not a parent containing hwmon<N>
// subdirectories to walk — this matches the original SensorSet(path)
// constructor, which lists path's own entries with no device-directory
// indirection. The label attribute is read eagerly and excluded from the
// Attributes set, per the rule that label is metadata about a sensor, not a
// capability of it.
func Discover(ctx context.Context, io *IO, path string) (*Device, error) {
	files, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDiscoveryFailure, path, err)
	}

	name, _ := io.ReadString(ctx, filepath.Join(path, "name"))
	device := &Device{Path: path, Name: name, Sensors: make(map[Key]*Sensor)}

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		m := attributeFilePattern.FindStringSubmatch(f.Name())
		if m == nil {
			continue
		}

		typ := SensorType(m[1])
		if !IsKnownType(typ) {
			continue
		}
		instance, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		entry := m[3]

		key := Key{Type: typ, Instance: instance}
		sensor, ok := device.Sensors[key]
		if !ok {
			sensor = &Sensor{Key: key, Attributes: make(map[string]struct{})}
			device.Sensors[key] = sensor
		}

		if entry == "label" {
			label, err := io.ReadString(ctx, filepath.Join(path, f.Name()))
			if err == nil {
				sensor.Label = label
			}
			continue
		}

		sensor.Attributes[entry] = struct{}{}
	}

	return device, nil
}
