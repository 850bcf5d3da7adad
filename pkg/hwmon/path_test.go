// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import (
	"path/filepath"
	"testing"
)

func TestBuildPathWithEntry(t *testing.T) {
	got := BuildPath("/sys/class/hwmon/hwmon0", Key{Type: TypeTemp, Instance: 1}, "input")
	want := "/sys/class/hwmon/hwmon0/temp1_input"
	if got != want {
		t.Errorf("BuildPath() = %q, want %q", got, want)
	}
}

func TestBuildPathWithEmptyEntry(t *testing.T) {
	got := BuildPath("/sys/class/hwmon/hwmon0", Key{Type: "pwm", Instance: 1}, "")
	want := "/sys/class/hwmon/hwmon0/pwm1"
	if got != want {
		t.Errorf("BuildPath() = %q, want %q", got, want)
	}
}

func TestBuildPathRoundTripsThroughAttributePattern(t *testing.T) {
	key := Key{Type: TypeFan, Instance: 3}
	path := BuildPath("/dev", key, "target")
	m := attributeFilePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		t.Fatal("attributeFilePattern did not match fan3_target")
	}
	if m[1] != string(key.Type) || m[2] != "3" || m[3] != "target" {
		t.Errorf("parsed (%q,%q,%q), want (%q,3,target)", m[1], m[2], m[3], key.Type)
	}
	if BuildPath("/dev", key, m[3]) != path {
		t.Error("BuildPath is not a left inverse of the attribute file name it produced")
	}
}
