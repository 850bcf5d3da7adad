// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func mustWrite(t *testing.T, path, value string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(value), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverGroupsSensorsByKeyDirectlyUnderPath(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "name"), "coretemp")
	mustWrite(t, filepath.Join(root, "temp1_input"), "42000")
	mustWrite(t, filepath.Join(root, "temp1_label"), "cpu")
	mustWrite(t, filepath.Join(root, "temp1_max"), "90000")
	mustWrite(t, filepath.Join(root, "fan1_input"), "3000")

	d, err := Discover(context.Background(), NewIO(), root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if d.Name != "coretemp" {
		t.Errorf("Name = %q, want coretemp", d.Name)
	}
	if d.Path != root {
		t.Errorf("Path = %q, want %q (path is the instance root itself, not a parent)", d.Path, root)
	}

	temp1, ok := d.Sensors[Key{Type: TypeTemp, Instance: 1}]
	if !ok {
		t.Fatal("temp1 sensor not discovered")
	}
	if temp1.Label != "cpu" {
		t.Errorf("Label = %q, want cpu", temp1.Label)
	}
	if !temp1.HasAttribute("input") || !temp1.HasAttribute("max") {
		t.Error("temp1 missing expected input/max attributes")
	}
	if temp1.HasAttribute("label") {
		t.Error("label must be excluded from Attributes, it is metadata not a capability")
	}

	if _, ok := d.Sensors[Key{Type: TypeFan, Instance: 1}]; !ok {
		t.Error("fan1 sensor not discovered")
	}
}

func TestDiscoverIgnoresUnknownTypesAndSubdirectories(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "pressure1_input"), "1000")
	if err := os.Mkdir(filepath.Join(root, "hwmon0"), 0o700); err != nil {
		t.Fatal(err)
	}

	d, err := Discover(context.Background(), NewIO(), root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(d.Sensors) != 0 {
		t.Errorf("Sensors = %v, want empty (pressure is not a known SensorType, and subdirectories are not walked)", d.Sensors)
	}
}

func TestDiscoverReturnsErrorForMissingPath(t *testing.T) {
	_, err := Discover(context.Background(), NewIO(), filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("Discover() error = nil, want error for missing path")
	}
}
