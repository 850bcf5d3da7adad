// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmcd/hwmond/internal/sensorcfg"
	"github.com/bmcd/hwmond/pkg/hwmon"
)

func writeAttr(t *testing.T, devicePath, name, value string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(devicePath, name), []byte(value), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestBuildSkipsSensorWithUnsetLabel(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "temp1_input", "42000")

	discovered := &hwmon.Sensor{
		Key:        hwmon.Key{Type: hwmon.TypeTemp, Instance: 1},
		Attributes: map[string]struct{}{"input": {}},
	}

	entry, err := Build(context.Background(), hwmon.NewIO(), "/xyz", dir, discovered, sensorcfg.MapSource{})
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
	if entry != nil {
		t.Errorf("Build() = %+v, want nil entry for unset label", entry)
	}
}

func TestBuildPlainTempSensor(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "temp1_input", "42000")

	discovered := &hwmon.Sensor{
		Key:        hwmon.Key{Type: hwmon.TypeTemp, Instance: 1},
		Attributes: map[string]struct{}{"input": {}},
	}
	src := sensorcfg.MapSource{"LABEL_temp1": "cpu"}

	entry, err := Build(context.Background(), hwmon.NewIO(), "/xyz", dir, discovered, src)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if entry == nil {
		t.Fatal("Build() = nil entry, want populated entry")
	}
	if entry.Object.Value != 42000 {
		t.Errorf("Value = %d, want 42000", entry.Object.Value)
	}
	if entry.Object.Path != "/xyz/temperature/cpu" {
		t.Errorf("Path = %q, want /xyz/temperature/cpu", entry.Object.Path)
	}
	if entry.Object.Warning != nil || entry.Object.Critical != nil {
		t.Error("Warning/Critical should be nil when no thresholds configured")
	}
	if entry.Object.Status != nil {
		t.Error("Status should be nil when no fault attribute present")
	}
}

func TestBuildFanPrefersFanSpeedOverFanPwm(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "fan1_input", "3000")
	writeAttr(t, dir, "fan1_target", "3000")
	writeAttr(t, dir, "pwm1", "128")

	discovered := &hwmon.Sensor{
		Key:        hwmon.Key{Type: hwmon.TypeFan, Instance: 1},
		Attributes: map[string]struct{}{"input": {}, "target": {}},
	}
	src := sensorcfg.MapSource{"LABEL_fan1": "rear_fan"}

	entry, err := Build(context.Background(), hwmon.NewIO(), "/xyz", dir, discovered, src)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if entry.Object.Target == nil {
		t.Fatal("Target = nil, want FanSpeed capability")
	}
	if entry.Object.Target.Kind != FanSpeed {
		t.Errorf("Target.Kind = %v, want FanSpeed", entry.Object.Target.Kind)
	}
}

func TestBuildFanFallsBackToBarePwm(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "fan1_input", "3000")
	writeAttr(t, dir, "pwm1", "128")

	discovered := &hwmon.Sensor{
		Key:        hwmon.Key{Type: hwmon.TypeFan, Instance: 1},
		Attributes: map[string]struct{}{"input": {}},
	}
	src := sensorcfg.MapSource{"LABEL_fan1": "rear_fan"}

	entry, err := Build(context.Background(), hwmon.NewIO(), "/xyz", dir, discovered, src)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if entry.Object.Target == nil || entry.Object.Target.Kind != FanPwm {
		t.Errorf("Target = %+v, want FanPwm capability", entry.Object.Target)
	}
}

func TestBuildAttachesWarningAndCriticalCapabilities(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "temp1_input", "50000")

	discovered := &hwmon.Sensor{
		Key:        hwmon.Key{Type: hwmon.TypeTemp, Instance: 1},
		Attributes: map[string]struct{}{"input": {}},
	}
	src := sensorcfg.MapSource{
		"LABEL_temp1":  "cpu",
		"WARNLO_temp1": "0",
		"WARNHI_temp1": "40000",
		"CRITLO_temp1": "0",
		"CRITHI_temp1": "60000",
	}

	entry, err := Build(context.Background(), hwmon.NewIO(), "/xyz", dir, discovered, src)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if entry.Object.Warning == nil || !entry.Object.Warning.AlarmHigh {
		t.Errorf("Warning = %+v, want AlarmHigh=true (50000 > 40000)", entry.Object.Warning)
	}
	if entry.Object.Critical == nil || entry.Object.Critical.AlarmHigh {
		t.Errorf("Critical = %+v, want AlarmHigh=false (50000 <= 60000)", entry.Object.Critical)
	}
}

func TestBuildAttachesStatusFromFaultAttribute(t *testing.T) {
	dir := t.TempDir()
	writeAttr(t, dir, "temp1_input", "1000")
	writeAttr(t, dir, "temp1_fault", "1")

	discovered := &hwmon.Sensor{
		Key:        hwmon.Key{Type: hwmon.TypeTemp, Instance: 1},
		Attributes: map[string]struct{}{"input": {}, "fault": {}},
	}
	src := sensorcfg.MapSource{"LABEL_temp1": "cpu"}

	entry, err := Build(context.Background(), hwmon.NewIO(), "/xyz", dir, discovered, src)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if entry.Object.Status == nil || entry.Object.Status.Functional {
		t.Errorf("Status = %+v, want Functional=false (fault=1)", entry.Object.Status)
	}
}
