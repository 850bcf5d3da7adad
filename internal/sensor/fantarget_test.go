// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmcd/hwmond/pkg/hwmon"
)

func TestWriteTargetNoopWhenValueAlreadyPublished(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fan1_target")
	// Deliberately no file at path: if WriteTarget tried to write, this
	// would fail, proving the no-op path never touches sysfs.
	target := &TargetCapability{Kind: FanSpeed, Path: path, Target: 4000}

	if err := WriteTarget(context.Background(), hwmon.NewIO(), target, 4000); err != nil {
		t.Fatalf("WriteTarget() error = %v, want nil on idempotent write", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("WriteTarget() wrote to sysfs despite value matching the published target")
	}
}

func TestWriteTargetFanSpeedFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "fan1_target")
	target := &TargetCapability{Kind: FanSpeed, Path: path, Target: 1000}

	err := WriteTarget(context.Background(), &hwmon.IO{Retries: 0}, target, 2000)
	if !errors.Is(err, ErrFanWriteFatal) {
		t.Errorf("WriteTarget() error = %v, want ErrFanWriteFatal", err)
	}
}

func TestWriteTargetFanPwmFailureIsSwallowed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "pwm1")
	target := &TargetCapability{Kind: FanPwm, Path: path, Target: 50}

	err := WriteTarget(context.Background(), &hwmon.IO{Retries: 0}, target, 75)
	if err != nil {
		t.Errorf("WriteTarget() error = %v, want nil (FanPwm swallows write failure)", err)
	}
	if target.Target != 50 {
		t.Errorf("Target = %d, want unchanged at 50 after a swallowed failure", target.Target)
	}
}

func TestWriteTargetUpdatesTargetOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fan1_target")
	if err := os.WriteFile(path, []byte("1000"), 0o600); err != nil {
		t.Fatal(err)
	}
	target := &TargetCapability{Kind: FanSpeed, Path: path, Target: 1000}

	if err := WriteTarget(context.Background(), hwmon.NewIO(), target, 3000); err != nil {
		t.Fatalf("WriteTarget() error = %v", err)
	}
	if target.Target != 3000 {
		t.Errorf("Target = %d, want 3000", target.Target)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "3000" {
		t.Errorf("file contents = %q, want \"3000\"", data)
	}
}
