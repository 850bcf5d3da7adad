// SPDX-License-Identifier: BSD-3-Clause

package sensorcfg

import (
	"errors"
	"testing"

	"github.com/bmcd/hwmond/pkg/hwmon"
)

func TestResolveLabelUnsetReturnsErrLabelUnset(t *testing.T) {
	src := MapSource{}
	key := hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}
	if _, err := ResolveLabel(src, key); !errors.Is(err, ErrLabelUnset) {
		t.Errorf("ResolveLabel() error = %v, want ErrLabelUnset", err)
	}
}

func TestResolveThresholdRequiresBothBounds(t *testing.T) {
	key := hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}
	src := MapSource{
		"LABEL_temp1":  "cpu",
		"WARNLO_temp1": "10",
		// WARNHI deliberately absent
	}
	cfg, err := Resolve(src, key, "cpu")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Warning != nil {
		t.Errorf("Warning = %+v, want nil when only one bound is set", cfg.Warning)
	}
}

func TestResolveThresholdRejectsLowAboveHigh(t *testing.T) {
	key := hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}
	src := MapSource{
		"LABEL_temp1": "cpu",
		"CRITLO_temp1": "100",
		"CRITHI_temp1": "50",
	}
	if _, err := Resolve(src, key, "cpu"); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Resolve() error = %v, want ErrInvalidThreshold", err)
	}
}

func TestIndirectLabelLookupFallback(t *testing.T) {
	key := hwmon.Key{Type: hwmon.TypeFan, Instance: 2}
	src := MapSource{
		"LABEL_fan2": "rear_fan",
		"GAIN_rear_fan": "2.0", // keyed by label, not by fan2
	}
	cfg, err := Resolve(src, key, "rear_fan")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Gain != 2.0 {
		t.Errorf("Gain = %v, want 2.0 via indirect label lookup", cfg.Gain)
	}
}

func TestRemoveRCsMergesSensorAndDeviceScope(t *testing.T) {
	key := hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}
	src := MapSource{
		"LABEL_temp1":       "cpu",
		"REMOVERCS":         "5,6",
		"REMOVERCS_temp1":   "7",
	}
	cfg, err := Resolve(src, key, "cpu")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, rc := range []int{5, 6, 7} {
		if !cfg.Skipped(rc) {
			t.Errorf("Skipped(%d) = false, want true", rc)
		}
	}
	if cfg.Skipped(8) {
		t.Error("Skipped(8) = true, want false")
	}
}

func TestGPIOChipWithoutLineIsInvalid(t *testing.T) {
	key := hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}
	src := MapSource{
		"LABEL_temp1":    "cpu",
		"GPIOCHIP_temp1": "gpiochip0",
	}
	if _, err := Resolve(src, key, "cpu"); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("Resolve() error = %v, want ErrInvalidThreshold", err)
	}
}
