// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"testing"

	"github.com/bmcd/hwmond/internal/sensorcfg"
)

func TestAdjustAppliesGainAndOffset(t *testing.T) {
	cfg := &sensorcfg.Config{Gain: 2.0, Offset: -500}
	got := Adjust(1000, cfg)
	want := int64(1500)
	if got != want {
		t.Errorf("Adjust() = %d, want %d", got, want)
	}
}

func TestAdjustClampsToMinValue(t *testing.T) {
	min := int64(0)
	cfg := &sensorcfg.Config{Gain: 1.0, MinValue: &min}
	got := Adjust(-50, cfg)
	if got != 0 {
		t.Errorf("Adjust() = %d, want 0 (clamped to MinValue)", got)
	}
}

func TestAdjustClampsToMaxValue(t *testing.T) {
	max := int64(100)
	cfg := &sensorcfg.Config{Gain: 1.0, MaxValue: &max}
	got := Adjust(500, cfg)
	if got != 100 {
		t.Errorf("Adjust() = %d, want 100 (clamped to MaxValue)", got)
	}
}

func TestAdjustDoesNotApplyScale(t *testing.T) {
	cfg := &sensorcfg.Config{Gain: 1.0}
	got := Adjust(42000, cfg)
	if got != 42000 {
		t.Errorf("Adjust() = %d, want 42000 unchanged (scale is metadata, not applied here)", got)
	}
}
