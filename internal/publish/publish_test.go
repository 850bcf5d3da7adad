// SPDX-License-Identifier: BSD-3-Clause

package publish

import (
	"context"
	"testing"

	"github.com/bmcd/hwmond/internal/sensor"
	"github.com/bmcd/hwmond/pkg/hwmon"
)

type recorder struct {
	subjects []string
}

func (r *recorder) Publish(subject string, _ []byte) error {
	r.subjects = append(r.subjects, subject)
	return nil
}

func newTestObject(key hwmon.Key) *sensor.Object {
	return &sensor.Object{
		Key: key, Label: "cpu", Path: "/xyz/temperature/cpu",
		Unit: "DegreesC", Scale: -3, Value: 42000,
	}
}

func TestEmitObjectAddedPublishesSnapshot(t *testing.T) {
	rec := &recorder{}
	p := New(rec, "hwmond", nil)
	key := hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}
	p.RegisterObject(newTestObject(key))

	p.EmitObjectAdded(context.Background(), key)

	if len(rec.subjects) != 1 || rec.subjects[0] != "hwmond.objects.added.cpu" {
		t.Errorf("subjects = %v, want one publish to hwmond.objects.added.cpu", rec.subjects)
	}
}

func TestRegisterObjectDoesNotEmit(t *testing.T) {
	rec := &recorder{}
	p := New(rec, "hwmond", nil)
	p.RegisterObject(newTestObject(hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}))

	if len(rec.subjects) != 0 {
		t.Errorf("subjects = %v, want none (RegisterObject must not emit)", rec.subjects)
	}
}

func TestUpdateValueEmitsOnlyOnChange(t *testing.T) {
	rec := &recorder{}
	p := New(rec, "hwmond", nil)
	key := hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}
	p.RegisterObject(newTestObject(key))

	p.UpdateValue(context.Background(), key, 42000) // unchanged
	if len(rec.subjects) != 0 {
		t.Fatalf("subjects = %v, want none for an unchanged value", rec.subjects)
	}

	p.UpdateValue(context.Background(), key, 43000) // changed
	if len(rec.subjects) != 1 {
		t.Fatalf("subjects = %v, want one publish for a changed value", rec.subjects)
	}

	p.UpdateValue(context.Background(), key, 43000) // now unchanged again
	if len(rec.subjects) != 1 {
		t.Errorf("subjects = %v, want still one (no duplicate publish)", rec.subjects)
	}
}

func TestUpdateFunctionalEmitsOnlyOnTransition(t *testing.T) {
	rec := &recorder{}
	p := New(rec, "hwmond", nil)
	key := hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}
	obj := newTestObject(key)
	obj.Status = &sensor.StatusCapability{Functional: true}
	p.RegisterObject(obj)

	p.UpdateFunctional(context.Background(), key, true) // no transition
	if len(rec.subjects) != 0 {
		t.Fatalf("subjects = %v, want none before a transition", rec.subjects)
	}

	p.UpdateFunctional(context.Background(), key, false) // transition
	if len(rec.subjects) != 1 {
		t.Errorf("subjects = %v, want one publish on transition", rec.subjects)
	}
}

func TestUpdateAlarmEmitsOnlyOnTransitionPerField(t *testing.T) {
	rec := &recorder{}
	p := New(rec, "hwmond", nil)
	key := hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}
	obj := newTestObject(key)
	obj.Warning = &sensor.ThresholdCapability{Low: 0, High: 40000}
	obj.Critical = &sensor.ThresholdCapability{Low: 0, High: 60000}
	p.RegisterObject(obj)

	p.UpdateAlarm(context.Background(), key, WarningHigh, true)
	p.UpdateAlarm(context.Background(), key, WarningHigh, true) // repeat, no transition
	p.UpdateAlarm(context.Background(), key, CriticalHigh, false) // already false, no transition

	if len(rec.subjects) != 1 {
		t.Errorf("subjects = %v, want exactly one publish (WarningHigh's single transition)", rec.subjects)
	}
}

func TestUpdateAlarmIgnoresUnattachedCapability(t *testing.T) {
	rec := &recorder{}
	p := New(rec, "hwmond", nil)
	key := hwmon.Key{Type: hwmon.TypeTemp, Instance: 1}
	p.RegisterObject(newTestObject(key)) // no Warning/Critical attached

	p.UpdateAlarm(context.Background(), key, WarningHigh, true)

	if len(rec.subjects) != 0 {
		t.Errorf("subjects = %v, want none when the capability was never attached", rec.subjects)
	}
}

func TestUpdateTargetEmitsOnceOnChangeThenSuppressesRepeat(t *testing.T) {
	rec := &recorder{}
	p := New(rec, "hwmond", nil)
	key := hwmon.Key{Type: hwmon.TypeFan, Instance: 1}
	obj := newTestObject(key)
	obj.Target = &sensor.TargetCapability{Kind: sensor.FanSpeed, Path: "/x/fan1_target", Target: 50}
	p.RegisterObject(obj)

	// Mirrors what sensor.WriteTarget does on a successful write: it
	// mutates Target.Target directly before the publisher is ever told,
	// so UpdateTarget cannot diff against obj.Target.Target itself.
	obj.Target.Target = 100
	p.UpdateTarget(context.Background(), key, 100)
	if len(rec.subjects) != 1 || rec.subjects[0] != "hwmond.objects.target.cpu" {
		t.Fatalf("subjects = %v, want one publish to hwmond.objects.target.cpu", rec.subjects)
	}

	// A repeat write of the same value (sensor.WriteTarget's own
	// idempotence leaves Target.Target unchanged at 100).
	p.UpdateTarget(context.Background(), key, 100)
	if len(rec.subjects) != 1 {
		t.Errorf("subjects = %v, want still one (no duplicate publish on a repeat write)", rec.subjects)
	}
}

func TestUpdateTargetIgnoresUnattachedCapability(t *testing.T) {
	rec := &recorder{}
	p := New(rec, "hwmond", nil)
	key := hwmon.Key{Type: hwmon.TypeFan, Instance: 1}
	p.RegisterObject(newTestObject(key)) // no Target attached

	p.UpdateTarget(context.Background(), key, 100)

	if len(rec.subjects) != 0 {
		t.Errorf("subjects = %v, want none when no Target capability was attached", rec.subjects)
	}
}
