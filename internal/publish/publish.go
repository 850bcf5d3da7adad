// SPDX-License-Identifier: BSD-3-Clause

package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/bmcd/hwmond/internal/sensor"
	"github.com/bmcd/hwmond/pkg/hwmon"
)

// Conn is the narrow subset of *nats.Conn the publisher needs, so tests can
// substitute an in-memory recorder instead of a live NATS connection.
type Conn interface {
	Publish(subject string, data []byte) error
}

var _ Conn = (*nats.Conn)(nil)

// Publisher owns the map from SensorKey to published Object and serializes
// all mutation through a mutex, since bus-initiated writes (fan targets) and
// the poll loop both call into it from the same cooperative thread but
// nothing prevents a future caller from doing otherwise.
type Publisher struct {
	mu          sync.Mutex
	objects     map[hwmon.Key]*sensor.Object
	lastTargets map[hwmon.Key]int64
	nc          Conn
	logger      *slog.Logger
	prefix      string
}

// New creates a Publisher that publishes change notifications under
// "<prefix>.objects.*" subjects.
func New(nc Conn, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		objects:     make(map[hwmon.Key]*sensor.Object),
		lastTargets: make(map[hwmon.Key]int64),
		nc:          nc,
		logger:      logger,
		prefix:      prefix,
	}
}

// snapshot is the wire representation of a published object, sent on
// ObjectAdded and reused as the envelope for individual property updates.
type snapshot struct {
	Path     string  `json:"path"`
	Label    string  `json:"label"`
	Unit     string  `json:"unit"`
	Scale    int     `json:"scale"`
	Value    int64   `json:"value"`
	Field    string  `json:"field,omitempty"`
	BoolVal  *bool   `json:"bool_value,omitempty"`
	Int64Val *int64  `json:"int64_value,omitempty"`
}

// RegisterObject stores obj without emitting any notification. Callers must
// follow with EmitObjectAdded once every initial capability is attached
// (§4.4 step 9).
func (p *Publisher) RegisterObject(obj *sensor.Object) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.objects[obj.Key] = obj
	if obj.Target != nil {
		p.lastTargets[obj.Key] = obj.Target.Target
	}
}

// EmitObjectAdded publishes the full initial snapshot of a newly registered object.
func (p *Publisher) EmitObjectAdded(ctx context.Context, key hwmon.Key) {
	p.mu.Lock()
	obj, ok := p.objects[key]
	p.mu.Unlock()
	if !ok {
		return
	}

	p.publish(ctx, "added", obj.Label, snapshot{
		Path: obj.Path, Label: obj.Label, Unit: obj.Unit, Scale: obj.Scale, Value: obj.Value,
	})
}

// Object returns the currently published object for key, or nil if none exists.
func (p *Publisher) Object(key hwmon.Key) *sensor.Object {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.objects[key]
}

// UpdateValue sets the published value for key and emits a change
// notification only if the value actually differs from what was stored.
func (p *Publisher) UpdateValue(ctx context.Context, key hwmon.Key, value int64) {
	p.mu.Lock()
	obj, ok := p.objects[key]
	if !ok || obj.Value == value {
		p.mu.Unlock()
		return
	}
	obj.Value = value
	label, path, unit, scale := obj.Label, obj.Path, obj.Unit, obj.Scale
	p.mu.Unlock()

	p.publish(ctx, "value", label, snapshot{Path: path, Label: label, Unit: unit, Scale: scale, Value: value})
}

// UpdateTarget records that key's Target capability now holds value and
// emits a notification only if it differs from the last value this
// Publisher emitted (§ scenario S6: a repeat write of the already-published
// target re-issues neither the sysfs write nor the notification). The diff
// is tracked separately from sensor.TargetCapability.Target, since
// sensor.WriteTarget already mutates that field by the time the caller gets
// here — comparing against it would never observe a change.
func (p *Publisher) UpdateTarget(ctx context.Context, key hwmon.Key, value int64) {
	p.mu.Lock()
	obj, ok := p.objects[key]
	if !ok || obj.Target == nil {
		p.mu.Unlock()
		return
	}
	if last, seen := p.lastTargets[key]; seen && last == value {
		p.mu.Unlock()
		return
	}
	p.lastTargets[key] = value
	label, path := obj.Label, obj.Path
	p.mu.Unlock()

	p.publish(ctx, "target", label, snapshot{Path: path, Label: label, Field: "target", Int64Val: &value})
}

// UpdateFunctional updates the Status capability's functional flag, emitting
// a notification only on transition.
func (p *Publisher) UpdateFunctional(ctx context.Context, key hwmon.Key, functional bool) {
	p.mu.Lock()
	obj, ok := p.objects[key]
	if !ok || obj.Status == nil || obj.Status.Functional == functional {
		p.mu.Unlock()
		return
	}
	obj.Status.Functional = functional
	label, path := obj.Label, obj.Path
	p.mu.Unlock()

	p.publish(ctx, "functional", label, snapshot{Path: path, Label: label, Field: "functional", BoolVal: &functional})
}

// Which identifies one of the four alarm properties a Warning or Critical
// capability exposes.
type Which string

const (
	WarningLow   Which = "warningAlarmLow"
	WarningHigh  Which = "warningAlarmHigh"
	CriticalLow  Which = "criticalAlarmLow"
	CriticalHigh Which = "criticalAlarmHigh"
)

// UpdateAlarm sets one of the four alarm booleans, emitting a notification
// only on transition. Which sensor capability (Warning or Critical) is
// addressed is implied by which; the caller has already run threshold.Evaluate
// against the appropriate bound pair.
func (p *Publisher) UpdateAlarm(ctx context.Context, key hwmon.Key, which Which, alarm bool) {
	p.mu.Lock()
	obj, ok := p.objects[key]
	if !ok {
		p.mu.Unlock()
		return
	}

	var changed bool
	switch which {
	case WarningLow:
		changed = obj.Warning != nil && obj.Warning.AlarmLow != alarm
		if changed {
			obj.Warning.AlarmLow = alarm
		}
	case WarningHigh:
		changed = obj.Warning != nil && obj.Warning.AlarmHigh != alarm
		if changed {
			obj.Warning.AlarmHigh = alarm
		}
	case CriticalLow:
		changed = obj.Critical != nil && obj.Critical.AlarmLow != alarm
		if changed {
			obj.Critical.AlarmLow = alarm
		}
	case CriticalHigh:
		changed = obj.Critical != nil && obj.Critical.AlarmHigh != alarm
		if changed {
			obj.Critical.AlarmHigh = alarm
		}
	}
	if !changed {
		p.mu.Unlock()
		return
	}
	label, path := obj.Label, obj.Path
	p.mu.Unlock()

	p.publish(ctx, string(which), label, snapshot{Path: path, Label: label, Field: string(which), BoolVal: &alarm})
}

func (p *Publisher) publish(ctx context.Context, kind, label string, s snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal object snapshot", "error", err)
		return
	}

	subject := fmt.Sprintf("%s.objects.%s.%s", p.prefix, kind, label)
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.WarnContext(ctx, "failed to publish object update",
			"subject", subject, "error", err)
	}
}
