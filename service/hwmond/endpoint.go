// SPDX-License-Identifier: BSD-3-Clause

package hwmond

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go/micro"

	"github.com/bmcd/hwmond/internal/sensor"
	"github.com/bmcd/hwmond/pkg/hwmon"
)

// setTargetRequest is the wire request for the "set_target" endpoint: write
// value to the fan identified by type+instance (e.g. "fan", 1).
type setTargetRequest struct {
	Type     string `json:"type"`
	Instance int    `json:"instance"`
	Value    int64  `json:"value"`
}

type setTargetResponse struct {
	Target int64 `json:"target"`
}

// handleSetTarget applies an inbound fan-target write (§4.10/C10). It finds
// the matching entry by key, delegates the write policy split to
// sensor.WriteTarget, publishes the resulting target over the bus the same
// way every other property is published, and surfaces ErrFanWriteFatal as a
// process exit per the FanSpeed write-failure contract, mirroring the
// handler style the monitoring service uses for its own endpoints.
func (d *Daemon) handleSetTarget(req micro.Request) {
	var r setTargetRequest
	if err := json.Unmarshal(req.Data(), &r); err != nil {
		_ = req.Error("400", "invalid request body", nil)
		return
	}

	key := hwmon.Key{Type: hwmon.SensorType(r.Type), Instance: r.Instance}
	entry := d.findEntry(key)
	if entry == nil || entry.Object.Target == nil {
		_ = req.Error("404", "fan target not found", nil)
		return
	}

	ctx := context.Background()
	if err := sensor.WriteTarget(ctx, d.io, entry.Object.Target, r.Value); err != nil {
		if errors.Is(err, sensor.ErrFanWriteFatal) {
			_ = req.Error("500", "fan target write failed", nil)
			exitFatal(d.logger, err)
			return
		}
		_ = req.Error("500", "fan target write failed", nil)
		return
	}

	d.publisher.UpdateTarget(ctx, key, entry.Object.Target.Target)

	data, err := json.Marshal(setTargetResponse{Target: entry.Object.Target.Target})
	if err != nil {
		_ = req.Error("500", "failed to encode response", nil)
		return
	}
	_ = req.Respond(data)
}

func (d *Daemon) findEntry(key hwmon.Key) *sensor.Entry {
	for _, e := range d.entries {
		if e.Object.Key == key {
			return e
		}
	}
	return nil
}
