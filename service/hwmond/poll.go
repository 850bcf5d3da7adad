// SPDX-License-Identifier: BSD-3-Clause

package hwmond

import (
	"context"
	"log/slog"

	"github.com/bmcd/hwmond/internal/publish"
	"github.com/bmcd/hwmond/internal/sensor"
	"github.com/bmcd/hwmond/internal/threshold"
	"github.com/bmcd/hwmond/pkg/hwmon"
	"go.opentelemetry.io/otel"
)

// tick runs one full refresh cycle over every discovered entry, per the
// eleven steps of §4.5. A device-gone classification on any entry's read
// terminates the whole process immediately (§4.2/§7): the daemon was
// launched against one hwmon instance directory, and losing it invalidates
// every other entry under the same directory too.
func (d *Daemon) tick(ctx context.Context) {
	ctx, span := otel.Tracer(d.cfg.serviceName).Start(ctx, "hwmond.tick")
	defer span.End()

	for _, entry := range d.entries {
		d.refreshEntry(ctx, entry)
	}
}

func (d *Daemon) refreshEntry(ctx context.Context, entry *sensor.Entry) {
	logger := d.logger.With("sensor", entry.Object.Key.String(), "label", entry.Object.Label)

	if entry.Config.HasGPIO {
		if d.cfg.gpio == nil {
			logger.Error("sensor requires GPIO unlock but no controller is configured")
			return
		}
		if err := d.cfg.gpio.Unlock(ctx, entry.Config.GPIOChip, entry.Config.GPIOLine); err != nil {
			logger.WarnContext(ctx, "GPIO unlock failed, skipping this cycle", "error", err)
			return
		}
		defer func() {
			if err := d.cfg.gpio.Lock(ctx, entry.Config.GPIOChip, entry.Config.GPIOLine); err != nil {
				logger.WarnContext(ctx, "GPIO lock failed", "error", err)
			}
		}()
	}

	raw, err := d.readValue(ctx, entry)
	if err != nil {
		d.handleReadError(ctx, logger, entry, err)
		return
	}

	value := sensor.Adjust(raw, entry.Config)
	d.publisher.UpdateValue(ctx, entry.Object.Key, value)
	d.evaluateThresholds(ctx, entry, value)
	d.refreshFault(ctx, logger, entry)
}

// readValue performs step 4 of §4.5: read either the rolling average pair or
// the bare input attribute, depending on how the entry was built.
func (d *Daemon) readValue(ctx context.Context, entry *sensor.Entry) (int64, error) {
	if entry.UseAverage {
		avg, err := d.io.ReadInt(ctx, entry.AveragePath)
		if err != nil {
			return 0, err
		}
		interval, err := d.io.ReadInt(ctx, entry.IntervalPath)
		if err != nil {
			return 0, err
		}
		return entry.Avg.Update(avg, interval), nil
	}
	return d.io.ReadInt(ctx, entry.InputPath)
}

// handleReadError implements the REMOVERCS allow-list (silently drop this
// cycle's read for a listed errno) and the device-gone exit policy. Any other
// read failure is logged and the published object keeps its previous state;
// a read failure never terminates the process unless the device is gone.
func (d *Daemon) handleReadError(ctx context.Context, logger *slog.Logger, entry *sensor.Entry, err error) {
	if errno, ok := hwmon.Errno(err); ok && entry.Config.Skipped(int(errno)) {
		logger.DebugContext(ctx, "dropping read for allow-listed errno", "errno", errno)
		return
	}

	switch hwmon.Classify(err) {
	case hwmon.KindDeviceGone:
		exitDeviceGone(logger, err)
	case hwmon.KindTransient:
		logger.WarnContext(ctx, "transient read failure persisted past retry budget", "error", err)
	default:
		logger.ErrorContext(ctx, "read failed, keeping previous value", "error", err)
	}
}

func (d *Daemon) evaluateThresholds(ctx context.Context, entry *sensor.Entry, value int64) {
	obj := entry.Object
	if obj.Warning != nil {
		v := threshold.Evaluate(value, obj.Warning.Low, obj.Warning.High)
		d.publisher.UpdateAlarm(ctx, obj.Key, publish.WarningLow, v.AlarmLow)
		d.publisher.UpdateAlarm(ctx, obj.Key, publish.WarningHigh, v.AlarmHigh)
	}
	if obj.Critical != nil {
		v := threshold.Evaluate(value, obj.Critical.Low, obj.Critical.High)
		d.publisher.UpdateAlarm(ctx, obj.Key, publish.CriticalLow, v.AlarmLow)
		d.publisher.UpdateAlarm(ctx, obj.Key, publish.CriticalHigh, v.AlarmHigh)
	}
}

func (d *Daemon) refreshFault(ctx context.Context, logger *slog.Logger, entry *sensor.Entry) {
	if entry.FaultPath == "" {
		return
	}
	v, err := d.io.ReadInt(ctx, entry.FaultPath)
	if err != nil {
		logger.WarnContext(ctx, "failed to read fault attribute", "path", entry.FaultPath, "error", err)
		return
	}
	d.publisher.UpdateFunctional(ctx, entry.Object.Key, v == 0)
}
