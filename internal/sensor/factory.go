// SPDX-License-Identifier: BSD-3-Clause

package sensor

import (
	"context"
	"errors"
	"fmt"

	"github.com/bmcd/hwmond/internal/average"
	"github.com/bmcd/hwmond/internal/sensorcfg"
	"github.com/bmcd/hwmond/internal/threshold"
	"github.com/bmcd/hwmond/pkg/hwmon"
)

// ErrFactoryFatal wraps a mandatory build step that failed persistently
// (not the LABEL-unset skip case, which is ordinary and silent).
var ErrFactoryFatal = errors.New("sensor factory build failed")

// Entry bundles a published Object with everything the poll loop (service/hwmond)
// needs to refresh it on each tick: the device directory it lives under, its
// resolved configuration, the rolling-average state if it uses one, and the
// paths of the attributes the pipeline touches.
type Entry struct {
	Object      *Object
	DevicePath  string
	Config      *sensorcfg.Config
	InputPath   string
	FaultPath   string // "" if this sensor has no fault attribute
	UseAverage  bool
	AveragePath string
	IntervalPath string
	Avg         average.State
}

// Build executes the eight-step sequence of §4.4: resolve label (skip if
// unset), perform the initial read, run the post-processing pipeline, derive
// the object path, attach Value, optionally attach Warning/Critical/Status,
// and attach a fan target if this is a controllable fan. It registers
// nothing with a publisher; the caller does that once Build returns.
//
// Build returns (nil, nil) when the sensor should be silently skipped
// (LABEL unset) — the zero value is not an error.
func Build(ctx context.Context, io *hwmon.IO, busRoot, devicePath string, discovered *hwmon.Sensor, src sensorcfg.Source) (*Entry, error) {
	key := discovered.Key

	label, err := sensorcfg.ResolveLabel(src, key)
	if err != nil {
		if errors.Is(err, sensorcfg.ErrLabelUnset) {
			return nil, nil
		}
		return nil, err
	}

	cfg, err := sensorcfg.Resolve(src, key, label)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFactoryFatal, key, err)
	}

	class, ok := hwmon.Classes[key.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no sensor class", ErrFactoryFatal, key)
	}

	entry := &Entry{
		DevicePath: devicePath,
		Config:     cfg,
		InputPath:  hwmon.BuildPath(devicePath, key, "input"),
	}

	if discovered.HasAttribute("average") && discovered.HasAttribute("average_interval") {
		entry.UseAverage = cfg.Average
		entry.AveragePath = hwmon.BuildPath(devicePath, key, "average")
		entry.IntervalPath = hwmon.BuildPath(devicePath, key, "average_interval")
	}

	raw, err := readInitial(ctx, io, entry)
	if err != nil {
		return nil, err
	}
	value := Adjust(raw, cfg)

	obj := &Object{
		Key:   key,
		Label: label,
		Path:  ObjectPath(busRoot, class.Namespace, label),
		Unit:  class.Unit,
		Scale: class.Scale,
		Value: value,
	}

	if cfg.Warning != nil {
		v := threshold.Evaluate(value, cfg.Warning.Low, cfg.Warning.High)
		obj.Warning = &ThresholdCapability{
			Low: cfg.Warning.Low, High: cfg.Warning.High,
			AlarmLow: v.AlarmLow, AlarmHigh: v.AlarmHigh,
		}
	}
	if cfg.Critical != nil {
		v := threshold.Evaluate(value, cfg.Critical.Low, cfg.Critical.High)
		obj.Critical = &ThresholdCapability{
			Low: cfg.Critical.Low, High: cfg.Critical.High,
			AlarmLow: v.AlarmLow, AlarmHigh: v.AlarmHigh,
		}
	}

	if discovered.HasAttribute("fault") {
		entry.FaultPath = hwmon.BuildPath(devicePath, key, "fault")
		functional := true
		if faultVal, err := io.ReadInt(ctx, entry.FaultPath); err == nil {
			functional = faultVal == 0
		}
		obj.Status = &StatusCapability{Functional: functional}
	}

	if key.Type == hwmon.TypeFan {
		target, err := buildFanTarget(ctx, io, devicePath, key, discovered, cfg)
		if err != nil {
			return nil, err
		}
		obj.Target = target
	}

	entry.Object = obj
	return entry, nil
}

func readInitial(ctx context.Context, io *hwmon.IO, entry *Entry) (int64, error) {
	if entry.UseAverage {
		avg, err := io.ReadInt(ctx, entry.AveragePath)
		if err != nil {
			return 0, err
		}
		interval, err := io.ReadInt(ctx, entry.IntervalPath)
		if err != nil {
			return 0, err
		}
		return entry.Avg.Update(avg, interval), nil
	}
	return io.ReadInt(ctx, entry.InputPath)
}

// buildFanTarget attaches FanSpeed (fan<id>_target) in preference to FanPwm
// (pwm<id>) when both are present, resolving the Open Question §9 leaves:
// "choose fan*_target if present, else pwm<id>".
func buildFanTarget(ctx context.Context, io *hwmon.IO, devicePath string, key hwmon.Key, discovered *hwmon.Sensor, cfg *sensorcfg.Config) (*TargetCapability, error) {
	var target *TargetCapability

	if discovered.HasAttribute("target") {
		path := hwmon.BuildPath(devicePath, key, "target")
		current, err := io.ReadInt(ctx, path)
		if err != nil {
			current = 0
		}
		target = &TargetCapability{Kind: FanSpeed, Path: path, Target: current}
	} else if pwmPath, ok := fanPwmPath(devicePath, key); ok {
		current, err := io.ReadInt(ctx, pwmPath)
		if err != nil {
			current = 0
		}
		target = &TargetCapability{Kind: FanPwm, Path: pwmPath, Target: current}
	}

	if target != nil && cfg.Enable != nil {
		enablePath := hwmon.BuildPath(devicePath, hwmon.Key{Type: "pwm", Instance: key.Instance}, "enable")
		if err := io.WriteInt(ctx, enablePath, *cfg.Enable); err != nil {
			if target.Kind == FanSpeed {
				return nil, fmt.Errorf("%w: %s: %w", ErrFactoryFatal, enablePath, err)
			}
		}
	}

	return target, nil
}

// fanPwmPath looks for a bare pwm<id> file alongside a fan<id> tachometer,
// the attribute convention FanPwm writes to with no entry suffix.
func fanPwmPath(devicePath string, key hwmon.Key) (string, bool) {
	path := hwmon.BuildPath(devicePath, hwmon.Key{Type: "pwm", Instance: key.Instance}, "")
	return path, hwmon.FileExists(path)
}
