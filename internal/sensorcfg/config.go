// SPDX-License-Identifier: BSD-3-Clause

package sensorcfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bmcd/hwmond/pkg/hwmon"
)

var (
	// ErrLabelUnset indicates a sensor has no LABEL_<type><id> configured; the
	// caller must skip the sensor rather than treat this as fatal.
	ErrLabelUnset = errors.New("sensor label not configured")
	// ErrInvalidThreshold indicates a configured value was present but malformed:
	// a WARN/CRIT bound pair or any other numeric or GPIO setting Resolve parses.
	ErrInvalidThreshold = errors.New("invalid threshold configuration")
)

// DefaultInterval is the device polling period used when INTERVAL is unset.
const DefaultInterval = time.Second

// Source resolves a single environment key to its raw string value.
// EnvSource adapts os.LookupEnv to it; tests supply a map-backed Source.
type Source interface {
	Lookup(key string) (string, bool)
}

// EnvSource resolves keys against the real process environment.
type EnvSource struct{}

// Lookup implements Source.
func (EnvSource) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// MapSource resolves keys against an in-memory map, used by tests and by
// any caller that wants to pre-load configuration rather than read it from
// the process environment.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) { v, ok := m[key]; return v, ok }

// Threshold is a pair of bounds for the Warning or Critical capability.
type Threshold struct {
	Low, High int64
}

// Config is the fully resolved per-sensor configuration.
type Config struct {
	Label      string
	Warning    *Threshold
	Critical   *Threshold
	Gain       float64
	Offset     float64
	MinValue   *int64
	MaxValue   *int64
	Average    bool
	Enable     *int64
	RemoveRCs  map[int]struct{}
	Interval   time.Duration
	GPIOChip   string
	GPIOLine   int
	HasGPIO    bool
}

// lookup tries the sensor-scoped key "PREFIX_<type><id>" first, then falls
// back to an indirect lookup keyed by the sensor's resolved label
// ("PREFIX_<label>"), supporting re-keyed lookups shared across renumbered
// instances.
func lookup(src Source, prefix string, key hwmon.Key, label string) (string, bool) {
	if v, ok := src.Lookup(prefix + "_" + key.String()); ok {
		return v, ok
	}
	if label != "" {
		if v, ok := src.Lookup(prefix + "_" + label); ok {
			return v, ok
		}
	}
	return "", false
}

// ResolveLabel resolves LABEL_<type><id> alone, since discovery must know the
// label before anything else can be resolved (including indirect lookups
// that key off the label itself).
func ResolveLabel(src Source, key hwmon.Key) (string, error) {
	v, ok := src.Lookup("LABEL_" + key.String())
	if !ok || v == "" {
		return "", ErrLabelUnset
	}
	return v, nil
}

// Resolve builds a Config for the sensor identified by key, given its
// already-resolved label.
func Resolve(src Source, key hwmon.Key, label string) (*Config, error) {
	cfg := &Config{
		Label:     label,
		Gain:      1.0,
		Offset:    0,
		Interval:  DefaultInterval,
		RemoveRCs: map[int]struct{}{},
	}

	if th, err := resolveThreshold(src, "WARN", key, label); err != nil {
		return nil, err
	} else {
		cfg.Warning = th
	}
	if th, err := resolveThreshold(src, "CRIT", key, label); err != nil {
		return nil, err
	} else {
		cfg.Critical = th
	}

	if v, ok := lookup(src, "GAIN", key, label); ok {
		g, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: GAIN_%s: %w", ErrInvalidThreshold, key, err)
		}
		cfg.Gain = g
	}
	if v, ok := lookup(src, "OFFSET", key, label); ok {
		o, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: OFFSET_%s: %w", ErrInvalidThreshold, key, err)
		}
		cfg.Offset = o
	}

	if v, ok := lookup(src, "MINVALUE", key, label); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: MINVALUE_%s: %w", ErrInvalidThreshold, key, err)
		}
		cfg.MinValue = &n
	}
	if v, ok := lookup(src, "MAXVALUE", key, label); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: MAXVALUE_%s: %w", ErrInvalidThreshold, key, err)
		}
		cfg.MaxValue = &n
	}

	if v, ok := lookup(src, "AVERAGE", key, label); ok {
		cfg.Average = strings.EqualFold(strings.TrimSpace(v), "true")
	}

	if v, ok := lookup(src, "ENABLE", key, label); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: ENABLE_%s: %w", ErrInvalidThreshold, key, err)
		}
		cfg.Enable = &n
	}

	for _, prefix := range []string{"REMOVERCS", "REMOVERCS_" + key.String()} {
		v, ok := src.Lookup(prefix)
		if !ok {
			continue
		}
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("%w: REMOVERCS: %q: %w", ErrInvalidThreshold, part, err)
			}
			cfg.RemoveRCs[n] = struct{}{}
		}
	}

	if v, ok := src.Lookup("INTERVAL"); ok {
		micros, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: INTERVAL: %w", ErrInvalidThreshold, err)
		}
		cfg.Interval = time.Duration(micros) * time.Microsecond
	}

	if chip, ok := lookup(src, "GPIOCHIP", key, label); ok {
		line, ok2 := lookup(src, "GPIO", key, label)
		if !ok2 {
			return nil, fmt.Errorf("%w: GPIOCHIP_%s set without GPIO_%s", ErrInvalidThreshold, key, key)
		}
		offset, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("%w: GPIO_%s: %w", ErrInvalidThreshold, key, err)
		}
		cfg.GPIOChip = chip
		cfg.GPIOLine = offset
		cfg.HasGPIO = true
	}

	return cfg, nil
}

func resolveThreshold(src Source, prefix string, key hwmon.Key, label string) (*Threshold, error) {
	lo, okLo := lookup(src, prefix+"LO", key, label)
	hi, okHi := lookup(src, prefix+"HI", key, label)
	if !okLo || !okHi {
		return nil, nil
	}

	loVal, err := strconv.ParseInt(lo, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %sLO_%s: %w", ErrInvalidThreshold, prefix, key, err)
	}
	hiVal, err := strconv.ParseInt(hi, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %sHI_%s: %w", ErrInvalidThreshold, prefix, key, err)
	}
	if loVal > hiVal {
		return nil, fmt.Errorf("%w: %s_%s: low %d exceeds high %d", ErrInvalidThreshold, prefix, key, loVal, hiVal)
	}

	return &Threshold{Low: loVal, High: hiVal}, nil
}

// Skipped reports whether errno rc should be silently dropped for this sensor,
// per the REMOVERCS configuration (sensor-scoped ∪ device-scoped sets,
// already merged into cfg.RemoveRCs by Resolve).
func (c *Config) Skipped(rc int) bool {
	_, ok := c.RemoveRCs[rc]
	return ok
}
