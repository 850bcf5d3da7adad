// SPDX-License-Identifier: BSD-3-Clause

package hwmond

import (
	"context"
	"fmt"

	"github.com/bmcd/hwmond/internal/sensor"
	"github.com/bmcd/hwmond/pkg/hwmon"
)

// discoverAndPublish runs the one-time startup sequence of §4.3/§4.4: list
// the configured hwmon instance root directly, build an Entry for every
// attribute group that resolves a label, and publish each as an object.
// A device that disappears mid-scan is not an error here; only the poll
// loop's per-tick reads enforce the device-gone exit policy, since a device
// racing discovery at boot is common and not itself abnormal.
func (d *Daemon) discoverAndPublish(ctx context.Context) error {
	dev, err := hwmon.Discover(ctx, d.io, d.cfg.hwmonPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	for _, s := range dev.Sensors {
		entry, err := sensor.Build(ctx, d.io, d.cfg.busRoot, dev.Path, s, d.cfg.envSource)
		if err != nil {
			d.logger.WarnContext(ctx, "failed to build sensor, skipping",
				"device", dev.Path, "sensor", s.Key.String(), "error", err)
			continue
		}
		if entry == nil {
			// LABEL_<type><id> unset: silently skipped per §4.4.
			continue
		}

		d.entries = append(d.entries, entry)
		d.publisher.RegisterObject(entry.Object)
		d.publisher.EmitObjectAdded(ctx, entry.Object.Key)
	}

	return nil
}
