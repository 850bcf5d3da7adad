// SPDX-License-Identifier: BSD-3-Clause

// Package hwmond is the main poll loop (C9): it discovers sensors once at
// startup, publishes one object per sensor that resolves a label, then ticks
// forever, refreshing every published object's value, thresholds, and
// status, and forwarding inbound fan-target writes to sysfs.
package hwmond

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/nats-io/nats.go/micro"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bmcd/hwmond/internal/publish"
	"github.com/bmcd/hwmond/internal/sensor"
	"github.com/bmcd/hwmond/internal/sensorcfg"
	"github.com/bmcd/hwmond/pkg/hwmon"
	"github.com/bmcd/hwmond/pkg/log"
)

// Daemon is the hwmon poll/publish service. It implements the suite-wide
// service.Service contract (Name, Run) so it can be launched the same way
// any other in-process service is.
type Daemon struct {
	cfg *config

	io        *hwmon.IO
	publisher *publish.Publisher
	entries   []*sensor.Entry
	nc        *nats.Conn
	js        jetstream.JetStream
	micro     micro.Service
	logger    *slog.Logger
}

// New constructs a Daemon. WithHwmonPath must be supplied before Run is called.
func New(opts ...Option) *Daemon {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt.apply(cfg)
	}
	if cfg.envSource == nil {
		cfg.envSource = sensorcfg.EnvSource{}
	}
	return &Daemon{cfg: cfg}
}

// Name implements service.Service.
func (d *Daemon) Name() string { return d.cfg.serviceName }

// Run implements service.Service. It never returns nil on a healthy
// shutdown path driven by ctx cancellation; per §4.2/§4.9/§6, a device-gone
// condition or a persistent fan write failure instead terminates the whole
// process directly via os.Exit, matching the upstream daemon's contract
// that these are not ordinary service-restart conditions.
func (d *Daemon) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	tracer := otel.Tracer(d.cfg.serviceName)
	ctx, span := tracer.Start(ctx, "hwmond.Run")
	defer span.End()

	d.logger = log.GetGlobalLogger().With("service", d.cfg.serviceName)

	if d.cfg.hwmonPath == "" {
		return fmt.Errorf("%w: hwmon path not configured", ErrInvalidConfiguration)
	}
	d.io = &hwmon.IO{Retries: d.cfg.retries, Delay: d.cfg.retryDelay}

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrNATSConnectionFailed, err)
	}
	d.nc = nc
	defer nc.Drain() //nolint:errcheck

	if d.cfg.persistEvents {
		d.js, err = jetstream.New(nc)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("%w: %w", ErrJetStreamInitFailed, err)
		}
		if _, err := d.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:        d.cfg.streamName,
			Description: "hwmon sensor object events",
			Subjects:    []string{d.cfg.serviceName + ".objects.>"},
			Retention:   jetstream.LimitsPolicy,
			Storage:     jetstream.FileStorage,
			Replicas:    1,
			MaxMsgs:     -1,
			MaxBytes:    -1,
		}); err != nil {
			span.RecordError(err)
			return fmt.Errorf("%w: %w", ErrJetStreamInitFailed, err)
		}
	}

	d.publisher = publish.New(nc, d.cfg.serviceName, d.logger)

	if err := d.discoverAndPublish(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	d.micro, err = micro.AddService(nc, micro.Config{
		Name:        d.cfg.serviceName,
		Description: "hwmon sensor monitoring and fan control",
		Version:     "0.1.0",
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrMicroServiceCreationFailed, err)
	}
	if err := d.micro.AddEndpoint("set_target", micro.HandlerFunc(d.handleSetTarget)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: set_target: %w", ErrEndpointRegistrationFailed, err)
	}

	span.SetAttributes(
		attribute.String("hwmond.path", d.cfg.hwmonPath),
		attribute.Int("hwmond.sensors", len(d.entries)),
	)
	d.logger.InfoContext(ctx, "hwmond started",
		"path", d.cfg.hwmonPath, "sensors", len(d.entries))

	interval := d.pollInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.InfoContext(context.WithoutCancel(ctx), "hwmond shutting down")
			return ctx.Err()
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

// pollInterval returns the device-scoped INTERVAL, read once at startup;
// per §5 there is no per-tick deadline, only this fixed period between
// cycle starts.
func (d *Daemon) pollInterval() time.Duration {
	if v, ok := d.cfg.envSource.Lookup("INTERVAL"); ok {
		if micros, err := parseMicros(v); err == nil {
			return time.Duration(micros) * time.Microsecond
		}
	}
	return sensorcfg.DefaultInterval
}

func parseMicros(v string) (int64, error) {
	var n int64
	_, err := fmt.Sscanf(v, "%d", &n)
	return n, err
}

// exitDeviceGone performs the §4.2/§7 "device gone" policy: exit code 0.
func exitDeviceGone(logger *slog.Logger, err error) {
	logger.Error("hwmon device gone, exiting cleanly", "error", err)
	os.Exit(0)
}

// exitFatal performs the §4.9/§7 fatal write policy (called from the
// set_target handler): non-zero exit so a
// supervisor restarts the process in a clean state.
func exitFatal(logger *slog.Logger, err error) {
	logger.Error("fatal error, exiting", "error", err)
	os.Exit(1)
}
