// SPDX-License-Identifier: BSD-3-Clause

// Command hwmond discovers and publishes Linux hwmon sysfs sensors over an
// embedded NATS bus, evaluating thresholds and forwarding fan-target writes
// back to sysfs on every poll cycle.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bmcd/hwmond/pkg/gpio"
	"github.com/bmcd/hwmond/pkg/telemetry"
	"github.com/bmcd/hwmond/service/hwmond"
	"github.com/bmcd/hwmond/service/ipc"
)

func main() {
	path := flag.String("path", "", "hwmon instance directory to discover sensors under (e.g. /sys/class/hwmon/hwmon0)")
	busRoot := flag.String("bus-root", hwmond.DefaultBusRoot, "object path prefix published sensors are mounted under")
	persist := flag.Bool("persist-events", false, "record published object events to a durable JetStream stream")
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if *path == "" {
		fmt.Fprintln(os.Stderr, "hwmond: -path is required")
		os.Exit(1)
	}
	if _, err := os.Stat(*path); err != nil {
		fmt.Fprintf(os.Stderr, "hwmond: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.WithServiceName(hwmond.DefaultServiceName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hwmond: telemetry setup: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTelemetry(context.WithoutCancel(ctx)) }()

	bus := ipc.New(ipc.WithName("hwmond-ipc"))
	busErr := make(chan error, 1)
	go func() { busErr <- bus.Run(ctx, nil) }()

	daemon := hwmond.New(
		hwmond.WithHwmonPath(*path),
		hwmond.WithBusRoot(*busRoot),
		hwmond.WithEventPersistence(*persist),
		hwmond.WithGPIO(gpio.NewController()),
	)

	// Run returns a startup error or, on ctx cancellation, ctx.Err(). A
	// device-gone condition exits the process via os.Exit from the poll loop,
	// and a persistent fan write failure from the set_target handler; neither
	// reaches this point.
	if err := daemon.Run(ctx, bus.GetConnProvider()); err != nil {
		cancel()
		<-time.After(100 * time.Millisecond)

		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "hwmond: %v\n", err)
			os.Exit(1)
		}
	}

	cancel()
	if err := <-busErr; err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "hwmond: ipc shutdown: %v\n", err)
		os.Exit(1)
	}
}
