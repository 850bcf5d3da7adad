// SPDX-License-Identifier: BSD-3-Clause

package hwmond

import (
	"time"

	"github.com/bmcd/hwmond/pkg/gpio"
	"github.com/bmcd/hwmond/pkg/hwmon"
)

const (
	// DefaultServiceName is used when WithServiceName is not supplied.
	DefaultServiceName = "hwmond"
	// DefaultBusRoot is prefixed to every published object's path.
	DefaultBusRoot = "/xyz/openbmc_project/sensors"
	// DefaultStreamName is the JetStream stream durable object events are appended to.
	DefaultStreamName = "HWMOND_OBJECTS"
)

type config struct {
	serviceName    string
	hwmonPath      string
	busRoot        string
	retries        int
	retryDelay     time.Duration
	persistEvents  bool
	streamName     string
	gpio           gpio.Unlocker
	envSource      Source
}

// Source resolves configuration keys. It declares the same method set as
// sensorcfg.Source, so callers configuring a Daemon do not need to import the
// internal package directly.
type Source interface {
	Lookup(key string) (string, bool)
}

// Option configures a Daemon.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithServiceName sets the service's bus-visible name.
func WithServiceName(name string) Option {
	return optionFunc(func(c *config) { c.serviceName = name })
}

// WithHwmonPath sets the hwmon instance root directory to discover sensors under.
// This is the target of the daemon's required --path CLI flag.
func WithHwmonPath(path string) Option {
	return optionFunc(func(c *config) { c.hwmonPath = path })
}

// WithBusRoot overrides the object path prefix (default DefaultBusRoot).
func WithBusRoot(root string) Option {
	return optionFunc(func(c *config) { c.busRoot = root })
}

// WithRetryBudget overrides the default HwmonIO retry count and delay.
func WithRetryBudget(retries int, delay time.Duration) Option {
	return optionFunc(func(c *config) { c.retries = retries; c.retryDelay = delay })
}

// WithEventPersistence enables a JetStream stream recording every object
// event published, for clients that connect after the fact.
func WithEventPersistence(enabled bool) Option {
	return optionFunc(func(c *config) { c.persistEvents = enabled })
}

// WithGPIO overrides the Unlocker used for the §4.6/§4.8 GPIO unlock contract;
// tests substitute a fake that does not touch a real chip.
func WithGPIO(u gpio.Unlocker) Option {
	return optionFunc(func(c *config) { c.gpio = u })
}

// WithEnvSource overrides the configuration Source (default: the process
// environment), letting tests inject a fixed map.
func WithEnvSource(src Source) Option {
	return optionFunc(func(c *config) { c.envSource = src })
}

func defaultConfig() *config {
	return &config{
		serviceName: DefaultServiceName,
		busRoot:     DefaultBusRoot,
		retries:     hwmon.DefaultRetries,
		retryDelay:  hwmon.DefaultRetryDelay,
		streamName:  DefaultStreamName,
	}
}
