// SPDX-License-Identifier: BSD-3-Clause

package ipc

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

const (
	// DefaultServiceName is used when WithServiceName is not supplied.
	DefaultServiceName = "ipc"
	// DefaultServiceDescription documents the service for discovery tooling.
	DefaultServiceDescription = "embedded NATS message bus for in-process service IPC"
	// DefaultServiceVersion is reported in telemetry spans.
	DefaultServiceVersion = "0.1.0"
	// DefaultServerName is the embedded NATS server's self-reported name.
	DefaultServerName = "bmc-ipc"
	// DefaultStoreDir is the JetStream storage directory.
	DefaultStoreDir = "/var/lib/hwmond/ipc"
	// DefaultMaxMemory bounds the embedded server's in-memory JetStream storage.
	DefaultMaxMemory = 64 * 1024 * 1024
	// DefaultMaxStorage bounds the embedded server's file JetStream storage.
	DefaultMaxStorage = 256 * 1024 * 1024
	// DefaultStartupTimeout is how long Run waits for the server to become ready.
	DefaultStartupTimeout = 10 * time.Second
	// DefaultShutdownTimeout is how long shutdown waits before forcing a stop.
	DefaultShutdownTimeout = 5 * time.Second
)

type config struct {
	serviceName                 string
	serviceDescription          string
	serviceVersion              string
	serverName                  string
	storeDir                    string
	enableJetStream              bool
	dontListen                  bool
	maxMemory                   int64
	maxStorage                  int64
	startupTimeout               time.Duration
	shutdownTimeout              time.Duration
	maxConnections               int
	maxControlLine               int32
	maxPayload                   int32
	writeDeadline                time.Duration
	pingInterval                 time.Duration
	maxPingsOut                  int
	enableSlowConsumerDetection  bool
	slowConsumerThreshold        time.Duration
	serverOpts                   *server.Options
}

// Option configures an IPC service instance.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithName sets the service's bus-visible name. Kept as an alias of
// WithServiceName for callers used to the shorter form.
func WithName(name string) Option {
	return optionFunc(func(c *config) { c.serviceName = name })
}

// WithServiceName sets the service's bus-visible name.
func WithServiceName(name string) Option {
	return optionFunc(func(c *config) { c.serviceName = name })
}

// WithServerOpts overrides the embedded NATS server options directly,
// bypassing every other With* setting.
func WithServerOpts(opts *server.Options) Option {
	return optionFunc(func(c *config) { c.serverOpts = opts })
}

// WithStoreDir sets the JetStream storage directory.
func WithStoreDir(dir string) Option {
	return optionFunc(func(c *config) { c.storeDir = dir })
}

// WithJetStream enables or disables JetStream on the embedded server.
func WithJetStream(enabled bool) Option {
	return optionFunc(func(c *config) { c.enableJetStream = enabled })
}

// WithMaxMemory bounds the embedded server's in-memory JetStream storage.
func WithMaxMemory(bytes int64) Option {
	return optionFunc(func(c *config) { c.maxMemory = bytes })
}

// WithMaxStorage bounds the embedded server's file JetStream storage.
func WithMaxStorage(bytes int64) Option {
	return optionFunc(func(c *config) { c.maxStorage = bytes })
}

// Validate checks the config for values the embedded server cannot start with.
func (c *config) Validate() error {
	if c.serviceName == "" {
		return fmt.Errorf("service name must not be empty")
	}
	if c.serverOpts == nil && c.maxMemory < 0 {
		return fmt.Errorf("max memory must not be negative")
	}
	return nil
}

// ToServerOptions builds the nats-server Options from config, unless an
// explicit WithServerOpts override was supplied.
func (c *config) ToServerOptions() *server.Options {
	if c.serverOpts != nil {
		return c.serverOpts
	}
	return &server.Options{
		ServerName:     c.serverName,
		DontListen:     c.dontListen,
		JetStream:      c.enableJetStream,
		StoreDir:       c.storeDir,
		JetStreamMaxMemory:  c.maxMemory,
		JetStreamMaxStore:   c.maxStorage,
		MaxConn:        c.maxConnections,
		MaxControlLine: c.maxControlLine,
		MaxPayload:     c.maxPayload,
		WriteDeadline:  c.writeDeadline,
		PingInterval:   c.pingInterval,
		MaxPingsOut:    c.maxPingsOut,
	}
}
