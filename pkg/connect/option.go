package connect

import (
	"log/slog"
	"time"
)

// Option configures a Connector.
type Option func(c *Connector)

// WithRunner sets the runner used for every external program.
func WithRunner(runner Runner) Option {
	return func(c *Connector) {
		c.runner = runner
	}
}

// WithChooser sets how a device is picked when several are attached.
func WithChooser(chooser Chooser) Option {
	return func(c *Connector) {
		c.chooser = chooser
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Connector) {
		c.logger = logger
	}
}

// WithOptions replaces all program and behaviour options at once.
func WithOptions(options Options) Option {
	return func(c *Connector) {
		c.options = options
	}
}

// WithBridgeProgram sets the adb executable.
func WithBridgeProgram(program string) Option {
	return func(c *Connector) {
		c.options.BridgeProgram = program
	}
}

// WithMirrorProgram sets the scrcpy executable.
func WithMirrorProgram(program string) Option {
	return func(c *Connector) {
		c.options.MirrorProgram = program
	}
}

// WithInterface sets the device network interface queried for its Wi-Fi address.
func WithInterface(name string) Option {
	return func(c *Connector) {
		c.options.Interface = name
	}
}

// WithStopOnSuccess ends the mirroring loop after the first clean scrcpy exit.
func WithStopOnSuccess(stop bool) Option {
	return func(c *Connector) {
		c.options.StopOnSuccess = stop
	}
}

// WithCommandTimeout bounds short adb queries. Zero disables the bound.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(c *Connector) {
		c.options.CommandTimeout = timeout
	}
}
