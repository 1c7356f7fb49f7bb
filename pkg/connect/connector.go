package connect

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Connector makes an Android device reachable over Wi-Fi and mirrors its screen.
type Connector struct {
	runner  Runner
	chooser Chooser
	logger  *slog.Logger
	options Options
	bridge  *Bridge
}

// New creates a Connector. Without options it runs adb and scrcpy from PATH,
// prompts on stdin when several devices are attached and discards logs.
func New(opts ...Option) *Connector {
	c := &Connector{options: DefaultOptions()}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.runner == nil {
		c.runner = NewExecRunner(c.logger)
	}
	if c.chooser == nil {
		c.chooser = NewPromptChooser(os.Stdin, os.Stdout)
	}
	if c.options.MirrorProgram == "" {
		c.options.MirrorProgram = DefaultMirrorProgram
	}
	c.bridge = NewBridge(c.runner, c.options.BridgeProgram, c.options.Interface, c.options.CommandTimeout, c.logger)
	return c
}

// Bridge returns the adb wrapper used by the connector.
func (c *Connector) Bridge() *Bridge {
	return c.bridge
}

// CheckBridge verifies that adb can be executed.
func (c *Connector) CheckBridge(ctx context.Context) error {
	return c.bridge.CheckAvailability(ctx)
}

// Run resolves the device address, switching the device to TCP/IP over USB
// when needed, then launches the mirroring program up to req.Retries times.
func (c *Connector) Run(ctx context.Context, req Request) error {
	logger := c.logger.With("session", uuid.NewString())

	addr, err := c.resolveAddress(ctx, logger, req)
	if err != nil {
		return err
	}
	return c.mirror(ctx, logger, addr, req)
}

func (c *Connector) resolveAddress(ctx context.Context, logger *slog.Logger, req Request) (Address, error) {
	port := req.Port
	if !IsValidPort(port) {
		port = DefaultPort
	}
	ip := strings.TrimSpace(req.IP)
	ipOnly, _, _ := strings.Cut(ip, ":")

	if IsValidIPv4(ipOnly) && !strings.Contains(ip, ":") {
		host, _, _ := strings.Cut(ipOnly, "/")
		return NewAddress(host, port)
	}
	if ip != "" {
		logger.Warn("unusable device address, falling back to discovery", "ip", ip)
	}
	return c.ensureWifiSession(ctx, logger, port)
}

func (c *Connector) ensureWifiSession(ctx context.Context, logger *slog.Logger, port int) (Address, error) {
	logger.Info("checking if device is connected")
	if connected, addr := c.bridge.IsDeviceConnected(ctx); connected {
		logger.Info("device already connected over Wi-Fi", "address", addr)
		return addr, nil
	}

	logger.Info("device not connected over Wi-Fi, connecting via USB")
	logger.Info("waiting for USB connection")
	if err := c.bridge.WaitForDevice(ctx); err != nil {
		logger.Error("error waiting for device", "error", err)
		return "", fmt.Errorf("waiting for device: %w", err)
	}

	logger.Info("getting connected devices list")
	serials, err := c.bridge.Devices(ctx)
	if err != nil {
		logger.Error("error getting connected devices list", "error", err)
		return "", fmt.Errorf("listing devices: %w", err)
	}

	var serial Serial
	switch len(serials) {
	case 0:
		logger.Error("no device listed after waiting for one")
		return "", &ResolutionError{Step: "listing devices", Err: ErrNoDevices}
	case 1:
		serial = serials[0]
	default:
		logger.Info("more than one android device connected via USB, choose a device")
		if serial, err = c.chooser.Choose(ctx, serials); err != nil {
			logger.Error("no device selected", "error", err)
			return "", &ResolutionError{Step: "selecting device", Err: err}
		}
	}

	logger.Info("getting connected device ip", "serial", serial)
	ip := c.bridge.DeviceIP(ctx, serial)
	if ip == "" {
		logger.Error("could not find device IP address, make sure Wi-Fi is enabled on the device", "serial", serial)
		return "", &ResolutionError{Step: "getting device IP", Err: ErrNoWifiAddress}
	}
	logger.Info("device IP address", "ip", ip)

	logger.Info("enabling adb over TCP/IP", "serial", serial, "port", port)
	if err := c.bridge.EnableTCPIP(ctx, serial, port); err != nil {
		logger.Error("error enabling tcpip mode", "error", err)
		return "", fmt.Errorf("enabling tcpip mode: %w", err)
	}

	addr, err := NewAddress(ip, port)
	if err != nil {
		return "", &ResolutionError{Step: "building device address", Err: err}
	}
	logger.Info("connecting to device over Wi-Fi", "address", addr)
	if err := c.bridge.Connect(ctx, addr); err != nil {
		logger.Error("error connecting over Wi-Fi", "error", err)
		return "", fmt.Errorf("connecting over Wi-Fi: %w", err)
	}
	return addr, nil
}

func (c *Connector) mirror(ctx context.Context, logger *slog.Logger, addr Address, req Request) error {
	retries := max(req.Retries, 1)
	args := append([]string{"-s", addr.String()}, req.Args...)
	program := c.options.MirrorProgram

	var (
		attempts  int
		succeeded bool
		lastErr   error
	)
	for attempts < retries {
		if err := ctx.Err(); err != nil {
			return err
		}
		attempts++
		logger.Info("device connected over Wi-Fi", "address", addr)
		logger.Info("starting scrcpy", "attempt", attempts, "retries", retries, "args", strings.Join(args, " "))

		result := c.runner.Run(ctx, program, args...)
		if result.Stdout != "" {
			logger.Info("scrcpy output", "output", result.Stdout)
		}
		if err := result.Err(program, args...); err != nil {
			logger.Error("scrcpy error", "attempt", attempts, "error", err)
			lastErr = err
		} else {
			succeeded = true
		}
		logger.Info("stopped running scrcpy", "attempt", attempts)

		if succeeded && c.options.StopOnSuccess {
			break
		}
	}

	if succeeded {
		return nil
	}
	return &MirrorError{Attempts: attempts, Last: lastErr}
}
