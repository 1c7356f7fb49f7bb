package connect

import (
	"bufio"
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Bridge issues commands to the adb executable.
type Bridge struct {
	runner  Runner
	program string
	iface   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewBridge creates a Bridge that runs program through runner.
func NewBridge(runner Runner, program, iface string, timeout time.Duration, logger *slog.Logger) *Bridge {
	if program == "" {
		program = DefaultBridgeProgram
	}
	if iface == "" {
		iface = DefaultInterface
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bridge{runner: runner, program: program, iface: iface, timeout: timeout, logger: logger}
}

// query runs a short bridge command, bounded by the configured timeout if any.
func (b *Bridge) query(ctx context.Context, args ...string) Result {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	return b.runner.Run(ctx, b.program, args...)
}

// CheckAvailability verifies that the bridge executable can be run.
func (b *Bridge) CheckAvailability(ctx context.Context) error {
	b.logger.Info("checking adb availability")
	args := []string{"version"}
	if err := b.query(ctx, args...).Err(b.program, args...); err != nil {
		b.logger.Error("adb is not available or not working properly", "error", err)
		return err
	}
	return nil
}

// IsDeviceConnected reports whether a device is already attached over the
// network and returns its address. Bridge errors count as not connected.
func (b *Bridge) IsDeviceConnected(ctx context.Context) (bool, Address) {
	result := b.query(ctx, "devices")
	if result.Failed() {
		b.logger.Error("can't check if a device is connected", "stderr", result.Stderr)
		return false, ""
	}
	addr, ok := parseNetworkDevice(result.Stdout)
	return ok, addr
}

// Devices lists the serials of attached devices in the "device" state.
func (b *Bridge) Devices(ctx context.Context) ([]Serial, error) {
	args := []string{"devices"}
	result := b.query(ctx, args...)
	if err := result.Err(b.program, args...); err != nil {
		return nil, err
	}
	return parseSerials(result.Stdout), nil
}

// WaitForDevice blocks until the bridge sees a device. It has no timeout.
func (b *Bridge) WaitForDevice(ctx context.Context) error {
	args := []string{"wait-for-device"}
	return b.runner.Run(ctx, b.program, args...).Err(b.program, args...)
}

// DeviceIP returns the IPv4 address of the Wi-Fi interface of serial, or
// an empty string when the device has none or the query failed.
func (b *Bridge) DeviceIP(ctx context.Context, serial Serial) string {
	args := []string{"-s", string(serial), "shell", "ip", "-f", "inet", "addr", "show", b.iface}
	result := b.query(ctx, args...)
	if result.Failed() {
		b.logger.Error("error getting device IP", "serial", serial, "stderr", result.Stderr)
		return ""
	}
	return parseInetAddress(result.Stdout)
}

// EnableTCPIP restarts adbd on serial listening on port.
func (b *Bridge) EnableTCPIP(ctx context.Context, serial Serial, port int) error {
	args := []string{"-s", string(serial), "tcpip", strconv.Itoa(port)}
	return b.query(ctx, args...).Err(b.program, args...)
}

// Connect attaches the bridge to a device listening at addr.
func (b *Bridge) Connect(ctx context.Context, addr Address) error {
	args := []string{"connect", addr.String()}
	result := b.query(ctx, args...)
	if err := result.Err(b.program, args...); err != nil {
		return err
	}
	// adb reports refused connections on stdout with a zero exit status.
	out := strings.ToLower(result.Stdout)
	if strings.Contains(out, "failed to connect") || strings.Contains(out, "cannot connect") {
		return &CommandError{Program: b.program, Args: args, Stderr: strings.TrimSpace(result.Stdout)}
	}
	return nil
}

func scanLines(out string, fn func(line string)) {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fn(scanner.Text())
	}
}

// parseNetworkDevice returns the first "ip:port<TAB>device" entry of "adb devices".
func parseNetworkDevice(out string) (Address, bool) {
	var addr Address
	var found bool
	scanLines(out, func(line string) {
		line = strings.TrimSpace(line)
		if found || !strings.HasSuffix(line, "device") || !strings.Contains(line, ":") {
			return
		}
		first, _, _ := strings.Cut(line, "\t")
		addr, found = Address(first), true
	})
	return addr, found
}

// parseSerials returns the first column of every "adb devices" line in the device state.
func parseSerials(out string) []Serial {
	var serials []Serial
	scanLines(out, func(line string) {
		line = strings.TrimSpace(line)
		if !strings.HasSuffix(line, "device") {
			return
		}
		first, _, _ := strings.Cut(line, "\t")
		serials = append(serials, Serial(first))
	})
	return serials
}

// parseInetAddress scans "ip addr show" output. Later valid inet lines
// override earlier ones.
func parseInetAddress(out string) string {
	var ip string
	scanLines(out, func(line string) {
		if !strings.Contains(line, "inet") {
			return
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return
		}
		candidate, _, _ := strings.Cut(fields[1], "/")
		if IsValidIPv4(candidate) {
			ip = candidate
		}
	})
	return ip
}
