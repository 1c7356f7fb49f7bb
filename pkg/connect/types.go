package connect

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPort is the TCP port adbd listens on after "adb tcpip".
	DefaultPort = 5555
	// DefaultRetries is how many times scrcpy is launched per run.
	DefaultRetries = 3
	// DefaultInterface is the Wi-Fi interface queried for the device address.
	DefaultInterface = "wlan0"

	DefaultBridgeProgram = "adb"
	DefaultMirrorProgram = "scrcpy"
)

// Address is a device network address in "ip:port" form.
type Address string

// NewAddress builds an Address from a validated IPv4 and port.
func NewAddress(ip string, port int) (Address, error) {
	if !IsValidIPv4(ip) {
		return "", fmt.Errorf("invalid IPv4 address %q", ip)
	}
	if !IsValidPort(port) {
		return "", fmt.Errorf("invalid port %d", port)
	}
	return Address(ip + ":" + strconv.Itoa(port)), nil
}

// Host returns the part before the port separator.
func (a Address) Host() string {
	host, _, _ := strings.Cut(string(a), ":")
	return host
}

func (a Address) String() string {
	return string(a)
}

// Serial identifies a device attached to the bridge, as printed by "adb devices".
type Serial string

// Request describes one connect-and-mirror run.
type Request struct {
	// IP is the user supplied device address. It may be empty, a bare IPv4
	// or an "ip:port" string.
	IP string
	// Port is attached to a bare IP and used for "adb tcpip". Invalid
	// values fall back to DefaultPort.
	Port int
	// Retries bounds the number of mirroring launches. Values below 1 mean 1.
	Retries int
	// Args are passed verbatim to the mirroring program after "-s <address>".
	Args []string
}

// Options configures a Connector.
type Options struct {
	BridgeProgram  string
	MirrorProgram  string
	Interface      string
	StopOnSuccess  bool
	CommandTimeout time.Duration
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		BridgeProgram: DefaultBridgeProgram,
		MirrorProgram: DefaultMirrorProgram,
		Interface:     DefaultInterface,
	}
}
