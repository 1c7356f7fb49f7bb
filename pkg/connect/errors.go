package connect

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoDevices is returned when the bridge lists no attached device.
	ErrNoDevices = errors.New("no android device attached")
	// ErrNoWifiAddress is returned when the device reports no usable IPv4 on its Wi-Fi interface.
	ErrNoWifiAddress = errors.New("could not find device IP address, make sure Wi-Fi is enabled on the device")
	// ErrSelectionCancelled is returned by a Chooser when the user gives up.
	ErrSelectionCancelled = errors.New("device selection cancelled")
)

// CommandError describes an external program invocation that failed.
type CommandError struct {
	Program string
	Args    []string
	Stderr  string
}

func (e *CommandError) Error() string {
	cmdline := strings.TrimSpace(e.Program + " " + strings.Join(e.Args, " "))
	return fmt.Sprintf("%s: %s", cmdline, strings.TrimSpace(e.Stderr))
}

// ResolutionError means no usable device address could be determined.
type ResolutionError struct {
	Step string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// MirrorError is returned when every mirroring attempt failed.
type MirrorError struct {
	Attempts int
	Last     error
}

func (e *MirrorError) Error() string {
	return fmt.Sprintf("mirroring failed after %d attempt(s): %v", e.Attempts, e.Last)
}

func (e *MirrorError) Unwrap() error {
	return e.Last
}
