package connect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wlanOutput = `28: wlan0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc mq state UP group default qlen 3000
    inet 192.168.1.2/24 brd 192.168.1.255 scope global wlan0
       valid_lft forever preferred_lft forever
`

func TestBridge_IsDeviceConnected(t *testing.T) {
	testCases := []struct {
		description string
		result      Result
		connected   bool
		addr        Address
	}{
		{
			description: "network device",
			result:      Result{Stdout: "192.168.1.2:5555\tdevice\n"},
			connected:   true,
			addr:        "192.168.1.2:5555",
		},
		{
			description: "header and usb device only",
			result:      Result{Stdout: "List of devices attached\nR58M123ABC\tdevice\n\n"},
		},
		{
			description: "network device offline",
			result:      Result{Stdout: "List of devices attached\n192.168.1.2:5555\toffline\n"},
		},
		{
			description: "first network device wins",
			result:      Result{Stdout: "List of devices attached\r\nR58M123ABC\tdevice\r\n10.0.0.7:5555\tdevice\r\n10.0.0.8:5555\tdevice\r\n"},
			connected:   true,
			addr:        "10.0.0.7:5555",
		},
		{
			description: "no output",
			result:      Result{},
		},
		{
			description: "error ignores stdout",
			result:      Result{Stdout: "192.168.1.2:5555\tdevice\n", Stderr: "some error"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			runner := newFakeRunner().on("adb devices", tc.result)
			bridge := NewBridge(runner, "", "", 0, nil)
			connected, addr := bridge.IsDeviceConnected(context.Background())
			assert.Equal(t, tc.connected, connected)
			assert.Equal(t, tc.addr, addr)
		})
	}
}

func TestBridge_DeviceIP(t *testing.T) {
	const cmdline = "adb -s serial shell ip -f inet addr show wlan0"

	testCases := []struct {
		description string
		result      Result
		expect      string
	}{
		{
			description: "single inet line",
			result:      Result{Stdout: "    inet 192.168.1.2/24 brd 192.168.1.255 scope global wlan0\n"},
			expect:      "192.168.1.2",
		},
		{
			description: "full interface dump",
			result:      Result{Stdout: wlanOutput},
			expect:      "192.168.1.2",
		},
		{
			description: "last valid inet line wins",
			result:      Result{Stdout: "    inet 10.0.0.5/8 scope global wlan0\n    inet 192.168.1.9/24 scope global wlan0\n    inet 999.1.1.1/24 scope global wlan0\n"},
			expect:      "192.168.1.9",
		},
		{
			description: "no inet line",
			result:      Result{Stdout: "28: wlan0: <NO-CARRIER,BROADCAST,MULTICAST,UP> mtu 1500 state DOWN\n"},
			expect:      "",
		},
		{
			description: "error",
			result:      Result{Stderr: "error"},
			expect:      "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			runner := newFakeRunner().on(cmdline, tc.result)
			bridge := NewBridge(runner, "", "", 0, nil)
			assert.Equal(t, tc.expect, bridge.DeviceIP(context.Background(), "serial"))
			assert.Equal(t, []string{cmdline}, runner.calls)
		})
	}
}

func TestBridge_DeviceIP_Interface(t *testing.T) {
	runner := newFakeRunner().on("adb -s serial shell ip -f inet addr show wlan1",
		Result{Stdout: "    inet 172.16.0.4/16 scope global wlan1\n"})
	bridge := NewBridge(runner, "adb", "wlan1", 0, nil)
	assert.Equal(t, "172.16.0.4", bridge.DeviceIP(context.Background(), "serial"))
}

func TestBridge_Devices(t *testing.T) {
	runner := newFakeRunner().on("adb devices", Result{
		Stdout: "List of devices attached\nR58M123ABC\tdevice\nemulator-5554\toffline\nZY22\tunauthorized\nXYZ987\tdevice\n\n",
	})
	bridge := NewBridge(runner, "", "", 0, nil)

	serials, err := bridge.Devices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Serial{"R58M123ABC", "XYZ987"}, serials)

	runner = newFakeRunner().on("adb devices", Result{Stderr: "daemon not running"})
	_, err = NewBridge(runner, "", "", 0, nil).Devices(context.Background())
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "daemon not running", cmdErr.Stderr)
}

func TestBridge_Connect(t *testing.T) {
	testCases := []struct {
		description string
		result      Result
		wantErr     bool
	}{
		{description: "connected", result: Result{Stdout: "connected to 192.168.1.2:5555\n"}},
		{description: "already connected", result: Result{Stdout: "already connected to 192.168.1.2:5555\n"}},
		{description: "refused on stdout", result: Result{Stdout: "failed to connect to '192.168.1.2:5555': Connection refused\n"}, wantErr: true},
		{description: "cannot connect", result: Result{Stdout: "cannot connect to 192.168.1.2:5555: No route to host\n"}, wantErr: true},
		{description: "stderr", result: Result{Stderr: "error"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			runner := newFakeRunner().on("adb connect 192.168.1.2:5555", tc.result)
			err := NewBridge(runner, "", "", 0, nil).Connect(context.Background(), "192.168.1.2:5555")
			if tc.wantErr {
				var cmdErr *CommandError
				assert.ErrorAs(t, err, &cmdErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBridge_QueryTimeout(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	runner := RunnerFunc(func(ctx context.Context, program string, args ...string) Result {
		deadline, hasDeadline = ctx.Deadline()
		return Result{}
	})

	bridge := NewBridge(runner, "", "", time.Minute, nil)
	bridge.IsDeviceConnected(context.Background())
	assert.True(t, hasDeadline)
	assert.False(t, deadline.IsZero())

	require.NoError(t, bridge.WaitForDevice(context.Background()))
	assert.False(t, hasDeadline, "wait-for-device must not be bounded")
}

func TestBridge_CheckAvailability(t *testing.T) {
	runner := newFakeRunner().on("adb version", Result{Stdout: "Android Debug Bridge version 1.0.41\n"})
	assert.NoError(t, NewBridge(runner, "", "", 0, nil).CheckAvailability(context.Background()))

	runner = newFakeRunner().on("adb version", Result{Stderr: "executable file not found in $PATH"})
	assert.Error(t, NewBridge(runner, "", "", 0, nil).CheckAvailability(context.Background()))
}
