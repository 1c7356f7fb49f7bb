// Package connect pairs an Android device over Wi-Fi through adb and mirrors
// its screen with scrcpy.
//
// A Connector first looks for a device already attached over the network.
// When there is none it waits for a USB device, reads the address of its
// Wi-Fi interface, restarts adbd in TCP/IP mode and connects to it. The
// mirroring program is then launched a bounded number of times.
//
// External programs are run through a Runner, which never returns an error:
// failures are reported as non-empty stderr in the Result.
package connect
