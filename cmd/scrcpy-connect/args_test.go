package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitArgs(t *testing.T) {
	testCases := []struct {
		description string
		args        []string
		known       []string
		passthrough []string
	}{
		{
			description: "no args",
		},
		{
			description: "known flags only",
			args:        []string{"--ip", "192.168.1.5", "--port=6000", "--stop-on-success"},
			known:       []string{"--ip", "192.168.1.5", "--port=6000", "--stop-on-success"},
		},
		{
			description: "unknown flags pass through in order",
			args:        []string{"--max-size", "1024", "--retries", "2", "-b", "8M", "--no-audio"},
			known:       []string{"--retries", "2"},
			passthrough: []string{"--max-size", "1024", "-b", "8M", "--no-audio"},
		},
		{
			description: "everything after double dash passes through",
			args:        []string{"--log-level", "DEBUG", "--", "--ip", "x", "-h"},
			known:       []string{"--log-level", "DEBUG"},
			passthrough: []string{"--ip", "x", "-h"},
		},
		{
			description: "short flags other than help pass through",
			args:        []string{"-v", "-m", "1024", "-h"},
			known:       []string{"-h"},
			passthrough: []string{"-v", "-m", "1024"},
		},
		{
			description: "trailing flag without value",
			args:        []string{"--ip"},
			known:       []string{"--ip"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			cmd := newApp(nil, io.Discard, io.Discard).newRootCmd()
			known, passthrough := splitArgs(cmd.Flags(), tc.args)
			assert.Equal(t, tc.known, known)
			assert.Equal(t, tc.passthrough, passthrough)
		})
	}
}
