package main

import (
	"strings"

	"github.com/spf13/pflag"
)

// splitArgs separates the flags registered on flags from everything else.
// Unknown flags, positional arguments and all arguments after "--" are
// returned as passthrough, in their original order, for scrcpy.
// Only long flags and -h are recognised so scrcpy's short options pass through.
func splitArgs(flags *pflag.FlagSet, args []string) (known, passthrough []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			passthrough = append(passthrough, args[i+1:]...)
			break
		}

		var (
			flag   *pflag.Flag
			inline bool
		)
		switch {
		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			flag, inline = flags.Lookup(name), hasValue
		case arg == "-h":
			flag = flags.ShorthandLookup("h")
		}
		if flag == nil {
			passthrough = append(passthrough, arg)
			continue
		}

		known = append(known, arg)
		if !inline && flag.NoOptDefVal == "" && i+1 < len(args) {
			i++
			known = append(known, args[i])
		}
	}
	return known, passthrough
}
