package connect

import "regexp"

const octet = `(25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])`

var ipv4Pattern = regexp.MustCompile(`^(` + octet + `\.){3}` + octet + `(/(3[0-2]|[12]?[0-9]))?$`)

// IsValidIPv4 reports whether s is a dotted IPv4 address with an optional
// /0 to /32 prefix length.
func IsValidIPv4(s string) bool {
	return ipv4Pattern.MatchString(s)
}

// IsValidPort reports whether n is a usable TCP port.
func IsValidPort(n int) bool {
	return n >= 1 && n <= 65535
}
