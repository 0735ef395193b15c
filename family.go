package addrange

import (
	"fmt"
	"net"
	"strings"
)

// Family is the address family of a range. The zero value is not a valid family.
type Family uint8

const (
	// IPv4 ranges hold 4-byte addresses
	IPv4 Family = iota + 1
	// IPv6 ranges hold 16-byte addresses
	IPv6
)

// Len returns the address length in bytes, or 0 for an unknown family.
func (f Family) Len() int {
	switch f {
	case IPv4:
		return net.IPv4len
	case IPv6:
		return net.IPv6len
	default:
		return 0
	}
}

// Bits returns the address length in bits.
func (f Family) Bits() int {
	return f.Len() * 8
}

func (f Family) String() string {
	switch f {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

func (f Family) valid() bool {
	return f == IPv4 || f == IPv6
}

// familyOf infers the family of a textual address from its syntax alone.
func familyOf(s string) Family {
	if strings.Contains(s, ":") {
		return IPv6
	}
	return IPv4
}
