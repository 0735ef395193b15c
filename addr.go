package addrange

import (
	"bytes"
	"encoding/hex"
	"net"
	"net/netip"

	"github.com/pkg/errors"
)

// Address is a big-endian unsigned integer of 4 (IPv4) or 16 (IPv6) bytes.
// Only the first Len() bytes of the buffer are meaningful. The zero value is invalid.
type Address struct {
	buf [net.IPv6len]byte
	n   uint8
}

// AddressFrom builds an Address of the given family from its raw big-endian bytes.
func AddressFrom(f Family, b []byte) (Address, error) {
	if !f.valid() {
		return Address{}, errors.Wrapf(ErrUnparsableAddress, "unknown family %s", f)
	}
	if len(b) != f.Len() {
		return Address{}, errors.Wrapf(ErrUnparsableAddress, "%s address must be %d bytes, got %d", f, f.Len(), len(b))
	}

	var a Address
	a.n = uint8(copy(a.buf[:], b))
	return a, nil
}

// AddressFromNetip converts a netip.Addr. IPv4-mapped IPv6 addresses are kept
// as 16-byte IPv6 addresses and the zone is dropped. An invalid ip yields an
// invalid Address.
func AddressFromNetip(ip netip.Addr) Address {
	var a Address
	switch {
	case ip.Is4():
		b := ip.As4()
		a.n = uint8(copy(a.buf[:], b[:]))
	case ip.Is6():
		a.buf = ip.As16()
		a.n = net.IPv6len
	}
	return a
}

// IsValid reports whether a holds an address of a known family.
func (a Address) IsValid() bool {
	return a.n == net.IPv4len || a.n == net.IPv6len
}

// Family returns the family implied by the address length.
func (a Address) Family() Family {
	switch a.n {
	case net.IPv4len:
		return IPv4
	case net.IPv6len:
		return IPv6
	default:
		return 0
	}
}

// Len returns the number of meaningful bytes.
func (a Address) Len() int {
	return int(a.n)
}

// Bytes returns a copy of the meaningful bytes.
func (a Address) Bytes() []byte {
	return bytes.Clone(a.buf[:a.n])
}

// Compare returns -1, 0 or +1 comparing a and b as unsigned big-endian integers.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a.buf[:a.n], b.buf[:b.n])
}

// Next returns a+1, or ErrOverflow if a is the highest address of its family.
func (a Address) Next() (Address, error) {
	next := a
	if err := Increment(next.buf[:next.n]); err != nil {
		return a, err
	}
	return next, nil
}

// Prev returns a-1, or ErrOverflow if a is the lowest address of its family.
func (a Address) Prev() (Address, error) {
	prev := a
	if err := Decrement(prev.buf[:prev.n]); err != nil {
		return a, err
	}
	return prev, nil
}

// Addr converts a to a netip.Addr.
func (a Address) Addr() netip.Addr {
	switch a.n {
	case net.IPv4len:
		return netip.AddrFrom4([4]byte(a.buf[:net.IPv4len]))
	case net.IPv6len:
		return netip.AddrFrom16(a.buf)
	default:
		return netip.Addr{}
	}
}

// Hex returns the meaningful bytes hex encoded.
func (a Address) Hex() string {
	return hex.EncodeToString(a.buf[:a.n])
}

func (a Address) String() string {
	if !a.IsValid() {
		return "invalid address"
	}
	return a.Addr().String()
}

// Increment adds one to buf, treated as a big-endian unsigned integer, carrying
// from the last byte leftward. If buf was all 0xff it wraps to all zeros and
// ErrOverflow is returned.
func Increment(buf []byte) error {
	for i := len(buf) - 1; i >= 0; i-- {
		if buf[i] != 0xff {
			buf[i]++
			return nil
		}
		buf[i] = 0
	}
	return ErrOverflow
}

// Decrement subtracts one from buf, borrowing symmetrically to Increment. If
// buf was all zeros it wraps to all 0xff and ErrOverflow is returned.
func Decrement(buf []byte) error {
	for i := len(buf) - 1; i >= 0; i-- {
		if buf[i] != 0 {
			buf[i]--
			return nil
		}
		buf[i] = 0xff
	}
	return ErrOverflow
}
