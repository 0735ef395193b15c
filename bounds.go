package addrange

import (
	"net/netip"

	"github.com/pkg/errors"
	"go4.org/netipx"
)

// New builds a range over [first, last] from raw big-endian bytes. Both buffers
// must be exactly f.Len() bytes long.
func New(f Family, first, last []byte, opts ...Option) (*Range, error) {
	fa, err := AddressFrom(f, first)
	if err != nil {
		return nil, errors.Wrap(err, "first bound")
	}
	la, err := AddressFrom(f, last)
	if err != nil {
		return nil, errors.Wrap(err, "last bound")
	}

	return newRange(fa, la, buildOptions(opts))
}

// Parse builds a range from two textual addresses, dotted-decimal for IPv4 or
// colon-hex for IPv6. The family of each bound is inferred from its syntax.
func Parse(first, last string, opts ...Option) (*Range, error) {
	ff, lf := familyOf(first), familyOf(last)
	if ff != lf {
		return nil, errors.Wrapf(ErrMixedRange, "%q is %s, %q is %s", first, ff, last, lf)
	}

	fa, err := parseAddress(first, ff)
	if err != nil {
		return nil, err
	}
	la, err := parseAddress(last, lf)
	if err != nil {
		return nil, err
	}

	return newRange(fa, la, buildOptions(opts))
}

// ParseCIDR builds a range covering the network "address/prefix-bits". The
// address must be the network address of the prefix (no host bits set) unless
// WithLooseCIDR is given.
func ParseCIDR(cidr string, opts ...Option) (*Range, error) {
	o := buildOptions(opts)
	f := familyOf(cidr)

	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return nil, errors.Wrapf(ErrUnparsableCidr, "%q: %v", cidr, err)
	}
	if addrFamily(prefix.Addr()) != f {
		return nil, errors.Wrapf(ErrUnparsableCidr, "%q: address is not %s", cidr, f)
	}
	if prefix.Bits() < 0 || prefix.Bits() > f.Bits() {
		return nil, errors.Wrapf(ErrUnparsableCidr, "%q: prefix length out of range for %s", cidr, f)
	}

	first := AddressFromNetip(prefix.Addr())
	if !o.looseCIDR && hostBitsSet(first, prefix.Bits()) {
		return nil, errors.Wrapf(ErrUnparsableCidr, "%q: host bits set, network address is %s", cidr, prefix.Masked().Addr())
	}

	return newRange(first, setHostBits(first, prefix.Bits()), o)
}

// FromIPRange builds a range from a netipx.IPRange.
func FromIPRange(r netipx.IPRange, opts ...Option) (*Range, error) {
	from, to := r.From(), r.To()
	if !from.IsValid() || !to.IsValid() || from.Zone() != "" || to.Zone() != "" {
		return nil, errors.Wrapf(ErrUnparsableAddress, "invalid range %s", r)
	}
	if addrFamily(from) != addrFamily(to) {
		return nil, errors.Wrapf(ErrMixedRange, "%s and %s", from, to)
	}

	return newRange(AddressFromNetip(from), AddressFromNetip(to), buildOptions(opts))
}

func parseAddress(s string, f Family) (Address, error) {
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return Address{}, errors.Wrapf(ErrUnparsableAddress, "%q: %v", s, err)
	}
	if ip.Zone() != "" {
		return Address{}, errors.Wrapf(ErrUnparsableAddress, "%q: zoned addresses are not supported", s)
	}
	if addrFamily(ip) != f {
		return Address{}, errors.Wrapf(ErrUnparsableAddress, "%q: not an %s address", s, f)
	}
	return AddressFromNetip(ip), nil
}

// addrFamily returns the family of ip as stored in an Address. IPv4-mapped
// IPv6 addresses are IPv6.
func addrFamily(ip netip.Addr) Family {
	switch {
	case ip.Is4():
		return IPv4
	case ip.Is6():
		return IPv6
	default:
		return 0
	}
}

// setHostBits returns a with every bit past the first bits set to one.
func setHostBits(a Address, bits int) Address {
	out := a
	for i := bits / 8; i < out.Len(); i++ {
		if i == bits/8 {
			out.buf[i] |= 0xff >> (bits % 8)
		} else {
			out.buf[i] = 0xff
		}
	}
	return out
}

// hostBitsSet reports whether any bit of a past the first bits is one.
func hostBitsSet(a Address, bits int) bool {
	for i := bits / 8; i < a.Len(); i++ {
		mask := byte(0xff)
		if i == bits/8 {
			mask >>= bits % 8
		}
		if a.buf[i]&mask != 0 {
			return true
		}
	}
	return false
}
