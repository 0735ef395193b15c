package addrange

import (
	"fmt"
	"math/big"
	"net/netip"
	"slices"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"go4.org/netipx"
)

// Range tracks which addresses of a contiguous [first, last] interval are free
// and which are occupied by a holder.
//
// A Range is not safe for concurrent use; callers must serialize access.
// Occupy, Free, Allocate and Destroy invalidate every iterator obtained before
// the call.
type Range struct {
	family Family
	first  Address
	last   Address

	// nil until the range is built and again after Destroy
	items *intervalList
	// bumped on every mutation, checked by iterators
	gen uint64

	logger log.Logger
}

func newRange(first, last Address, o options) (*Range, error) {
	if first.Compare(last) > 0 {
		return nil, errors.Wrapf(ErrBadRange, "%s-%s", first, last)
	}

	return &Range{
		family: first.Family(),
		first:  first,
		last:   last,
		items:  newIntervalList(first, last),
		logger: o.logger,
	}, nil
}

// Occupy marks ip as held by holder. The holder is truncated to 255 bytes.
func (r *Range) Occupy(ip netip.Addr, holder string) error {
	a, err := r.address(ip)
	if err != nil {
		return errors.Wrapf(err, "occupy %s", ip)
	}

	i, found := r.items.find(a)
	if !found {
		return errors.Wrapf(ErrNotInRange, "occupy %s", ip)
	}
	if r.items.nodes[i].Status() != StatusFree {
		return errors.Wrapf(ErrOccupied, "occupy %s", ip)
	}
	if err := r.items.occupy(i, a, holder); err != nil {
		return errors.Wrapf(err, "occupy %s", ip)
	}

	r.gen++
	level.Debug(r.logger).Log("msg", "address occupied", "addr", a, "holder", holder)
	return nil
}

// Allocate occupies the lowest free address for holder and returns it.
func (r *Range) Allocate(holder string) (Address, error) {
	if !r.initialized() {
		return Address{}, errors.Wrap(ErrUninitialized, "allocate")
	}

	for i, n := range r.items.nodes {
		span, ok := n.(FreeSpan)
		if !ok {
			continue
		}
		if err := r.items.occupy(i, span.First, holder); err != nil {
			return Address{}, errors.Wrap(err, "allocate")
		}

		r.gen++
		level.Debug(r.logger).Log("msg", "address allocated", "addr", span.First, "holder", holder)
		return span.First, nil
	}

	return Address{}, errors.Wrapf(ErrRangeFull, "allocate %s", r.bounds())
}

// Free releases ip. The released address is merged into the adjacent free spans.
func (r *Range) Free(ip netip.Addr) error {
	a, err := r.address(ip)
	if err != nil {
		return errors.Wrapf(err, "free %s", ip)
	}

	i, found := r.items.find(a)
	if !found {
		return errors.Wrapf(ErrNotInRange, "free %s", ip)
	}
	occ, ok := r.items.nodes[i].(OccupiedAddress)
	if !ok {
		return errors.Wrapf(ErrNotFound, "free %s", ip)
	}
	if err := r.items.release(i); err != nil {
		return errors.Wrapf(err, "free %s", ip)
	}

	r.gen++
	level.Debug(r.logger).Log("msg", "address freed", "addr", a, "holder", occ.Holder)
	return nil
}

// Lookup returns the occupied node for ip. ok is false if ip is free.
func (r *Range) Lookup(ip netip.Addr) (occ OccupiedAddress, ok bool, err error) {
	a, err := r.address(ip)
	if err != nil {
		return OccupiedAddress{}, false, errors.Wrapf(err, "lookup %s", ip)
	}

	i, found := r.items.find(a)
	if !found {
		return OccupiedAddress{}, false, errors.Wrapf(ErrNotInRange, "lookup %s", ip)
	}
	occ, ok = r.items.nodes[i].(OccupiedAddress)
	return occ, ok, nil
}

// Destroy drops every node and holder. Any further operation fails with
// ErrUninitialized.
func (r *Range) Destroy() {
	if !r.initialized() {
		return
	}

	level.Debug(r.logger).Log("msg", "range destroyed", "range", r.bounds(), "nodes", r.items.len())
	r.items = nil
	r.gen++
}

// Family returns the address family of the range.
func (r *Range) Family() Family {
	if r == nil {
		return 0
	}
	return r.family
}

// First returns the lowest address of the range.
func (r *Range) First() Address {
	if r == nil {
		return Address{}
	}
	return r.first
}

// Last returns the highest address of the range.
func (r *Range) Last() Address {
	if r == nil {
		return Address{}
	}
	return r.last
}

// Bounds returns [first, last] as a netipx.IPRange.
func (r *Range) Bounds() netipx.IPRange {
	if r == nil {
		return netipx.IPRange{}
	}
	return netipx.IPRangeFrom(r.first.Addr(), r.last.Addr())
}

// Size returns the total number of addresses, free or occupied.
func (r *Range) Size() *big.Int {
	if !r.initialized() {
		return new(big.Int)
	}
	return spanSize(r.first, r.last)
}

// FreeCount returns the number of free addresses.
func (r *Range) FreeCount() *big.Int {
	if !r.initialized() {
		return new(big.Int)
	}
	return r.items.freeCount()
}

// OccupiedCount returns the number of occupied addresses.
func (r *Range) OccupiedCount() int {
	if !r.initialized() {
		return 0
	}
	return r.items.occupiedCount()
}

// Len returns the number of nodes in the interval list.
func (r *Range) Len() int {
	if !r.initialized() {
		return 0
	}
	return r.items.len()
}

// Nodes returns a copy of the interval list in ascending order.
func (r *Range) Nodes() []Node {
	if !r.initialized() {
		return nil
	}
	return slices.Clone(r.items.nodes)
}

// FreeSet returns the free addresses as a netipx.IPSet.
func (r *Range) FreeSet() (*netipx.IPSet, error) {
	if !r.initialized() {
		return nil, errors.Wrap(ErrUninitialized, "free set")
	}

	var b netipx.IPSetBuilder
	for _, n := range r.items.nodes {
		if span, ok := n.(FreeSpan); ok {
			b.AddRange(netipx.IPRangeFrom(span.First.Addr(), span.Last.Addr()))
		}
	}
	return b.IPSet()
}

// Validate checks the interval list invariants: full coverage of the bounds,
// ascending order without gaps or overlaps, and no adjacent free spans.
func (r *Range) Validate() error {
	if !r.initialized() {
		return ErrUninitialized
	}
	return r.items.validate(r.first, r.last)
}

func (r *Range) String() string {
	if !r.initialized() {
		return "uninitialized range"
	}
	return fmt.Sprintf("%s %s (%d free, %d occupied)", r.family, r.bounds(), r.FreeCount(), r.OccupiedCount())
}

func (r *Range) initialized() bool {
	return r != nil && r.items != nil
}

func (r *Range) bounds() string {
	return fmt.Sprintf("%s-%s", r.first, r.last)
}

// address checks the preconditions shared by every per-address operation and
// converts ip to the range's address length.
func (r *Range) address(ip netip.Addr) (Address, error) {
	if !r.initialized() {
		return Address{}, ErrUninitialized
	}
	if r.family == IPv4 && ip.Is4In6() {
		ip = ip.Unmap()
	}

	a := AddressFromNetip(ip)
	if a.Family() != r.family {
		return Address{}, errors.Wrapf(ErrNotInRange, "%s range %s", r.family, r.bounds())
	}
	if a.Compare(r.first) < 0 || a.Compare(r.last) > 0 {
		return Address{}, errors.Wrapf(ErrNotInRange, "range %s", r.bounds())
	}
	return a, nil
}
