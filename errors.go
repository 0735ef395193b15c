package addrange

import "github.com/pkg/errors"

var (
	// ErrBadRange indicates the first bound is greater than the last one
	ErrBadRange = errors.New("first address is greater than last address")
	// ErrMixedRange indicates the two textual bounds belong to different address families
	ErrMixedRange = errors.New("bounds belong to different address families")
	// ErrUnparsableAddress indicates a malformed textual or raw address
	ErrUnparsableAddress = errors.New("unparsable address")
	// ErrUnparsableCidr indicates a malformed CIDR or a non-canonical network address
	ErrUnparsableCidr = errors.New("unparsable CIDR")
	// ErrUninitialized indicates an operation on a range that was never built or was destroyed
	ErrUninitialized = errors.New("range is not initialized")
	// ErrNotInRange indicates the address is outside the range bounds
	ErrNotInRange = errors.New("address not in range")
	// ErrOccupied indicates an attempt to occupy an address that already has a holder
	ErrOccupied = errors.New("address already occupied")
	// ErrNotFound indicates an attempt to free an address that is not occupied
	ErrNotFound = errors.New("address not occupied")
	// ErrOverflow indicates address arithmetic carried or borrowed past the family bounds
	ErrOverflow = errors.New("address overflow")
	// ErrRangeFull indicates no free address remains
	ErrRangeFull = errors.New("range is full")
	// ErrStaleIterator indicates the range was mutated after the iterator was created
	ErrStaleIterator = errors.New("range modified during iteration")
)
