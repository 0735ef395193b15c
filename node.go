package addrange

import (
	"fmt"
	"unicode/utf8"
)

// maxHolderLen is the maximum number of bytes kept from a holder identifier.
const maxHolderLen = 255

// Status is the allocation state of a node in a range.
type Status uint8

const (
	// StatusFree marks a span of unallocated addresses
	StatusFree Status = iota
	// StatusOccupied marks a single address held by a holder
	StatusOccupied
)

func (s Status) String() string {
	switch s {
	case StatusFree:
		return "free"
	case StatusOccupied:
		return "occupied"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Node is one element of a range's interval list: either a FreeSpan or an
// OccupiedAddress. Use a type switch to tell them apart.
type Node interface {
	// Status returns the allocation state of the node.
	Status() Status
	// Bounds returns the inclusive interval covered by the node.
	Bounds() (first, last Address)

	fmt.Stringer

	isNode()
}

// FreeSpan is a contiguous, inclusive run of free addresses.
type FreeSpan struct {
	First Address
	Last  Address
}

// compile-time check that FreeSpan implements Node
var _ Node = FreeSpan{}

func (FreeSpan) Status() Status { return StatusFree }

func (s FreeSpan) Bounds() (Address, Address) { return s.First, s.Last }

func (s FreeSpan) String() string {
	if s.First == s.Last {
		return fmt.Sprintf("free %s", s.First)
	}
	return fmt.Sprintf("free %s-%s", s.First, s.Last)
}

func (FreeSpan) isNode() {}

func (s FreeSpan) contains(a Address) bool {
	return s.First.Compare(a) <= 0 && s.Last.Compare(a) >= 0
}

// OccupiedAddress is a single address held by Holder.
type OccupiedAddress struct {
	Address Address
	Holder  string
}

// compile-time check that OccupiedAddress implements Node
var _ Node = OccupiedAddress{}

func (OccupiedAddress) Status() Status { return StatusOccupied }

func (o OccupiedAddress) Bounds() (Address, Address) { return o.Address, o.Address }

func (o OccupiedAddress) String() string {
	return fmt.Sprintf("occupied %s by %q", o.Address, o.Holder)
}

func (OccupiedAddress) isNode() {}

// truncateHolder caps h at maxHolderLen bytes. Valid UTF-8 is cut on a rune
// boundary so the stored holder stays valid UTF-8.
func truncateHolder(h string) string {
	if len(h) <= maxHolderLen {
		return h
	}
	if !utf8.ValidString(h) {
		return h[:maxHolderLen]
	}

	n := maxHolderLen
	for n > 0 && !utf8.RuneStart(h[n]) {
		n--
	}
	return h[:n]
}
