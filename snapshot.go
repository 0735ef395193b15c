package addrange

import (
	"github.com/pkg/errors"
)

// Snapshot captures the current state of a Range for export/import (no serialization).
// Free spans are not stored; they are whatever the occupied addresses leave over.
type Snapshot struct {
	Family Family // address family of the range
	First  []byte // lowest address, big-endian
	Last   []byte // highest address, big-endian

	Occupied []Lease // occupied addresses in ascending order
}

// Lease is one occupied address of a Snapshot.
type Lease struct {
	Address []byte
	Holder  string
}

// Snapshot creates a deep copy of the Range's current state.
func (r *Range) Snapshot() (*Snapshot, error) {
	if !r.initialized() {
		return nil, errors.Wrap(ErrUninitialized, "snapshot")
	}

	leases := make([]Lease, 0, r.items.occupiedCount())
	for _, n := range r.items.nodes {
		if occ, ok := n.(OccupiedAddress); ok {
			leases = append(leases, Lease{Address: occ.Address.Bytes(), Holder: occ.Holder})
		}
	}

	return &Snapshot{
		Family:   r.family,
		First:    r.first.Bytes(),
		Last:     r.last.Bytes(),
		Occupied: leases,
	}, nil
}

// NewFromSnapshot constructs a Range from a previously taken Snapshot by
// rebuilding the bounds and occupying every lease again.
func NewFromSnapshot(s *Snapshot, opts ...Option) (*Range, error) {
	if s == nil {
		return nil, errors.New("invalid snapshot: nil")
	}

	r, err := New(s.Family, s.First, s.Last, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "invalid snapshot")
	}

	for _, l := range s.Occupied {
		a, errAddr := AddressFrom(s.Family, l.Address)
		if errAddr != nil {
			return nil, errors.Wrap(errAddr, "invalid snapshot lease")
		}
		if errOccupy := r.Occupy(a.Addr(), l.Holder); errOccupy != nil {
			return nil, errors.Wrap(errOccupy, "invalid snapshot lease")
		}
	}

	return r, nil
}
