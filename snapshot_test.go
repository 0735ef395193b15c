package addrange //nolint:testpackage // it's OK to be just addrange

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	// Create a range and allocate some addresses
	r, err := ParseCIDR("2001:db8::/120")
	require.NoError(t, err)
	ips := make([]Address, 5)
	for i := range ips {
		ip, errAllocate := r.Allocate("host")
		require.NoError(t, errAllocate)
		ips[i] = ip
	}

	// Release one to mix state
	require.NoError(t, r.Free(ips[2].Addr()))

	snap, err := r.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Occupied, 4)

	// Make further modifications
	_, _ = r.Allocate("late")

	restored, err := NewFromSnapshot(snap)
	require.NoError(t, err)
	require.NoError(t, restored.Validate())
	assert.Equal(t, 4, restored.OccupiedCount())

	// First allocation should be the one we released
	ip, err := restored.Allocate("again")
	require.NoError(t, err)
	assert.Equal(t, ips[2], ip)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	r := mustParse(t, "10.0.0.0", "10.0.0.9")
	occupyAll(t, r, "10.0.0.4")

	snap, err := r.Snapshot()
	require.NoError(t, err)
	snap.First[3] = 9
	snap.Occupied[0].Address[3] = 5

	assert.Equal(t, "10.0.0.0", r.First().String())
	_, ok, err := r.Lookup(netip.MustParseAddr("10.0.0.4"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSnapshotInvalid(t *testing.T) {
	_, err := NewFromSnapshot(nil)
	require.Error(t, err)

	_, err = NewFromSnapshot(&Snapshot{Family: IPv4, First: []byte{10, 0, 0, 9}, Last: []byte{10, 0, 0, 0}})
	require.ErrorIs(t, err, ErrBadRange)

	_, err = NewFromSnapshot(&Snapshot{
		Family:   IPv4,
		First:    []byte{10, 0, 0, 0},
		Last:     []byte{10, 0, 0, 9},
		Occupied: []Lease{{Address: []byte{10, 0, 0, 20}, Holder: "x"}},
	})
	require.ErrorIs(t, err, ErrNotInRange)

	_, err = NewFromSnapshot(&Snapshot{
		Family:   IPv4,
		First:    []byte{10, 0, 0, 0},
		Last:     []byte{10, 0, 0, 9},
		Occupied: []Lease{{Address: []byte{10, 0, 0, 2}, Holder: "x"}, {Address: []byte{10, 0, 0, 2}, Holder: "y"}},
	})
	require.ErrorIs(t, err, ErrOccupied)

	_, err = (&Range{}).Snapshot()
	require.ErrorIs(t, err, ErrUninitialized)
}
