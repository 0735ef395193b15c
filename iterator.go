package addrange

import "iter"

// Iterator walks the nodes of a range that have one status, in ascending
// order. It is forward-only and cannot be restarted. Mutating the range stops
// the iterator and Err reports ErrStaleIterator.
type Iterator struct {
	r      *Range
	status Status
	gen    uint64
	// index of the next node to inspect
	cursor int
	err    error
}

// FreeSpans returns an iterator over the free spans of r.
func (r *Range) FreeSpans() *Iterator {
	return r.iterator(StatusFree)
}

// OccupiedAddrs returns an iterator over the occupied addresses of r.
func (r *Range) OccupiedAddrs() *Iterator {
	return r.iterator(StatusOccupied)
}

func (r *Range) iterator(status Status) *Iterator {
	it := &Iterator{r: r, status: status}
	if !r.initialized() {
		it.err = ErrUninitialized
		return it
	}
	it.gen = r.gen
	return it
}

// Next returns the next node with the iterator's status. It returns false once
// the list is exhausted, the iterator was closed, or the range changed.
func (it *Iterator) Next() (Node, bool) {
	if it.r == nil || it.err != nil {
		return nil, false
	}
	if !it.r.initialized() || it.r.gen != it.gen {
		it.err = ErrStaleIterator
		return nil, false
	}

	nodes := it.r.items.nodes
	for it.cursor < len(nodes) {
		n := nodes[it.cursor]
		it.cursor++
		if n.Status() == it.status {
			return n, true
		}
	}
	return nil, false
}

// Err returns the error that stopped the iteration early, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Seq adapts the iterator for use in a range-over-func loop.
func (it *Iterator) Seq() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for {
			n, ok := it.Next()
			if !ok || !yield(n) {
				return
			}
		}
	}
}

// Close releases the iterator's cursor. The range is not affected.
func (it *Iterator) Close() {
	it.r = nil
}
