package addrange

import (
	"math/big"
	"slices"
	"sort"

	"github.com/pkg/errors"
)

// intervalList is the ordered partition of a range into free spans and
// occupied addresses. Nodes are sorted ascending, cover the whole range with
// no gaps or overlaps, and no two free spans are adjacent.
type intervalList struct {
	nodes []Node
}

func newIntervalList(first, last Address) *intervalList {
	return &intervalList{nodes: []Node{FreeSpan{First: first, Last: last}}}
}

func (l *intervalList) len() int {
	return len(l.nodes)
}

// find returns the index of the node covering a. found is false when a lies
// outside every node, in which case the index is where a would be inserted.
func (l *intervalList) find(a Address) (int, bool) {
	return sort.Find(len(l.nodes), func(i int) int {
		first, last := l.nodes[i].Bounds()
		if first.Compare(a) > 0 {
			return -1
		}
		if last.Compare(a) < 0 {
			return 1
		}
		return 0
	})
}

// occupy carves a out of the free span at index i and places an occupied node
// for it. The span must contain a.
func (l *intervalList) occupy(i int, a Address, holder string) error {
	span, ok := l.nodes[i].(FreeSpan)
	if !ok || !span.contains(a) {
		return errors.Wrapf(ErrOccupied, "%s", a)
	}
	occ := OccupiedAddress{Address: a, Holder: truncateHolder(holder)}

	switch {
	case span.First.Compare(a) == 0 && span.Last.Compare(a) == 0:
		// last free address of the span, the occupied node takes its place
		l.nodes[i] = occ

	case span.First.Compare(a) == 0:
		first, err := span.First.Next()
		if err != nil {
			return err
		}
		span.First = first
		l.nodes[i] = span
		l.nodes = slices.Insert(l.nodes, i, Node(occ))

	case span.Last.Compare(a) == 0:
		last, err := span.Last.Prev()
		if err != nil {
			return err
		}
		span.Last = last
		l.nodes[i] = span
		l.nodes = slices.Insert(l.nodes, i+1, Node(occ))

	default:
		leftLast, err := a.Prev()
		if err != nil {
			return err
		}
		rightFirst, err := a.Next()
		if err != nil {
			return err
		}
		left := FreeSpan{First: span.First, Last: leftLast}
		right := FreeSpan{First: rightFirst, Last: span.Last}
		l.nodes = slices.Replace(l.nodes, i, i+1, Node(left), Node(occ), Node(right))
	}

	return nil
}

// release turns the occupied node at index i back into free space, coalescing
// it with the neighbouring free spans. The left neighbour is extended when it
// is free, and absorbs the right neighbour too when both are free.
func (l *intervalList) release(i int) error {
	occ, ok := l.nodes[i].(OccupiedAddress)
	if !ok {
		return errors.Wrapf(ErrNotFound, "node %d is %s", i, l.nodes[i].Status())
	}

	var (
		left, hasLeft   = l.freeAt(i - 1)
		right, hasRight = l.freeAt(i + 1)
	)

	switch {
	case hasLeft && hasRight:
		left.Last = right.Last
		l.nodes[i-1] = left
		l.nodes = slices.Delete(l.nodes, i, i+2)

	case hasLeft:
		last, err := left.Last.Next()
		if err != nil {
			return err
		}
		left.Last = last
		l.nodes[i-1] = left
		l.nodes = slices.Delete(l.nodes, i, i+1)

	case hasRight:
		first, err := right.First.Prev()
		if err != nil {
			return err
		}
		right.First = first
		l.nodes[i+1] = right
		l.nodes = slices.Delete(l.nodes, i, i+1)

	default:
		l.nodes[i] = FreeSpan{First: occ.Address, Last: occ.Address}
	}

	return nil
}

// freeAt returns the free span at index i, if i is in bounds and the node is free.
func (l *intervalList) freeAt(i int) (FreeSpan, bool) {
	if i < 0 || i >= len(l.nodes) {
		return FreeSpan{}, false
	}
	span, ok := l.nodes[i].(FreeSpan)
	return span, ok
}

// freeCount returns the number of free addresses across all spans.
func (l *intervalList) freeCount() *big.Int {
	total := new(big.Int)
	for _, n := range l.nodes {
		span, ok := n.(FreeSpan)
		if !ok {
			continue
		}
		total.Add(total, spanSize(span.First, span.Last))
	}
	return total
}

func (l *intervalList) occupiedCount() int {
	var n int
	for _, node := range l.nodes {
		if node.Status() == StatusOccupied {
			n++
		}
	}
	return n
}

// validate checks every structural invariant of the list against the bounds.
func (l *intervalList) validate(first, last Address) error {
	if len(l.nodes) == 0 {
		return errors.New("interval list is empty")
	}

	var prevLast Address
	for i, n := range l.nodes {
		nFirst, nLast := n.Bounds()
		if nFirst.Len() != first.Len() || nLast.Len() != first.Len() {
			return errors.Errorf("node %d (%s) has address length %d, want %d", i, n, nFirst.Len(), first.Len())
		}
		if nFirst.Compare(nLast) > 0 {
			return errors.Errorf("node %d (%s) has first greater than last", i, n)
		}
		if occ, ok := n.(OccupiedAddress); ok && len(occ.Holder) > maxHolderLen {
			return errors.Errorf("node %d (%s) holder exceeds %d bytes", i, n, maxHolderLen)
		}

		if i == 0 {
			if nFirst.Compare(first) != 0 {
				return errors.Errorf("list starts at %s, want %s", nFirst, first)
			}
		} else {
			want, err := prevLast.Next()
			if err != nil || want.Compare(nFirst) != 0 {
				return errors.Errorf("gap or overlap between node %d and %d (%s after %s)", i-1, i, n, prevLast)
			}
			if n.Status() == StatusFree && l.nodes[i-1].Status() == StatusFree {
				return errors.Errorf("adjacent free spans at %d and %d", i-1, i)
			}
		}
		prevLast = nLast
	}

	if prevLast.Compare(last) != 0 {
		return errors.Errorf("list ends at %s, want %s", prevLast, last)
	}
	return nil
}

// spanSize returns last-first+1.
func spanSize(first, last Address) *big.Int {
	n := new(big.Int).Sub(new(big.Int).SetBytes(last.buf[:last.n]), new(big.Int).SetBytes(first.buf[:first.n]))
	return n.Add(n, big.NewInt(1))
}
