package addrange

import (
	"bufio"
	"fmt"
	"io"
)

// Dump writes the family, bounds and full interval list of r to w with
// hex-encoded addresses. The format is meant for troubleshooting and may change.
func (r *Range) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if !r.initialized() {
		fmt.Fprintln(bw, "range: uninitialized")
		return bw.Flush()
	}

	fmt.Fprintf(bw, "range: {\n")
	fmt.Fprintf(bw, "\tfamily => %s\n", r.family)
	fmt.Fprintf(bw, "\tfirst  => %s\n", r.first.Hex())
	fmt.Fprintf(bw, "\tlast   => %s\n", r.last.Hex())
	fmt.Fprintf(bw, "\titems  => [\n")
	for i, n := range r.items.nodes {
		switch n := n.(type) {
		case FreeSpan:
			fmt.Fprintf(bw, "\t\t%d: free {first => %s, last => %s}\n", i, n.First.Hex(), n.Last.Hex())
		case OccupiedAddress:
			fmt.Fprintf(bw, "\t\t%d: occupied {ip => %s, host => %q}\n", i, n.Address.Hex(), n.Holder)
		}
	}
	fmt.Fprintf(bw, "\t]\n}\n")

	return bw.Flush()
}
