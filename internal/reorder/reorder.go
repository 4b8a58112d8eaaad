// Package reorder is the reference-graph reorderer and trimmer
// (components F/G): a two-pass rewrite of a certificate's DER section
// that either topologically sorts derivations reachable from the final
// one, or drops derivations with no surviving successor, renumbering
// the survivors densely either way. Both modes share the same
// first-pass graph builder; they differ only in how survivors are
// chosen and ordered.
package reorder

import "vipr/internal/certfile"

// Mode selects the ordering/pruning step run after the graph is built.
type Mode int

const (
	// Topological reorders derivations so that every reference points
	// backward, discarding anything unreachable from the last
	// derivation.
	Topological Mode = iota
	// Trim drops derivations with no surviving successor, keeping the
	// relative order of everything that remains.
	Trim
)

// Reorder reads a complete certificate from src and returns a rewritten
// certificate whose DER section has been reordered or trimmed according
// to mode. Everything before DER is copied byte-for-byte.
func Reorder(src []byte, mode Mode) ([]byte, error) {
	r := certfile.NewReader(src)
	numCon, nodes, prefixEnd, err := firstPass(r)
	if err != nil {
		return nil, err
	}

	var order []int
	switch mode {
	case Trim:
		order = trim(nodes)
	default:
		order, err = topoSort(nodes)
		if err != nil {
			return nil, err
		}
	}
	for i, n := range order {
		nodes[n].newIdx = i
	}

	return rewrite(src, prefixEnd, numCon, nodes, order)
}
