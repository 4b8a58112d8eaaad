package reorder

import (
	"strconv"

	"github.com/katalvlaran/lvlath/core"

	"vipr/internal/certfile"
	"vipr/internal/diag"
)

// node is one derivation's entry in the reference graph. needs/neededBy
// hold 0-based local indices (node i corresponds to global constraint
// index numCon+i); fpos is the byte offset just after the token that
// precedes the derivation's label, recorded on the first pass so the
// second pass can re-seek there (and skip the whitespace to the label)
// without re-parsing anything before DER.
type node struct {
	fpos     int
	needs    []int
	neededBy []int
	newIdx   int
}

func insertArc(nodes []node, tail, head int) {
	nodes[tail].neededBy = append(nodes[tail].neededBy, head)
	nodes[head].needs = append(nodes[head].needs, tail)
}

// firstPass walks an entire certificate once, skipping every section up
// to DER semantically (so sparse-vector index bounds checking still
// applies to OBJ/CON/SOL; INT indices are read without a bounds check),
// then records each derivation's file
// offset and builds the needs/neededBy arcs implied by its lin/rnd
// multiplier indices and uns operand indices that reference another
// derivation (i.e. an index >= numCon). prefixEnd is the offset right
// after the "DER" keyword, the point up to which the second pass copies
// the certificate byte-for-byte.
func firstPass(r *certfile.Reader) (numCon int, nodes []node, prefixEnd int, err error) {
	if _, _, err = r.ReadVER(); err != nil {
		return 0, nil, 0, err
	}

	if err = r.ExpectLiteral("VAR"); err != nil {
		return 0, nil, 0, err
	}
	numVar, err := r.ExpectInt("number of variables")
	if err != nil {
		return 0, nil, 0, err
	}
	for i := 0; i < numVar; i++ {
		if _, err = r.ExpectIdent("variable name"); err != nil {
			return 0, nil, 0, err
		}
	}
	r.NumVar = numVar

	if err = r.ExpectLiteral("INT"); err != nil {
		return 0, nil, 0, err
	}
	numInt, err := r.ExpectInt("number of integer variables")
	if err != nil {
		return 0, nil, 0, err
	}
	for i := 0; i < numInt; i++ {
		if _, err = r.ExpectInt("integer variable index"); err != nil {
			return 0, nil, 0, err
		}
	}

	if err = r.ExpectLiteral("OBJ"); err != nil {
		return 0, nil, 0, err
	}
	if _, err = r.ExpectIdent("objective sense"); err != nil {
		return 0, nil, 0, err
	}
	obj, err := r.ExpectSparseVec()
	if err != nil {
		return 0, nil, 0, err
	}
	r.Objective = obj

	if err = r.ExpectLiteral("CON"); err != nil {
		return 0, nil, 0, err
	}
	numCon, err = r.ExpectInt("number of constraints")
	if err != nil {
		return 0, nil, 0, err
	}
	if _, err = r.ExpectInt("number of bounds"); err != nil {
		return 0, nil, 0, err
	}
	for i := 0; i < numCon; i++ {
		if _, err = r.ExpectConstraintLiteral(); err != nil {
			return 0, nil, 0, err
		}
	}

	if err = r.ExpectLiteral("RTP"); err != nil {
		return 0, nil, 0, err
	}
	kind, err := r.ExpectIdent("RTP kind")
	if err != nil {
		return 0, nil, 0, err
	}
	if kind == "range" {
		if _, err = r.ExpectIdent("RTP lower bound"); err != nil {
			return 0, nil, 0, err
		}
		if _, err = r.ExpectIdent("RTP upper bound"); err != nil {
			return 0, nil, 0, err
		}
	}

	if err = r.ExpectLiteral("SOL"); err != nil {
		return 0, nil, 0, err
	}
	numSol, err := r.ExpectInt("number of solutions")
	if err != nil {
		return 0, nil, 0, err
	}
	for i := 0; i < numSol; i++ {
		if _, err = r.ExpectIdent("solution label"); err != nil {
			return 0, nil, 0, err
		}
		if _, err = r.ExpectSparseVec(); err != nil {
			return 0, nil, 0, err
		}
	}

	if err = r.ExpectLiteral("DER"); err != nil {
		return 0, nil, 0, err
	}
	prefixEnd = r.Scanner().Offset()

	numDer, err := r.ExpectInt("number of derivations")
	if err != nil {
		return 0, nil, 0, err
	}

	nodes = make([]node, numDer)
	for i := range nodes {
		nodes[i].newIdx = -1
	}

	for i := 0; i < numDer; i++ {
		nodes[i].fpos = r.Scanner().Offset()

		if _, err = r.ExpectConstraintLiteral(); err != nil {
			return 0, nil, 0, err
		}
		if err = r.ExpectLiteral("{"); err != nil {
			return 0, nil, 0, err
		}
		reasonKind, err := r.ExpectIdent("derivation kind")
		if err != nil {
			return 0, nil, 0, err
		}

		switch reasonKind {
		case "asm", "sol":
			if err = r.ExpectLiteral("}"); err != nil {
				return 0, nil, 0, err
			}

		case "lin", "rnd":
			raw, err := r.ReadRawSparseVec()
			if err != nil {
				return 0, nil, 0, err
			}
			if err = r.ExpectLiteral("}"); err != nil {
				return 0, nil, 0, err
			}
			for _, idx := range raw.Indices {
				if idx >= numCon {
					insertArc(nodes, idx-numCon, i)
				}
			}

		case "uns":
			con1, err := r.ExpectInt("uns con1")
			if err != nil {
				return 0, nil, 0, err
			}
			a1, err := r.ExpectInt("uns a1")
			if err != nil {
				return 0, nil, 0, err
			}
			con2, err := r.ExpectInt("uns con2")
			if err != nil {
				return 0, nil, 0, err
			}
			a2, err := r.ExpectInt("uns a2")
			if err != nil {
				return 0, nil, 0, err
			}
			if err = r.ExpectLiteral("}"); err != nil {
				return 0, nil, 0, err
			}
			for _, idx := range []int{con1, a1, con2, a2} {
				if idx >= numCon {
					insertArc(nodes, idx-numCon, i)
				}
			}

		default:
			return 0, nil, 0, diag.ParseError("", "unknown derivation kind %q", reasonKind)
		}

		if _, err = r.ExpectInt("max ref index"); err != nil {
			return 0, nil, 0, err
		}
	}

	return numCon, nodes, prefixEnd, nil
}

type mark int8

const (
	markNone mark = iota
	markTemp
	markPerm
)

// buildGraph mirrors the needs arcs of nodes into a directed core.Graph,
// one vertex per derivation named by its decimal index. This gives
// topoSort a real graph to query instead of walking the node slice's
// needs field directly.
func buildGraph(nodes []node) *core.Graph {
	g := core.NewGraph(core.WithDirected(true))
	for i := range nodes {
		_ = g.AddVertex(strconv.Itoa(i))
	}
	for i, nd := range nodes {
		from := strconv.Itoa(i)
		for _, child := range nd.needs {
			_, _ = g.AddEdge(from, strconv.Itoa(child), 0)
		}
	}
	return g
}

// topoSort performs an iterative depth-first post-order traversal from
// the last derivation, the certificate's root, querying a core.Graph
// built by buildGraph rather than the node slice directly. A node
// re-entered while still TEMP-marked means the reference graph has a
// cycle, which is a hard failure: re-entry of TEMP can only happen
// while that node's own subtree is still being explored. Nodes never
// reached from the root are silently dropped, matching the reorderer's
// "unreferenced derivation" semantics.
//
// dfs.TopologicalSort in the same library walks every vertex (not just
// those reachable from one root) and is recursive, so it can't be
// called directly here: the root-scoped drop-unreferenced behavior and
// the iterative traversal this package requires both need the walk
// below, driven over the library's graph and Neighbors query instead
// of a parallel bespoke adjacency representation.
func topoSort(nodes []node) ([]int, error) {
	n := len(nodes)
	if n == 0 {
		return nil, nil
	}

	g := buildGraph(nodes)
	marks := make([]mark, n)
	var order []int

	type frame struct {
		id        string
		nextChild int
		children  []*core.Edge
	}

	neighborsOf := func(id string) ([]*core.Edge, error) {
		return g.Neighbors(id)
	}

	root := n - 1
	rootID := strconv.Itoa(root)
	rootChildren, err := neighborsOf(rootID)
	if err != nil {
		return nil, err
	}
	stack := []frame{{id: rootID, children: rootChildren}}
	marks[root] = markTemp

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.nextChild < len(top.children) {
			childID := top.children[top.nextChild].To
			top.nextChild++
			child, _ := strconv.Atoi(childID)
			switch marks[child] {
			case markPerm:
				// already fully explored via another path
			case markTemp:
				return nil, diag.Cycle(child)
			default:
				marks[child] = markTemp
				children, err := neighborsOf(childID)
				if err != nil {
					return nil, err
				}
				stack = append(stack, frame{id: childID, children: children})
			}
			continue
		}
		idx, _ := strconv.Atoi(top.id)
		marks[idx] = markPerm
		order = append(order, idx)
		stack = stack[:len(stack)-1]
	}

	return order, nil
}

// trim walks derivations in reverse, dropping any with no surviving
// successor until a fixed point, except the last derivation, which is
// never dropped even though it has no successor of its own. Survivors
// are renumbered densely in their original ascending order: derivation
// references always point to a strictly smaller index, so that order is
// already topologically valid.
func trim(nodes []node) []int {
	n := len(nodes)
	if n == 0 {
		return nil
	}

	alive := make([]bool, n)
	for i := range alive {
		alive[i] = true
	}
	root := n - 1

	for changed := true; changed; {
		changed = false
		for i := n - 1; i >= 0; i-- {
			if i == root || !alive[i] {
				continue
			}
			keep := false
			for _, s := range nodes[i].neededBy {
				if alive[s] {
					keep = true
					break
				}
			}
			if !keep {
				alive[i] = false
				changed = true
			}
		}
	}

	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if alive[i] {
			order = append(order, i)
		}
	}
	return order
}
