package reorder

import (
	"bytes"
	"strconv"

	"vipr/internal/certfile"
	"vipr/internal/diag"
)

// remapIdx translates a global index from the original numbering to the
// new one: original-constraint indices (< numCon) never move; a
// derivation index numCon+k becomes numCon+nodes[k].newIdx.
func remapIdx(idx, numCon int, nodes []node) int {
	if idx < numCon {
		return idx
	}
	return nodes[idx-numCon].newIdx + numCon
}

// maxSuccessorIdx recomputes node i's maxRefIdx token from scratch: the
// largest newIdx among its surviving successors, or -1 if none survive.
// A dropped successor was never assigned a newIdx (it stays at the -1
// default), so it can never win this max; no separate reachability
// filter is needed.
func maxSuccessorIdx(i int, numCon int, nodes []node) int {
	maxIdx := -1
	for _, s := range nodes[i].neededBy {
		if nodes[s].newIdx > maxIdx {
			maxIdx = nodes[s].newIdx
		}
	}
	if maxIdx != -1 {
		maxIdx += numCon
	}
	return maxIdx
}

func expectRaw(s *certfile.Scanner, context string) (certfile.Token, error) {
	tok, err := s.NextToken()
	if err != nil {
		return certfile.Token{}, diag.ParseError("", "unexpected end of file while reading %s", context)
	}
	return tok, nil
}

func expectRawLiteral(s *certfile.Scanner, want string) error {
	tok, err := expectRaw(s, want)
	if err != nil {
		return err
	}
	if tok.Text != want {
		return diag.ParseError("", "%q expected, read instead %q", want, tok.Text)
	}
	return nil
}

// rewriteSparseVec copies one coefficient/multiplier vector verbatim,
// remapping indices >= numCon when remapRefs is true (the multiplier
// list of lin/rnd references derivations; a derivation's own coefficient
// vector references variables and is never remapped).
func rewriteSparseVec(out *bytes.Buffer, s *certfile.Scanner, numCon int, nodes []node, remapRefs bool) error {
	tok, err := expectRaw(s, "sparse vector")
	if err != nil {
		return err
	}
	if tok.Text == "OBJ" {
		out.WriteString(" OBJ")
		return nil
	}
	k, convErr := strconv.Atoi(tok.Text)
	if convErr != nil {
		return diag.ParseError("", "expected a sparse vector size or OBJ, read instead %q", tok.Text)
	}
	out.WriteString(" ")
	out.WriteString(strconv.Itoa(k))
	for i := 0; i < k; i++ {
		idxTok, err := expectRaw(s, "sparse vector index")
		if err != nil {
			return err
		}
		valTok, err := expectRaw(s, "sparse vector value")
		if err != nil {
			return err
		}
		idx, convErr := strconv.Atoi(idxTok.Text)
		if convErr != nil {
			return diag.ParseError("", "expected an integer index, read instead %q", idxTok.Text)
		}
		if remapRefs && idx >= numCon {
			idx = remapIdx(idx, numCon, nodes)
		}
		out.WriteString(" ")
		out.WriteString(strconv.Itoa(idx))
		out.WriteString(" ")
		out.WriteString(valTok.Text)
	}
	return nil
}

// rewrite copies src up to prefixEnd byte-for-byte, writes the new
// derivation count, then re-seeks to each surviving derivation (in
// emission order) and re-emits it with every forward reference remapped
// to its new index.
func rewrite(src []byte, prefixEnd, numCon int, nodes []node, order []int) ([]byte, error) {
	var out bytes.Buffer
	out.Write(src[:prefixEnd])
	out.WriteString(" ")
	out.WriteString(strconv.Itoa(len(order)))
	out.WriteString("\n")

	s := certfile.NewScanner(src)

	for _, i := range order {
		s.Seek(nodes[i].fpos)

		label, err := expectRaw(s, "derivation label")
		if err != nil {
			return nil, err
		}
		senseTok, err := expectRaw(s, "derivation sense")
		if err != nil {
			return nil, err
		}
		rhsTok, err := expectRaw(s, "derivation rhs")
		if err != nil {
			return nil, err
		}
		out.WriteString(label.Text)
		out.WriteString(" ")
		out.WriteString(senseTok.Text)
		out.WriteString(" ")
		out.WriteString(rhsTok.Text)

		if err := rewriteSparseVec(&out, s, numCon, nodes, false); err != nil {
			return nil, err
		}

		if err := expectRawLiteral(s, "{"); err != nil {
			return nil, err
		}
		out.WriteString(" {")

		kindTok, err := expectRaw(s, "derivation kind")
		if err != nil {
			return nil, err
		}
		out.WriteString(" ")
		out.WriteString(kindTok.Text)

		switch kindTok.Text {
		case "asm", "sol":
			closeTok, err := expectRaw(s, "}")
			if err != nil {
				return nil, err
			}
			if closeTok.Text != "}" {
				return nil, diag.ParseError("", "'}' expected, read instead %q", closeTok.Text)
			}
			out.WriteString(" }")

		case "lin", "rnd":
			if err := rewriteSparseVec(&out, s, numCon, nodes, true); err != nil {
				return nil, err
			}
			closeTok, err := expectRaw(s, "}")
			if err != nil {
				return nil, err
			}
			if closeTok.Text != "}" {
				return nil, diag.ParseError("", "'}' expected, read instead %q", closeTok.Text)
			}
			out.WriteString(" }")

		case "uns":
			var idxs [4]int
			for j := range idxs {
				tok, err := expectRaw(s, "uns index")
				if err != nil {
					return nil, err
				}
				idx, convErr := strconv.Atoi(tok.Text)
				if convErr != nil {
					return nil, diag.ParseError("", "expected an integer, read instead %q", tok.Text)
				}
				idxs[j] = remapIdx(idx, numCon, nodes)
			}
			for _, idx := range idxs {
				out.WriteString(" ")
				out.WriteString(strconv.Itoa(idx))
			}
			closeTok, err := expectRaw(s, "}")
			if err != nil {
				return nil, err
			}
			if closeTok.Text != "}" {
				return nil, diag.ParseError("", "'}' expected, read instead %q", closeTok.Text)
			}
			out.WriteString(" }")

		default:
			return nil, diag.ParseError(label.Text, "unknown derivation kind %q", kindTok.Text)
		}

		if _, err := expectRaw(s, "max ref index"); err != nil {
			return nil, err
		}
		out.WriteString(" ")
		out.WriteString(strconv.Itoa(maxSuccessorIdx(i, numCon, nodes)))
		out.WriteString("\n")
	}

	return out.Bytes(), nil
}
