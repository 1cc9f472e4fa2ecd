package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// edgeColor is the DOT color of one nonterminal-reference edge. Left-call
// edges are drawn distinctly so a reader can spot the left-recursion
// backbone of a grammar at a glance (spec §6, "DOT output").
type edgeColor int

const (
	colorBlack edgeColor = iota
	colorBlue
)

func (c edgeColor) String() string {
	if c == colorBlue {
		return "blue"
	}
	return "black"
}

// WriteDOT renders the reference graph of m as a DOT digraph, one node per
// production and one edge per distinct referent relationship. An edge
// participating in some variant's left-call set is colored blue; if the
// same (from, to) pair is reached by both a left-call and a non-left-call
// edge, blue wins (spec §6, supplemented: merge-and-prefer-left-color).
func WriteDOT(m *Model, calls LeftCallTable) string {
	type edgeKey struct{ from, to string }
	colors := map[edgeKey]edgeColor{}

	for _, p := range m.Productions() {
		for _, v := range p.Variants {
			leftSet := map[string]bool{}
			for _, c := range calls[p.Name][v.Name] {
				leftSet[c] = true
			}
			for _, pt := range v.PTree {
				walkReferences(pt, func(ref string) {
					if IsBuiltin(ref) {
						return
					}
					key := edgeKey{from: p.Name, to: ref}
					color := colorBlack
					if leftSet[ref] {
						color = colorBlue
					}
					if existing, ok := colors[key]; !ok || color == colorBlue && existing != colorBlue {
						colors[key] = color
					}
				})
			}
		}
	}

	keys := make([]edgeKey, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})

	var b strings.Builder
	b.WriteString("digraph nonterminals {\n")
	for _, p := range m.Productions() {
		fmt.Fprintf(&b, "\t%q;\n", p.Name)
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "\t%q -> %q [color=%s];\n", k.from, k.to, colors[k])
	}
	b.WriteString("}\n")
	return b.String()
}
