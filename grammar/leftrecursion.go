package grammar

// LeftCalls walks a variant's top-level PT list in order and returns the
// ordered list of production names it left-calls (spec §4.6). Entering
// OPTIONAL/REPEATED never halts the outer scan — they may match zero
// times — but the calls collected inside them are still genuine left-call
// candidates, since the subtree could begin matching at the current
// position.
func LeftCalls(pts []*PT, nullable map[string]bool) []string {
	calls, _ := walkLeftCalls(pts, nullable)
	return calls
}

func walkLeftCalls(pts []*PT, nullable map[string]bool) (calls []string, stop bool) {
	for _, pt := range pts {
		c, s := leftCallNode(pt, nullable)
		calls = append(calls, c...)
		if s {
			return calls, true
		}
	}
	return calls, false
}

func leftCallNode(pt *PT, nullable map[string]bool) (calls []string, stop bool) {
	switch pt.Kind {
	case PTSequence:
		return walkLeftCalls(pt.Children, nullable)
	case PTOptional, PTRepeated:
		inner, _ := walkLeftCalls(pt.Children, nullable)
		return inner, false
	case PTNegativeLookahead:
		return nil, false
	case PTLiteral:
		return nil, true
	case PTReference:
		if IsBuiltin(pt.Text) {
			return nil, !IsEmptyMatching(pt.Text, nullable)
		}
		return []string{pt.Text}, !IsEmptyMatching(pt.Text, nullable)
	}
	return nil, false
}

// PVStep names one (production, variant) hop of a left-recursion chain.
type PVStep struct {
	Prod    string
	Variant string
}

// LeftCallTable maps production name -> variant name -> its left-call list.
type LeftCallTable map[string]map[string][]string

// BuildLeftCallTable computes the left-call set of every variant in m.
func BuildLeftCallTable(m *Model, nullable map[string]bool) LeftCallTable {
	table := make(LeftCallTable, len(m.order))
	for _, p := range m.Productions() {
		byVariant := make(map[string][]string, len(p.Variants))
		for _, v := range p.Variants {
			byVariant[v.Name] = LeftCalls(v.PTree, nullable)
		}
		table[p.Name] = byVariant
	}
	return table
}

// findChainToTarget searches, via DFS over productions reachable through
// left-calls, for a path from start back to target, returning the
// (production, variant) steps witnessing it. seen is shared across the
// whole search for one starting variant, per spec §4.6's "per-start-variant
// seen-set".
func findChainToTarget(start, target string, m *Model, calls LeftCallTable, seen map[string]bool) ([]PVStep, bool) {
	if seen[start] {
		return nil, false
	}
	seen[start] = true
	p := m.Lookup(start)
	if p == nil {
		return nil, false
	}
	for _, v := range p.Variants {
		for _, callee := range calls[start][v.Name] {
			if callee == target {
				return []PVStep{{Prod: start, Variant: v.Name}}, true
			}
		}
	}
	for _, v := range p.Variants {
		for _, callee := range calls[start][v.Name] {
			if sub, ok := findChainToTarget(callee, target, m, calls, seen); ok {
				return append([]PVStep{{Prod: start, Variant: v.Name}}, sub...), true
			}
		}
	}
	return nil, false
}

// LRTable maps production name -> variant name -> witnessing chain, for
// every variant found to be left-recursive.
type LRTable map[string]map[string][]PVStep

// DetectLeftRecursion finds every left-recursive variant in m (spec §4.6).
func DetectLeftRecursion(m *Model, calls LeftCallTable) LRTable {
	result := LRTable{}
	for _, p := range m.Productions() {
		for _, v := range p.Variants {
			directCalls := calls[p.Name][v.Name]

			var chain []PVStep
			for _, callee := range directCalls {
				if callee == p.Name {
					chain = []PVStep{{Prod: p.Name, Variant: v.Name}}
					break
				}
			}
			if chain == nil {
				seen := map[string]bool{}
				for _, callee := range directCalls {
					if sub, ok := findChainToTarget(callee, p.Name, m, calls, seen); ok {
						chain = append([]PVStep{{Prod: p.Name, Variant: v.Name}}, sub...)
						break
					}
				}
			}
			if chain != nil {
				if result[p.Name] == nil {
					result[p.Name] = map[string][]PVStep{}
				}
				result[p.Name][v.Name] = chain
			}
		}
	}
	return result
}

// ShortestLRCycle computes, for the LR variant (p,v) and one of its
// immediate left-callees, the shortest chain of (production, variant) hops
// that closes back to p (spec §4.6). This is a plain BFS over the
// production graph induced by left-calls, independent of the existence-only
// DFS in DetectLeftRecursion, because it must pick the specific variant at
// each hop that realizes the shortest path.
func ShortestLRCycle(callee, target string, m *Model, calls LeftCallTable) []PVStep {
	if callee == target {
		return nil
	}

	visited := map[string]bool{callee: true}
	prevProd := map[string]string{}
	prevVariant := map[string]string{}
	queue := []string{callee}
	found := false

	for len(queue) > 0 && !found {
		cur := queue[0]
		queue = queue[1:]
		p := m.Lookup(cur)
		if p == nil {
			continue
		}
		for _, v := range p.Variants {
			for _, next := range calls[cur][v.Name] {
				if visited[next] {
					continue
				}
				visited[next] = true
				prevProd[next] = cur
				prevVariant[next] = v.Name
				if next == target {
					found = true
					break
				}
				queue = append(queue, next)
			}
			if found {
				break
			}
		}
	}
	if !found {
		return nil
	}

	var prods []string
	for cur := target; cur != callee; cur = prevProd[cur] {
		prods = append([]string{cur}, prods...)
	}
	prods = append([]string{callee}, prods...)

	steps := make([]PVStep, 0, len(prods)-1)
	for i := 0; i < len(prods)-1; i++ {
		steps = append(steps, PVStep{Prod: prods[i], Variant: prevVariant[prods[i+1]]})
	}
	return steps
}

// LRCycleKey identifies one (production, variant, immediate left-callee)
// triple for which a shortest-cycle witness has been computed.
type LRCycleKey struct {
	Prod    string
	Variant string
	Callee  string
}

// ComputeShortestLRCycles runs the Shortest-LR-Cycle stage of the pipeline
// (spec §2, §3 "shortest_lr_cycle"): for every left-recursive variant and
// each of its immediate left-callees, the shortest chain of (production,
// variant) hops that closes back to the variant's own production. This is
// distinct from the witnessing chain in LRTable, which only proves a cycle
// exists rather than finding the shortest one.
func ComputeShortestLRCycles(m *Model, calls LeftCallTable, lr LRTable) map[LRCycleKey][]PVStep {
	out := map[LRCycleKey][]PVStep{}
	for p, variants := range lr {
		for v := range variants {
			for _, callee := range calls[p][v] {
				out[LRCycleKey{Prod: p, Variant: v, Callee: callee}] = ShortestLRCycle(callee, p, m, calls)
			}
		}
	}
	return out
}

// isLRForwarding reports whether every LR variant of p is a single
// REFERENCE pointing at another production that itself has an LR variant
// (spec §4.6 "LR-forwarding").
func isLRForwarding(p *Production, lr LRTable) bool {
	variants, ok := lr[p.Name]
	if !ok || len(variants) == 0 {
		return false
	}
	for _, v := range p.Variants {
		if _, isLR := variants[v.Name]; !isLR {
			continue
		}
		if len(v.PTree) != 1 || v.PTree[0].Kind != PTReference {
			return false
		}
		target := v.PTree[0].Text
		if IsBuiltin(target) {
			return false
		}
		if len(lr[target]) == 0 {
			return false
		}
	}
	return true
}

// ProductionIsLR reports p's emitted isLR flag: true iff p has at least one
// LR variant and p is not purely forwarding into another LR production.
func ProductionIsLR(p *Production, lr LRTable) bool {
	if len(lr[p.Name]) == 0 {
		return false
	}
	return !isLRForwarding(p, lr)
}
