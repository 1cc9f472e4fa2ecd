package grammar

// nullState is the tri-state result of evaluating one PT node or production
// for emptiness (spec §4.5).
type nullState int

const (
	nEmpty nullState = iota
	nNonEmpty
	nCyclic
)

// nullabilityEngine computes the empty-matching fixed point over a possibly
// cyclic reference graph. A production's result is only cached once a DFS
// rooted there completes without an unresolved cycle, or once the DFS that
// started at that production finishes — matching spec §4.5's memoization
// rule exactly, so results don't depend on which production is asked first.
type nullabilityEngine struct {
	m      *Model
	memo   map[string]bool
	onPath map[string]bool
}

func newNullabilityEngine(m *Model) *nullabilityEngine {
	return &nullabilityEngine{m: m, memo: map[string]bool{}, onPath: map[string]bool{}}
}

// ProductionEmpty reports whether the named production can match the empty
// input, plus whether evaluating it crossed an unresolved cycle.
func (e *nullabilityEngine) ProductionEmpty(name string) (empty, cyclic bool) {
	if name == "builtin" || name == "any" {
		return true, false
	}
	if IsBuiltin(name) {
		return false, false
	}
	if v, ok := e.memo[name]; ok {
		return v, false
	}
	if e.onPath[name] {
		return false, true
	}

	topmost := len(e.onPath) == 0
	e.onPath[name] = true

	anyCycle := false
	result := false
	if p := e.m.Lookup(name); p != nil {
		for _, v := range p.Variants {
			state, cyc := e.evalSeq(v.PTree)
			if cyc {
				anyCycle = true
			}
			if state == nEmpty {
				result = true
				break
			}
		}
	}

	delete(e.onPath, name)
	if !anyCycle || topmost {
		e.memo[name] = result
	}
	return result, anyCycle
}

func (e *nullabilityEngine) evalSeq(pts []*PT) (nullState, bool) {
	anyCycle := false
	for _, pt := range pts {
		state, cyc := e.evalNode(pt)
		if cyc {
			anyCycle = true
		}
		if state == nNonEmpty {
			return nNonEmpty, anyCycle
		}
	}
	return nEmpty, anyCycle
}

func (e *nullabilityEngine) evalNode(pt *PT) (nullState, bool) {
	switch pt.Kind {
	case PTOptional, PTRepeated, PTNegativeLookahead:
		return nEmpty, false
	case PTLiteral:
		if pt.Text == "" {
			return nEmpty, false
		}
		return nNonEmpty, false
	case PTReference:
		empty, cyclic := e.ProductionEmpty(pt.Text)
		if cyclic {
			return nCyclic, true
		}
		if empty {
			return nEmpty, false
		}
		return nNonEmpty, false
	default: // SEQUENCE
		return e.evalSeq(pt.Children)
	}
}

// ComputeNullability returns, for every production in m, whether it can
// match the empty input (spec §4.5).
func ComputeNullability(m *Model) map[string]bool {
	e := newNullabilityEngine(m)
	out := make(map[string]bool, len(m.order))
	for _, p := range m.Productions() {
		empty, _ := e.ProductionEmpty(p.Name)
		out[p.Name] = empty
	}
	return out
}

// IsEmptyMatching reports whether name matches empty, consulting the
// builtin wildcard table first and falling back to a computed nullability
// table for ordinary productions.
func IsEmptyMatching(name string, nullable map[string]bool) bool {
	if name == "builtin" || name == "any" {
		return true
	}
	if IsBuiltin(name) {
		return false
	}
	return nullable[name]
}
