package grammar

// walkReferences calls visit for every REFERENCE leaf reachable from pt
// without crossing into a NEGATIVE_LOOKAHEAD's exemption (lookaheads still
// contain genuine references; only left-call scanning treats them
// specially). SEQUENCE/REPEATED/OPTIONAL/NLA all simply recurse into their
// children.
func walkReferences(pt *PT, visit func(name string)) {
	switch pt.Kind {
	case PTReference:
		visit(pt.Text)
	case PTLiteral:
		// no references
	default:
		for _, c := range pt.Children {
			walkReferences(c, visit)
		}
	}
}

// Reachable computes the set of production names reachable from any
// production annotated @toplevel (spec §4.4).
func Reachable(m *Model) *stringSet {
	reached := newStringSet()
	var stack []string
	for _, p := range m.Productions() {
		if p.isToplevel() {
			if reached.Add(p.Name) {
				stack = append(stack, p.Name)
			}
		}
	}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p := m.Lookup(name)
		if p == nil {
			continue
		}
		for _, v := range p.Variants {
			for _, pt := range v.PTree {
				walkReferences(pt, func(ref string) {
					if IsBuiltin(ref) {
						return
					}
					if reached.Add(ref) {
						stack = append(stack, ref)
					}
				})
			}
		}
	}
	return reached
}

// Prune drops every production unreachable from a @toplevel production,
// idempotently (spec §8 invariant 4: running it twice changes nothing,
// since a pruned model's reachable set is itself). It returns the names of
// the productions it removed, for the verbose unreachable-productions
// diagnostic (spec §4.9).
func Prune(m *Model) []string {
	reached := Reachable(m).AsMap()
	var dropped []string
	for _, p := range m.Productions() {
		if !reached[p.Name] {
			dropped = append(dropped, p.Name)
		}
	}
	m.prune(reached)
	return dropped
}
