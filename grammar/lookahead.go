package grammar

import "unicode/utf8"

// isRegexMeta reports whether r needs backslash-escaping when used as a
// lookahead character (spec §4.7, "a small escape map"): the regex
// metacharacters listed below ('+' is not among them). Escaping '*' also
// keeps a literal '*' distinct from the anytoken sentinel (model.go).
func isRegexMeta(r rune) bool {
	switch r {
	case '.', '^', '$', '*', '?', '(', ')', '[', ']', '{', '}', '|', '\\':
		return true
	}
	return false
}

func escapeFirstChar(text string) string {
	r, _ := utf8.DecodeRuneInString(text)
	if isRegexMeta(r) {
		return "\\" + string(r)
	}
	return string(r)
}

// firstSeed holds a variant's syntactic lookahead seed: literal characters
// to add directly, and referent names whose FIRST sets must be folded in by
// the fixed point below.
type firstSeed struct {
	toks []string
	refs []string
}

// seedFirst walks pts, a variant's top-level PT list, stopping at the first
// position that definitely consumes a token. Unlike LeftCalls, every
// REFERENCE is assumed to consume at least one token here regardless of its
// actual nullability (spec §4.7) — OPTIONAL/REPEATED never stop the walk,
// since they might be skipped, but they still contribute whatever they find
// inside.
func seedFirst(pts []*PT) firstSeed {
	toks, refs, _ := walkFirstSeed(pts)
	return firstSeed{toks: toks, refs: refs}
}

func walkFirstSeed(pts []*PT) (toks, refs []string, stop bool) {
	for _, pt := range pts {
		switch pt.Kind {
		case PTSequence:
			t, r, s := walkFirstSeed(pt.Children)
			toks = append(toks, t...)
			refs = append(refs, r...)
			if s {
				return toks, refs, true
			}
		case PTOptional, PTRepeated:
			t, r, _ := walkFirstSeed(pt.Children)
			toks = append(toks, t...)
			refs = append(refs, r...)
		case PTNegativeLookahead:
			// contributes nothing, never stops
		case PTLiteral:
			if pt.Text != "" {
				toks = append(toks, escapeFirstChar(pt.Text))
			}
			return toks, refs, true
		case PTReference:
			refs = append(refs, pt.Text)
			return toks, refs, true
		}
	}
	return toks, refs, false
}

// LookaheadTable holds the fixed-point FIRST sets of every variant and
// production (spec §4.7).
type LookaheadTable struct {
	Variant    map[string]map[string]*stringSet
	Production map[string]*stringSet
}

// ComputeLookahead runs the FIRST-set fixed point over m.
func ComputeLookahead(m *Model) *LookaheadTable {
	seeds := make(map[string]map[string]firstSeed, len(m.order))
	variantSet := make(map[string]map[string]*stringSet, len(m.order))
	prodSet := make(map[string]*stringSet, len(m.order))

	for _, p := range m.Productions() {
		seeds[p.Name] = make(map[string]firstSeed, len(p.Variants))
		variantSet[p.Name] = make(map[string]*stringSet, len(p.Variants))
		prodSet[p.Name] = newStringSet()
		if hasAnnotation(p.Annotations, "interp") {
			prodSet[p.Name].Add(interpChar)
		}
		for _, v := range p.Variants {
			sd := seedFirst(v.PTree)
			seeds[p.Name][v.Name] = sd
			variantSet[p.Name][v.Name] = newStringSet(sd.toks...)
		}
	}

	// Stop once two successive full passes add nothing.
	quietPasses := 0
	for quietPasses < 2 {
		changed := false
		for _, p := range m.Productions() {
			for _, v := range p.Variants {
				vs := variantSet[p.Name][v.Name]
				for _, r := range seeds[p.Name][v.Name].refs {
					switch {
					case r == BuiltinName:
						for _, x := range prodSet[p.Name].Values() {
							if vs.Add(x) {
								changed = true
							}
						}
					case IsBuiltin(r):
						for _, x := range builtinFirst[r] {
							if vs.Add(x) {
								changed = true
							}
						}
					case m.Lookup(r) != nil:
						for _, x := range prodSet[r].Values() {
							if vs.Add(x) {
								changed = true
							}
						}
					}
				}
			}
			for _, v := range p.Variants {
				for _, x := range variantSet[p.Name][v.Name].Values() {
					if prodSet[p.Name].Add(x) {
						changed = true
					}
				}
			}
		}
		if changed {
			quietPasses = 0
		} else {
			quietPasses++
		}
	}

	for _, byVariant := range variantSet {
		for _, s := range byVariant {
			stripSubsumedLetters(s)
		}
	}
	for _, s := range prodSet {
		stripSubsumedLetters(s)
	}

	return &LookaheadTable{Variant: variantSet, Production: prodSet}
}

// stripSubsumedLetters removes single lowercase-letter members once the
// identifier-start character class is present, since that class already
// covers them (spec §4.7, final post-processing step).
func stripSubsumedLetters(s *stringSet) {
	if !s.Contains(identStartClass) {
		return
	}
	for _, v := range s.Values() {
		if len(v) == 1 && v[0] >= 'a' && v[0] <= 'z' {
			s.Remove(v)
		}
	}
}

// ReportedFirst returns the lookahead set to surface for p in emitted
// output: the anytoken sentinel for empty-matching productions and the
// distinguished JavaDoc-comment builtin, and the computed FIRST set
// otherwise (spec §4.7, final paragraph).
func ReportedFirst(p *Production, table *LookaheadTable, nullable map[string]bool) []string {
	if nullable[p.Name] || p.Name == BuiltinJavaDocComment {
		return []string{anytoken}
	}
	if s, ok := table.Production[p.Name]; ok {
		return s.Values()
	}
	return nil
}
