package grammar

import "github.com/gramforge/gramforge/gerr"

// delegateState is the outcome of folding a PT subtree while looking for a
// variant's sole consumed nonterminal (spec §4.4 "Intermediate inference").
type delegateState int

const (
	delegateNone delegateState = iota
	delegateCandidate
	delegateDisqualified
)

type delegateFold struct {
	state    delegateState
	name     string
	multiple bool // disqualified because two+ candidates competed, not because of a literal/builtin
}

func mergeDelegate(a, b delegateFold) delegateFold {
	if a.state == delegateDisqualified {
		return a
	}
	if b.state == delegateDisqualified {
		return b
	}
	if a.state == delegateNone {
		return b
	}
	if b.state == delegateNone {
		return a
	}
	return delegateFold{state: delegateDisqualified, multiple: true}
}

// foldDelegate folds pt looking for its single consumed nonterminal.
// ignoreLiterals is true only when the enclosing variant carries an explicit
// @intermediate annotation, per spec §4.4.
func foldDelegate(pt *PT, ignoreLiterals bool) delegateFold {
	switch pt.Kind {
	case PTReference:
		if IsBuiltin(pt.Text) {
			return delegateFold{state: delegateDisqualified}
		}
		return delegateFold{state: delegateCandidate, name: pt.Text}
	case PTLiteral:
		if ignoreLiterals {
			return delegateFold{state: delegateNone}
		}
		return delegateFold{state: delegateDisqualified}
	case PTNegativeLookahead:
		return delegateFold{state: delegateNone}
	default: // SEQUENCE, REPEATED, OPTIONAL
		result := delegateFold{state: delegateNone}
		for _, c := range pt.Children {
			result = mergeDelegate(result, foldDelegate(c, ignoreLiterals))
			if result.state == delegateDisqualified {
				return result
			}
		}
		return result
	}
}

func variantDelegate(v *Variant, ignoreLiterals bool) delegateFold {
	result := delegateFold{state: delegateNone}
	for _, pt := range v.PTree {
		result = mergeDelegate(result, foldDelegate(pt, ignoreLiterals))
		if result.state == delegateDisqualified {
			return result
		}
	}
	return result
}

// InferIntermediates runs intermediate inference over every variant of every
// production in m (spec §4.4), mutating each variant's annotation list in
// place: a successful inference replaces any @intermediate annotation with
// (@delegate=<name>). A variant explicitly annotated @intermediate that
// yields no unique delegate is a fatal error.
func InferIntermediates(m *Model) error {
	for _, p := range m.Productions() {
		for _, v := range p.Variants {
			ann, explicit := findAnnotation(v.Annotations, "intermediate")
			fold := variantDelegate(v, explicit)

			if fold.state == delegateCandidate {
				v.Annotations = replaceIntermediateAnnotation(v.Annotations, fold.name, ann.Pos)
				continue
			}

			if !explicit {
				continue
			}

			if fold.state == delegateDisqualified && fold.multiple {
				return &gerr.SpecError{Cause: gerr.ErrMultipleDelegate, Pos: ann.Pos, Detail: p.Name + "/" + v.Name}
			}
			return &gerr.SpecError{Cause: gerr.ErrNoDelegate, Pos: ann.Pos, Detail: p.Name + "/" + v.Name}
		}
	}
	return nil
}

// replaceIntermediateAnnotation drops an explicit @intermediate marker (if
// present) and appends (@delegate=name) in its place.
func replaceIntermediateAnnotation(anns []Annotation, name string, pos gerr.Position) []Annotation {
	out := make([]Annotation, 0, len(anns)+1)
	for _, a := range anns {
		if a.is("intermediate") {
			continue
		}
		out = append(out, a)
	}
	out = append(out, Annotation{Name: "delegate", Value: name, HasValue: true, Pos: pos})
	return out
}
