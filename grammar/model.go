package grammar

import "github.com/gramforge/gramforge/gerr"

// Annotation is either a valueless "@name" or a "(@name=value)" pair
// (spec §3).
type Annotation struct {
	Name  string
	Value string
	// HasValue distinguishes a present-but-empty value from a valueless
	// annotation.
	HasValue bool
	Pos      gerr.Position
}

func (a Annotation) is(name string) bool {
	return a.Name == name
}

func findAnnotation(anns []Annotation, name string) (Annotation, bool) {
	for _, a := range anns {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}

func hasAnnotation(anns []Annotation, name string) bool {
	_, ok := findAnnotation(anns, name)
	return ok
}

// recognizedDirectives are annotation names with first-class meaning to the
// compiler; everything else is preserved verbatim into the per-annotation
// tables (spec §4.8).
var recognizedDirectives = map[string]bool{
	"name":         true,
	"mixin":        true,
	"trait":        true,
	"intermediate": true,
}

// Variant is one alternative of a production (spec §3).
type Variant struct {
	Name        string
	PTree       []*PT
	Annotations []Annotation
}

func (v *Variant) isLeaf() bool {
	return len(v.PTree) == 0
}

// Production is a named nonterminal with one or more variants (spec §3).
type Production struct {
	Name         string
	SourceTokens []Token
	Variants     []*Variant
	Annotations  []Annotation
	Chapter      string
}

func (p *Production) isToplevel() bool {
	return hasAnnotation(p.Annotations, "toplevel")
}

// IsToplevel reports whether p carries the @toplevel annotation (spec
// §4.4, "Reachability").
func (p *Production) IsToplevel() bool {
	return p.isToplevel()
}

func (p *Production) isNonstandard() bool {
	return hasAnnotation(p.Annotations, "nonstandard")
}

// isLeafProduction reports whether p has a single variant whose sole
// constituent is a reference to the reserved builtin production.
func (p *Production) isLeafProduction() bool {
	if len(p.Variants) != 1 {
		return false
	}
	v := p.Variants[0]
	if len(v.PTree) != 1 {
		return false
	}
	return v.PTree[0].Kind == PTReference && v.PTree[0].Text == BuiltinName
}

// Chapter groups productions for downstream cross-reference reports; it is
// metadata only (spec §3).
type Chapter struct {
	Name        string
	Productions []*Production
}

// Model is the immutable-after-build in-memory representation of an
// analyzed grammar, indexed by production name (spec §3 "Ownership &
// lifecycle").
type Model struct {
	Chapters []*Chapter
	byName   map[string]*Production
	order    []string // production names in declaration order
}

func newModel() *Model {
	return &Model{byName: map[string]*Production{}}
}

func (m *Model) addProduction(chapterName string, p *Production) {
	m.byName[p.Name] = p
	m.order = append(m.order, p.Name)
}

// Lookup returns the named production, or nil if it is not defined (it may
// be a builtin, or simply undefined).
func (m *Model) Lookup(name string) *Production {
	return m.byName[name]
}

// Productions returns every production in declaration order.
func (m *Model) Productions() []*Production {
	out := make([]*Production, 0, len(m.order))
	for _, n := range m.order {
		out = append(out, m.byName[n])
	}
	return out
}

// prune drops every production whose name is not in keep, from both the
// name index and every chapter's production list, preserving relative
// order (spec §4.4 "Reachability").
func (m *Model) prune(keep map[string]bool) {
	newOrder := make([]string, 0, len(m.order))
	for _, n := range m.order {
		if keep[n] {
			newOrder = append(newOrder, n)
		} else {
			delete(m.byName, n)
		}
	}
	m.order = newOrder

	for _, c := range m.Chapters {
		kept := make([]*Production, 0, len(c.Productions))
		for _, p := range c.Productions {
			if keep[p.Name] {
				kept = append(kept, p)
			}
		}
		c.Productions = kept
	}
}

// Builtin names (spec §3, "Reserved builtins").
const (
	BuiltinName           = "builtin"
	BuiltinAny             = "any"
	BuiltinIdentifier      = "Identifier"
	BuiltinIdentifierChars = "IdentifierChars"
	BuiltinFloat           = "FloatingPointLiteral"
	BuiltinInteger         = "IntegerLiteral"
	BuiltinChar            = "CharacterLiteral"
	BuiltinString          = "StringLiteral"
	BuiltinJavaDocComment  = "JavaDocComment"
)

var builtinNames = map[string]bool{
	BuiltinName:            true,
	BuiltinAny:             true,
	BuiltinIdentifier:      true,
	BuiltinIdentifierChars: true,
	BuiltinFloat:           true,
	BuiltinInteger:         true,
	BuiltinChar:            true,
	BuiltinString:          true,
	BuiltinJavaDocComment:  true,
}

// IsBuiltin reports whether name is a reserved builtin production name.
func IsBuiltin(name string) bool {
	return builtinNames[name]
}

// builtinEmptyMatching lists the builtins that can match the empty string.
// Only "builtin" and "any" are treated as nullable wildcards; the rest are
// lexical literals that always consume at least one character (spec §4.5).
var builtinEmptyMatching = map[string]bool{
	BuiltinName: true,
	BuiltinAny:  true,
}

// builtinFirst gives the constant FIRST sets of builtins that are not the
// wildcard productions "builtin"/"any" (spec §4.7).
var builtinFirst = map[string][]string{
	BuiltinIdentifier:      {identStartClass},
	BuiltinIdentifierChars: {identStartClass},
	BuiltinFloat:           {".", digitClass},
	BuiltinInteger:         {digitClass},
	BuiltinChar:            {"'"},
	BuiltinString:          {`"`},
}

// Character-class sentinels used in lookahead sets (spec Design Notes,
// "Lazy character classes").
const (
	identStartClass = "[A-Za-z_$]"
	digitClass      = "0-9"
	anytoken        = "*"
	interpChar      = "<"
)
