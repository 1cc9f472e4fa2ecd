package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gramforge/gramforge/customizations"
)

// ArtifactSink is the capability the Emission Adapter writes through (spec
// §6, "Artifact sink"). exists lets a hand-written file shadow a generated
// one; emit writes body as the named artifact's content. Both paths are
// relative to a sink-owned output directory.
type ArtifactSink interface {
	Exists(relativePath string) bool
	Emit(artifactName, body string) error
}

// RenderedSource reconstructs an approximation of a production's original
// source text from its significant tokens, suitable for embedding in a
// generated doc comment. Any occurrence of "*/" is split so it cannot
// terminate the enclosing doc comment early (spec's supplemented jsdoc
// escaping rule).
func RenderedSource(toks []Token) string {
	var b strings.Builder
	prevLine := 0
	for i, t := range toks {
		if i == 0 {
			prevLine = t.Pos.Line
		} else if t.Pos.Line != prevLine {
			for n := t.Pos.Line - prevLine; n > 0; n-- {
				b.WriteByte('\n')
			}
			prevLine = t.Pos.Line
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return strings.ReplaceAll(b.String(), "*/", "*\\/")
}

// VariantArtifact is the fully resolved view of one variant fed to the sink.
type VariantArtifact struct {
	Name        string
	PTree       []*PT
	Annotations []Annotation
	Lookahead   []string
	IsLR        bool
	LRChain     []PVStep
	// ShortestCycles maps each immediate left-callee to the shortest chain
	// of hops that closes back to this variant's production (spec §2's
	// Shortest-LR-Cycle stage, §3 "shortest_lr_cycle"), distinct from
	// LRChain's existence-proving witness.
	ShortestCycles map[string][]PVStep
	Delegate       string
	HasDelegate    bool
	// Mixins holds the transitively resolved state/imports of every mixin
	// named by this variant's (@mixin=...)/(@trait=...) annotation (spec
	// §6, "Transitively closed on emission").
	Mixins []customizations.ResolvedMixin
}

// ProductionArtifact is the fully resolved view of one production fed to
// the sink (spec §4.8).
type ProductionArtifact struct {
	Chapter        string
	Name           string
	RenderedSource string
	Variants       []VariantArtifact
	Lookahead      []string
	IsLR           bool
	IsLeaf         bool
	// CustomBody and CustomImports are spliced in from the customizations
	// object's custom_node_content entry keyed by this production's name,
	// when one was supplied (spec §6, "inject ... into that production's
	// artifact").
	CustomBody    string
	CustomImports []string
}

// AnnotationTables collects every non-directive annotation, keyed by the
// annotation's own name, then by the production name that carried it (spec
// §4.8, "per-annotation tables").
type AnnotationTables map[string]map[string][]Annotation

func addAnnotationEntries(tables AnnotationTables, prodName string, anns []Annotation) {
	for _, a := range anns {
		if recognizedDirectives[a.Name] {
			continue
		}
		if tables[a.Name] == nil {
			tables[a.Name] = map[string][]Annotation{}
		}
		tables[a.Name][prodName] = append(tables[a.Name][prodName], a)
	}
}

// LiteralCatalogue partitions every distinct LITERAL body found in standard
// (non-@nonstandard) productions into alphabetic keywords and everything
// else (punctuation), per spec §4.8 and the round-trip law of §8.
type LiteralCatalogue struct {
	Keywords   []string
	Punctuation []string
}

func isAlphabeticLiteral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_') {
			return false
		}
	}
	return true
}

func collectLiterals(m *Model) LiteralCatalogue {
	seen := newStringSet()
	for _, p := range m.Productions() {
		if p.isNonstandard() {
			continue
		}
		for _, v := range p.Variants {
			for _, pt := range v.PTree {
				collectLiteralLeaves(pt, seen)
			}
		}
	}

	var cat LiteralCatalogue
	for _, lit := range seen.Values() {
		if isAlphabeticLiteral(lit) {
			cat.Keywords = append(cat.Keywords, lit)
		} else {
			cat.Punctuation = append(cat.Punctuation, lit)
		}
	}
	return cat
}

func collectLiteralLeaves(pt *PT, into *stringSet) {
	if pt.Kind == PTLiteral {
		into.Add(pt.Text)
		return
	}
	for _, c := range pt.Children {
		collectLiteralLeaves(c, into)
	}
}

// IdentifierWrapperProductions returns the set of productions whose single
// variant is a single REFERENCE that resolves, transitively, to the
// builtin Identifier production (spec §4.8).
func IdentifierWrapperProductions(m *Model) *stringSet {
	direct := map[string]string{} // production -> what it singly references
	for _, p := range m.Productions() {
		if len(p.Variants) != 1 {
			continue
		}
		v := p.Variants[0]
		if len(v.PTree) != 1 || v.PTree[0].Kind != PTReference {
			continue
		}
		direct[p.Name] = v.PTree[0].Text
	}

	wrappers := newStringSet()
	var resolves func(name string, seen map[string]bool) bool
	resolves = func(name string, seen map[string]bool) bool {
		if name == BuiltinIdentifier {
			return true
		}
		if seen[name] {
			return false
		}
		seen[name] = true
		target, ok := direct[name]
		if !ok {
			return false
		}
		return resolves(target, seen)
	}
	for name := range direct {
		if resolves(name, map[string]bool{}) {
			wrappers.Add(name)
		}
	}
	return wrappers
}

// groupShortestCycles re-keys a flat shortest-cycle table by (production,
// variant) for cheap per-variant lookup while building artifacts.
func groupShortestCycles(shortest map[LRCycleKey][]PVStep) map[string]map[string]map[string][]PVStep {
	out := map[string]map[string]map[string][]PVStep{}
	for k, v := range shortest {
		byVariant, ok := out[k.Prod]
		if !ok {
			byVariant = map[string]map[string][]PVStep{}
			out[k.Prod] = byVariant
		}
		byCallee, ok := byVariant[k.Variant]
		if !ok {
			byCallee = map[string][]PVStep{}
			byVariant[k.Variant] = byCallee
		}
		byCallee[k.Callee] = v
	}
	return out
}

// mixinAnnotationNames are the two annotation spellings that name a
// comma-separated list of mixins to resolve (spec §6, "(@mixin=...)" /
// "(@trait=...)").
var mixinAnnotationNames = [...]string{"mixin", "trait"}

// resolveMixins transitively resolves every mixin named by anns'
// (@mixin=...)/(@trait=...) annotations against custom. Names that don't
// resolve (undeclared mixin) are skipped rather than erroring, since the
// customizations file is optional and its own Load already rejects unknown
// top-level keys.
func resolveMixins(anns []Annotation, custom *customizations.Customizations) []customizations.ResolvedMixin {
	if custom == nil {
		return nil
	}
	var out []customizations.ResolvedMixin
	for _, a := range anns {
		isMixinAnn := false
		for _, n := range mixinAnnotationNames {
			if a.Name == n {
				isMixinAnn = true
				break
			}
		}
		if !isMixinAnn {
			continue
		}
		for _, name := range strings.Split(a.Value, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if resolved, ok := custom.Resolve(name); ok {
				out = append(out, resolved)
			}
		}
	}
	return out
}

// BuildArtifacts walks the fully analyzed model and produces one
// ProductionArtifact per production, in chapter/declaration order, plus the
// shared literal catalogue and per-annotation tables (spec §4.8). custom
// may be nil when no customizations file was supplied.
func BuildArtifacts(m *Model, nullable map[string]bool, lr LRTable, look *LookaheadTable, shortest map[LRCycleKey][]PVStep, custom *customizations.Customizations) ([]ProductionArtifact, LiteralCatalogue, AnnotationTables) {
	tables := AnnotationTables{}
	cat := collectLiterals(m)
	cycles := groupShortestCycles(shortest)

	var out []ProductionArtifact
	for _, p := range m.Productions() {
		addAnnotationEntries(tables, p.Name, p.Annotations)

		pa := ProductionArtifact{
			Chapter:        p.Chapter,
			Name:           p.Name,
			RenderedSource: RenderedSource(p.SourceTokens),
			Lookahead:      ReportedFirst(p, look, nullable),
			IsLR:           ProductionIsLR(p, lr),
			IsLeaf:         p.isLeafProduction(),
		}
		if custom != nil {
			if nc, ok := custom.CustomNodeContent[p.Name]; ok {
				pa.CustomBody = nc.Body
				pa.CustomImports = nc.Imports
			}
		}

		for _, v := range p.Variants {
			addAnnotationEntries(tables, p.Name, v.Annotations)

			va := VariantArtifact{
				Name:        v.Name,
				PTree:       v.PTree,
				Annotations: v.Annotations,
				Mixins:      append(resolveMixins(p.Annotations, custom), resolveMixins(v.Annotations, custom)...),
			}
			if set, ok := look.Variant[p.Name][v.Name]; ok {
				va.Lookahead = set.Values()
			}
			if chain, ok := lr[p.Name][v.Name]; ok {
				va.IsLR = true
				va.LRChain = chain
				va.ShortestCycles = cycles[p.Name][v.Name]
			}
			if ann, ok := findAnnotation(v.Annotations, "delegate"); ok {
				va.Delegate = ann.Value
				va.HasDelegate = true
			}
			pa.Variants = append(pa.Variants, va)
		}

		out = append(out, pa)
	}
	return out, cat, tables
}

// EmitAll feeds every built artifact to sink, skipping any whose name
// already exists in the hand-written source tree (spec §6). grammarName
// prefixes each artifact's name, mirroring the CLI's --grammar_name key.
func EmitAll(sink ArtifactSink, grammarName string, artifacts []ProductionArtifact) error {
	for _, a := range artifacts {
		name := fmt.Sprintf("%s.%s", grammarName, a.Name)
		if sink.Exists(name) {
			continue
		}
		if err := sink.Emit(name, renderArtifactBody(a)); err != nil {
			return err
		}
	}
	return nil
}

func renderArtifactBody(a ProductionArtifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// chapter: %s\n", a.Chapter)
	fmt.Fprintf(&b, "// production: %s\n", a.Name)
	if a.IsLR {
		b.WriteString("// left-recursive\n")
	}
	if len(a.Lookahead) > 0 {
		sorted := append([]string(nil), a.Lookahead...)
		sort.Strings(sorted)
		fmt.Fprintf(&b, "// first: %s\n", strings.Join(sorted, " "))
	}
	if len(a.CustomImports) > 0 {
		sorted := append([]string(nil), a.CustomImports...)
		sort.Strings(sorted)
		fmt.Fprintf(&b, "// custom imports: %s\n", strings.Join(sorted, " "))
	}
	b.WriteString(a.RenderedSource)
	b.WriteString("\n")
	if a.CustomBody != "" {
		b.WriteString(a.CustomBody)
		b.WriteString("\n")
	}
	for _, v := range a.Variants {
		fmt.Fprintf(&b, "// variant %s", v.Name)
		if v.HasDelegate {
			fmt.Fprintf(&b, " delegate=%s", v.Delegate)
		}
		if v.IsLR {
			b.WriteString(" lr")
		}
		b.WriteString("\n")
		calleeNames := make([]string, 0, len(v.ShortestCycles))
		for callee := range v.ShortestCycles {
			calleeNames = append(calleeNames, callee)
		}
		sort.Strings(calleeNames)
		for _, callee := range calleeNames {
			fmt.Fprintf(&b, "//   shortest cycle via %s: %v\n", callee, v.ShortestCycles[callee])
		}
		for _, mx := range v.Mixins {
			fmt.Fprintf(&b, "//   mixin state=%v imports=%v\n", mx.State, mx.Imports)
		}
	}
	return b.String()
}
