package grammar

import (
	"github.com/gramforge/gramforge/customizations"
	"github.com/gramforge/gramforge/gerr"
)

// Diagnostics carries every non-fatal observation produced while compiling
// one grammar (spec §4.9). Unreachable and LRForwarding are printed only by
// the --verbose dump; the CLI prints a one-line summary of ParseWarnings to
// stderr on every run.
type Diagnostics struct {
	ParseWarnings gerr.SpecErrors
	Unreachable   []string
	LRForwarding  []string
}

// Result is the complete output of compiling one grammar text: the pruned,
// fully analyzed model plus every analysis table an artifact sink or
// verbose dump might need.
type Result struct {
	Tokens         []Token
	Significant    []Token
	Model          *Model
	Nullable       map[string]bool
	LeftCalls      LeftCallTable
	LeftRecursion  LRTable
	ShortestCycles map[LRCycleKey][]PVStep
	Lookahead      *LookaheadTable
	Artifacts      []ProductionArtifact
	Literals       LiteralCatalogue
	Annotations    AnnotationTables
	Diagnostics    Diagnostics
}

// Compile runs the full pipeline described in spec §2: Lexer → Structural
// Parser → Grammar Model → Reachability/prune → Intermediate Inference →
// Nullability → Left-Call → Left-Recursion → Shortest-LR-Cycle → Lookahead →
// Emission. Pruning and intermediate inference mutate the model in place;
// the later analyses only read it. A fatal error aborts the pipeline and is
// returned directly. custom may be nil, meaning
// no customizations file was supplied (spec §6, "optional").
func Compile(grammarText string, custom *customizations.Customizations) (*Result, error) {
	toks, err := Lex(grammarText)
	if err != nil {
		return nil, err
	}
	sig := FilterSignificant(toks)

	m, warnings, err := Parse(sig)
	if err != nil {
		return nil, err
	}

	dropped := Prune(m)

	if err := InferIntermediates(m); err != nil {
		return nil, err
	}

	nullable := ComputeNullability(m)
	leftCalls := BuildLeftCallTable(m, nullable)
	lr := DetectLeftRecursion(m, leftCalls)
	shortestCycles := ComputeShortestLRCycles(m, leftCalls, lr)
	lookahead := ComputeLookahead(m)

	var forwarding []string
	for _, p := range m.Productions() {
		if isLRForwarding(p, lr) {
			forwarding = append(forwarding, p.Name)
		}
	}

	artifacts, literals, annTables := BuildArtifacts(m, nullable, lr, lookahead, shortestCycles, custom)

	return &Result{
		Tokens:         toks,
		Significant:    sig,
		Model:          m,
		Nullable:       nullable,
		LeftCalls:      leftCalls,
		LeftRecursion:  lr,
		ShortestCycles: shortestCycles,
		Lookahead:      lookahead,
		Artifacts:      artifacts,
		Literals:       literals,
		Annotations:    annTables,
		Diagnostics: Diagnostics{
			ParseWarnings: warnings,
			Unreachable:   dropped,
			LRForwarding:  forwarding,
		},
	}, nil
}
