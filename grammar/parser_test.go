package grammar

import "testing"

func mustParse(t *testing.T, src string) *Model {
	t.Helper()
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	m, warnings, err := Parse(FilterSignificant(toks))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if warnings.HasErrors() {
		t.Fatalf("Parse produced warnings: %v", warnings)
	}
	return m
}

func TestParseChaptersAndProductions(t *testing.T) {
	src := `(chapter = Lit)
String:
  "\"" "\""
(chapter = Expr)
Expr: @toplevel
  Term "+" Term
  Term
`
	m := mustParse(t, src)
	if len(m.Chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(m.Chapters))
	}
	if m.Chapters[0].Name != "Lit" || m.Chapters[1].Name != "Expr" {
		t.Fatalf("unexpected chapter names: %v, %v", m.Chapters[0].Name, m.Chapters[1].Name)
	}

	expr := m.Lookup("Expr")
	if expr == nil {
		t.Fatal("Expr production not found")
	}
	if !expr.IsToplevel() {
		t.Error("Expr should be marked @toplevel")
	}
	if len(expr.Variants) != 2 {
		t.Fatalf("got %d variants, want 2", len(expr.Variants))
	}
}

func TestParseUnnamedChapterIsUnknown(t *testing.T) {
	m := mustParse(t, "Expr:\n  \"x\"\n")
	if len(m.Chapters) != 1 || m.Chapters[0].Name != "Unknown" {
		t.Fatalf("expected a single Unknown chapter, got %+v", m.Chapters)
	}
}

func TestParseBracketNesting(t *testing.T) {
	m := mustParse(t, "Expr:\n  (Term {\",\" Term} [\"!\" Ident])\n")
	p := m.Lookup("Expr")
	v := p.Variants[0]
	if len(v.PTree) != 1 || v.PTree[0].Kind != PTSequence {
		t.Fatalf("expected single top-level SEQUENCE, got %+v", v.PTree)
	}
	seq := v.PTree[0].Children
	if len(seq) != 3 {
		t.Fatalf("got %d children, want 3", len(seq))
	}
	if seq[0].Kind != PTReference || seq[0].Text != "Term" {
		t.Errorf("first child = %+v", seq[0])
	}
	if seq[1].Kind != PTRepeated {
		t.Errorf("second child kind = %v, want REPEATED", seq[1].Kind)
	}
	if seq[2].Kind != PTOptional {
		t.Errorf("third child kind = %v, want OPTIONAL", seq[2].Kind)
	}
}

func TestParseNegativeLookahead(t *testing.T) {
	m := mustParse(t, "Expr:\n  !\"x\" Ident\n")
	v := m.Lookup("Expr").Variants[0]
	if v.PTree[0].Kind != PTNegativeLookahead {
		t.Fatalf("first node kind = %v, want NEGATIVE_LOOKAHEAD", v.PTree[0].Kind)
	}
	if v.PTree[1].Kind != PTReference {
		t.Fatalf("second node kind = %v, want REFERENCE", v.PTree[1].Kind)
	}
}

func TestParseExplicitVariantName(t *testing.T) {
	m := mustParse(t, "Expr:\n  \"x\" (@name=XLiteral)\n  \"y\"\n")
	p := m.Lookup("Expr")
	if p.Variants[0].Name != "XLiteral" {
		t.Errorf("variant name = %q, want XLiteral", p.Variants[0].Name)
	}
	if p.Variants[1].Name == "" {
		t.Error("second variant should have a synthesized name")
	}
}

func TestParseUnbalancedBracketIsFatal(t *testing.T) {
	toks, err := Lex("Expr:\n  (Term\n")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	_, _, err = Parse(FilterSignificant(toks))
	if err == nil {
		t.Fatal("expected a fatal error for an unterminated bracket")
	}
}

func TestParseMissingProductionNameWarns(t *testing.T) {
	toks, err := Lex("(chapter = C)\n\"x\"\n")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	_, warnings, err := Parse(FilterSignificant(toks))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !warnings.HasErrors() {
		t.Fatal("expected a missing-production-name warning")
	}
}

func TestParseReservedIdentifierIsFatal(t *testing.T) {
	toks, err := Lex("_Hidden:\n  \"x\"\n")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	_, _, err = Parse(FilterSignificant(toks))
	if err == nil {
		t.Fatal("expected a fatal error for a reserved '_'-prefixed production name")
	}
}
