package grammar

import "testing"

func TestRenderedSourceEscapesCommentTerminator(t *testing.T) {
	toks := []Token{
		{Text: "Expr", Kind: KindIdentifier},
	}
	got := RenderedSource(toks)
	if got != "Expr" {
		t.Fatalf("RenderedSource = %q, want %q", got, "Expr")
	}

	got = RenderedSource([]Token{{Text: `"*/"`, Kind: KindQuotedString}})
	if want := `"*\/"`; got != want {
		t.Fatalf("RenderedSource = %q, want %q", got, want)
	}
}

func TestLiteralCatalogueSeparatesKeywordsFromPunctuation(t *testing.T) {
	m := mustParse(t, `Kw:
  "return"
Op:
  "+"
`)
	cat := collectLiterals(m)
	if len(cat.Keywords) != 1 || cat.Keywords[0] != "return" {
		t.Fatalf("Keywords = %v, want [return]", cat.Keywords)
	}
	if len(cat.Punctuation) != 1 || cat.Punctuation[0] != "+" {
		t.Fatalf("Punctuation = %v, want [+]", cat.Punctuation)
	}
}

func TestLiteralCatalogueExcludesNonstandardProductions(t *testing.T) {
	m := mustParse(t, `Standard:
  "x"
Extension: @nonstandard
  "y"
`)
	cat := collectLiterals(m)
	for _, lit := range append(append([]string{}, cat.Keywords...), cat.Punctuation...) {
		if lit == "y" {
			t.Fatal("a @nonstandard production's literals should be excluded from the catalogue")
		}
	}
}

func TestIdentifierWrapperProductionsTransitiveClosure(t *testing.T) {
	m := mustParse(t, `Name:
  Identifier
Label:
  Name
`)
	wrappers := IdentifierWrapperProductions(m)
	if !wrappers.Contains("Name") {
		t.Error("Name should be an identifier-wrapper production")
	}
	if !wrappers.Contains("Label") {
		t.Error("Label should be transitively identified as an identifier-wrapper production")
	}
}

func TestBuildArtifactsProducesOnePerProduction(t *testing.T) {
	m := mustParse(t, `A: @toplevel
  "x"
`)
	nullable := ComputeNullability(m)
	calls := BuildLeftCallTable(m, nullable)
	lr := DetectLeftRecursion(m, calls)
	shortest := ComputeShortestLRCycles(m, calls, lr)
	look := ComputeLookahead(m)

	artifacts, _, _ := BuildArtifacts(m, nullable, lr, look, shortest, nil)
	if len(artifacts) != 1 || artifacts[0].Name != "A" {
		t.Fatalf("artifacts = %+v, want a single artifact named A", artifacts)
	}
}
