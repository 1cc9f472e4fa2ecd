package grammar

import "testing"

func TestNullabilitySimpleCases(t *testing.T) {
	m := mustParse(t, `NonEmpty:
  "x"
Empty:
  []
Alt:
  "x"
  []
`)
	table := ComputeNullability(m)
	if table["NonEmpty"] {
		t.Error("NonEmpty should not be empty-matching")
	}
	if !table["Empty"] {
		t.Error("Empty should be empty-matching")
	}
	if !table["Alt"] {
		t.Error("Alt has an empty-matching variant, should be empty-matching")
	}
}

func TestNullabilityReferenceChain(t *testing.T) {
	m := mustParse(t, `A:
  B
B:
  C
C:
  []
`)
	table := ComputeNullability(m)
	if !table["A"] || !table["B"] || !table["C"] {
		t.Fatalf("expected all of A, B, C to be empty-matching: %v", table)
	}
}

func TestNullabilityMutualCycleResolvesToNonEmpty(t *testing.T) {
	m := mustParse(t, `A:
  B "x"
B:
  A "y"
`)
	table := ComputeNullability(m)
	if table["A"] || table["B"] {
		t.Errorf("a cyclic pair whose only path through the cycle requires a literal should be non-empty, got %v", table)
	}
}

func TestNullabilityBuiltinsAreNeverEmptyExceptWildcards(t *testing.T) {
	m := mustParse(t, `UsesIdent:
  Identifier
UsesWildcard:
  builtin
`)
	table := ComputeNullability(m)
	if table["UsesIdent"] {
		t.Error("a production consisting solely of Identifier should not be empty-matching")
	}
	if !table["UsesWildcard"] {
		t.Error("a production referencing the builtin wildcard should be empty-matching")
	}
}
