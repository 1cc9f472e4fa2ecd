package grammar

import "testing"

func TestLeftCallsStopsAtFirstNonNullableReference(t *testing.T) {
	m := mustParse(t, `A:
  B C
B:
  []
C:
  "x"
`)
	nullable := ComputeNullability(m)
	calls := BuildLeftCallTable(m, nullable)
	got := calls["A"]["A"]
	if len(got) == 0 {
		got = calls["A"][m.Lookup("A").Variants[0].Name]
	}
	want := []string{"B", "C"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("left calls = %v, want %v", got, want)
	}
}

func TestLeftCallsStopsAtLiteral(t *testing.T) {
	m := mustParse(t, `A:
  "x" B
`)
	nullable := ComputeNullability(m)
	calls := BuildLeftCallTable(m, nullable)
	v := m.Lookup("A").Variants[0].Name
	got := calls["A"][v]
	if len(got) != 0 {
		t.Fatalf("left calls = %v, want none (literal should stop the scan immediately)", got)
	}
}

func TestLeftCallsDoesNotStopAtOptional(t *testing.T) {
	m := mustParse(t, `A:
  [B] C
B:
  "b"
C:
  "c"
`)
	nullable := ComputeNullability(m)
	calls := BuildLeftCallTable(m, nullable)
	v := m.Lookup("A").Variants[0].Name
	got := calls["A"][v]
	want := []string{"B", "C"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("left calls = %v, want %v", got, want)
	}
}

func TestDirectLeftRecursionDetected(t *testing.T) {
	m := mustParse(t, `Expr:
  Expr "+" Term
  Term
Term:
  "x"
`)
	nullable := ComputeNullability(m)
	calls := BuildLeftCallTable(m, nullable)
	lr := DetectLeftRecursion(m, calls)

	exprVariants := m.Lookup("Expr").Variants
	if _, ok := lr["Expr"][exprVariants[0].Name]; !ok {
		t.Fatal("first Expr variant should be left-recursive")
	}
	if _, ok := lr["Expr"][exprVariants[1].Name]; ok {
		t.Fatal("second Expr variant (Term) should not be left-recursive")
	}
}

func TestIndirectLeftRecursionDetected(t *testing.T) {
	m := mustParse(t, `A:
  B "x"
B:
  A "y"
  "z"
`)
	nullable := ComputeNullability(m)
	calls := BuildLeftCallTable(m, nullable)
	lr := DetectLeftRecursion(m, calls)

	aVariant := m.Lookup("A").Variants[0].Name
	chain, ok := lr["A"][aVariant]
	if !ok {
		t.Fatal("A's only variant should be left-recursive via B")
	}
	if chain[0].Prod != "A" {
		t.Errorf("chain should start at A, got %+v", chain)
	}
}

func TestShortestLRCycleReturnsPathBackToStart(t *testing.T) {
	m := mustParse(t, `A:
  B "x"
B:
  A "y"
  "z"
`)
	nullable := ComputeNullability(m)
	calls := BuildLeftCallTable(m, nullable)

	steps := ShortestLRCycle("B", "A", m, calls)
	if len(steps) != 1 || steps[0].Prod != "B" {
		t.Fatalf("steps = %+v, want a single hop through B", steps)
	}
}

func TestComputeShortestLRCyclesKeyedByCallee(t *testing.T) {
	m := mustParse(t, `A:
  B "x"
B:
  A "y"
  "z"
`)
	nullable := ComputeNullability(m)
	calls := BuildLeftCallTable(m, nullable)
	lr := DetectLeftRecursion(m, calls)

	shortest := ComputeShortestLRCycles(m, calls, lr)
	aVariant := m.Lookup("A").Variants[0].Name
	steps, ok := shortest[LRCycleKey{Prod: "A", Variant: aVariant, Callee: "B"}]
	if !ok {
		t.Fatalf("shortest cycle table missing entry for A/%s via B: %v", aVariant, shortest)
	}
	if len(steps) != 1 || steps[0].Prod != "B" {
		t.Fatalf("steps = %+v, want a single hop through B", steps)
	}
}

func TestLRForwardingClearsIsLRFlag(t *testing.T) {
	m := mustParse(t, `A:
  A
B:
  B "x"
  "y"
`)
	nullable := ComputeNullability(m)
	calls := BuildLeftCallTable(m, nullable)
	lr := DetectLeftRecursion(m, calls)

	if ProductionIsLR(m.Lookup("A"), lr) {
		t.Error("A only forwards into an LR production and should not report isLR")
	}
	if !ProductionIsLR(m.Lookup("B"), lr) {
		t.Error("B should report isLR")
	}
}
