package diag

import (
	"testing"

	"github.com/gramforge/gramforge/grammar"
)

// Dump talks directly to the terminal via pterm; this test only guards
// against a panic walking a minimal but representative compiled result.
func TestDumpDoesNotPanic(t *testing.T) {
	res, err := grammar.Compile("(chapter = Expr)\nExpr:\n  \"x\"\n", nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	Dump(res)
}
