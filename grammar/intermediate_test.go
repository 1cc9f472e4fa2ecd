package grammar

import "testing"

func TestInferIntermediatesSingleReferenceIsDelegate(t *testing.T) {
	m := mustParse(t, `Expr:
  Term @intermediate
Term:
  "x"
`)
	if err := InferIntermediates(m); err != nil {
		t.Fatalf("InferIntermediates: %v", err)
	}
	v := m.Lookup("Expr").Variants[0]
	ann, ok := findAnnotation(v.Annotations, "delegate")
	if !ok || ann.Value != "Term" {
		t.Fatalf("expected (@delegate=Term), got annotations %+v", v.Annotations)
	}
	if hasAnnotation(v.Annotations, "intermediate") {
		t.Error("@intermediate should have been replaced")
	}
}

func TestInferIntermediatesWithoutAnnotationStillInfers(t *testing.T) {
	m := mustParse(t, `Expr:
  Term
`)
	if err := InferIntermediates(m); err != nil {
		t.Fatalf("InferIntermediates: %v", err)
	}
	v := m.Lookup("Expr").Variants[0]
	if ann, ok := findAnnotation(v.Annotations, "delegate"); !ok || ann.Value != "Term" {
		t.Fatalf("expected implicit delegate inference, got %+v", v.Annotations)
	}
}

func TestInferIntermediatesMultipleReferencesFails(t *testing.T) {
	m := mustParse(t, `Expr:
  Term Term @intermediate
Term:
  "x"
`)
	if err := InferIntermediates(m); err == nil {
		t.Fatal("expected an error for a variant with two consumed nonterminals")
	}
}

func TestInferIntermediatesLiteralDisqualifiesWithoutExplicitAnnotation(t *testing.T) {
	m := mustParse(t, `Expr:
  Term "+"
Term:
  "x"
`)
	if err := InferIntermediates(m); err != nil {
		t.Fatalf("InferIntermediates: %v", err)
	}
	v := m.Lookup("Expr").Variants[0]
	if hasAnnotation(v.Annotations, "delegate") {
		t.Errorf("a literal should disqualify delegate inference, got %+v", v.Annotations)
	}
}

func TestInferIntermediatesExplicitAnnotationRequiresDelegate(t *testing.T) {
	m := mustParse(t, `Expr:
  "+" @intermediate
`)
	if err := InferIntermediates(m); err == nil {
		t.Fatal("expected an error: explicit @intermediate with a pure-literal variant has no delegate")
	}
}

func TestInferIntermediatesIgnoresLiteralsWhenExplicit(t *testing.T) {
	m := mustParse(t, `Expr:
  "(" Term ")" @intermediate
Term:
  "x"
`)
	if err := InferIntermediates(m); err != nil {
		t.Fatalf("InferIntermediates: %v", err)
	}
	v := m.Lookup("Expr").Variants[0]
	if ann, ok := findAnnotation(v.Annotations, "delegate"); !ok || ann.Value != "Term" {
		t.Fatalf("expected (@delegate=Term) with literals ignored, got %+v", v.Annotations)
	}
}
