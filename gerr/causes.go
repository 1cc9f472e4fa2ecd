package gerr

import "errors"

// Malformed-input causes (spec.md §4.9, "Fatal" rows).
var (
	ErrTokenizationIncomplete = errors.New("tokenizer did not consume the entire input")
	ErrUnbalancedBracket      = errors.New("unbalanced bracket")
	ErrUnexpectedEOF          = errors.New("unexpected end of production body")
	ErrNegationWithoutOperand = errors.New("'!' must be followed by an operand and must not precede an annotation")
	ErrAnnotationValue        = errors.New("annotation value must not contain quotes or parentheses")
	ErrAmbiguousVariantName   = errors.New("explicit variant name collides and cannot be disambiguated")
	ErrReservedIdentifier     = errors.New("identifiers beginning with '_' are reserved")
	ErrUnknownCustomization   = errors.New("unrecognized customizations key")
)

// Semantic-contradiction causes (spec.md §4.9).
var (
	ErrNoDelegate       = errors.New("@intermediate variant has no unique delegate production")
	ErrMultipleDelegate = errors.New("@intermediate variant consumes more than one nonterminal")
)

// ErrMissingProductionName is a reported-and-continue diagnostic: tokens at
// the start of a chapter did not begin with a "Name :" production header.
var ErrMissingProductionName = errors.New("production header has no name")
