package grammar

import "github.com/gramforge/gramforge/gerr"

// PTKind tags the recursive algebraic shape of a parse-tree template node
// (spec §3, "ParseTree (PT) node").
type PTKind int

const (
	PTSequence PTKind = iota
	PTRepeated
	PTOptional
	PTNegativeLookahead
	PTLiteral
	PTReference
)

func (k PTKind) String() string {
	switch k {
	case PTSequence:
		return "SEQUENCE"
	case PTRepeated:
		return "REPEATED"
	case PTOptional:
		return "OPTIONAL"
	case PTNegativeLookahead:
		return "NEGATIVE_LOOKAHEAD"
	case PTLiteral:
		return "LITERAL"
	case PTReference:
		return "REFERENCE"
	default:
		return "UNKNOWN"
	}
}

// PT is a parse-tree template node. Leaf nodes (LITERAL, REFERENCE) carry
// Text and Pos; internal nodes (SEQUENCE, REPEATED, OPTIONAL,
// NEGATIVE_LOOKAHEAD) carry Children.
type PT struct {
	Kind     PTKind
	Text     string
	Pos      gerr.Position
	Children []*PT
}

func litPT(tok Token) *PT {
	// Strip surrounding quotes; the token text is `"..."`.
	body := tok.Text
	if len(body) >= 2 {
		body = body[1 : len(body)-1]
	}
	return &PT{Kind: PTLiteral, Text: body, Pos: tok.Pos}
}

func refPT(tok Token) *PT {
	return &PT{Kind: PTReference, Text: tok.Text, Pos: tok.Pos}
}

func seqPT(children []*PT) *PT {
	return &PT{Kind: PTSequence, Children: children}
}

func wrap(kind PTKind, child *PT) *PT {
	return &PT{Kind: kind, Children: []*PT{child}}
}
