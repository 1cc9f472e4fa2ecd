package grammar

import "github.com/gramforge/gramforge/gerr"

// Kind classifies a lexed token. Punctuation tokens ("(", ")", "[", "]",
// "{", "}", ":", ".", "!", etc.) are classified as KindOther; the structural
// parser distinguishes them by comparing Token.Text directly.
type Kind int

const (
	KindWhitespace Kind = iota
	KindLineBreak
	KindComment
	KindQuotedString
	KindIdentifier
	KindAnnotation
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "whitespace"
	case KindLineBreak:
		return "line-break"
	case KindComment:
		return "comment"
	case KindQuotedString:
		return "quoted-string"
	case KindIdentifier:
		return "identifier"
	case KindAnnotation:
		return "annotation"
	default:
		return "other"
	}
}

// Token is a single lexical unit together with its originating position.
type Token struct {
	Text string
	Pos  gerr.Position
	Kind Kind
}

func (t Token) startsLine() bool {
	return t.Pos.Column == 1
}

func (t Token) is(text string) bool {
	return t.Text == text
}

func (t Token) isIdent() bool {
	return t.Kind == KindIdentifier
}

// significant reports whether a token carries structural meaning past
// tokenization; whitespace, comments, and line breaks are stripped before
// structural parsing (spec §4.1 "Significance filter").
func (t Token) significant() bool {
	switch t.Kind {
	case KindWhitespace, KindComment, KindLineBreak:
		return false
	default:
		return true
	}
}
