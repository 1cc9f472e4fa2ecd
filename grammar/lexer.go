package grammar

import (
	"strings"
	"unicode/utf8"

	"github.com/gramforge/gramforge/gerr"
)

// Lex tokenizes grammar text into an ordered sequence of tokens, in the
// priority order of spec §4.1: line comment, block comment, whitespace run,
// line break run, quoted string, word, annotation-with-value, valueless
// annotation, then a single other character. Each matcher below reports how
// many bytes of the remaining input it claims; the longest claim wins, ties
// broken by priority order (the order the matchers are tried in).
//
// Lex never fails to make progress, so the sum of returned token lengths
// equals len(text); Lex still checks that invariant after scanning and
// returns ErrTokenizationIncomplete if it does not hold.
func Lex(text string) ([]Token, error) {
	var toks []Token
	line, col, offset := 1, 1, 0
	rest := text
	for len(rest) > 0 {
		n, kind := lexOne(rest)
		tokText := rest[:n]
		toks = append(toks, Token{
			Text: tokText,
			Pos:  gerr.Position{Line: line, Column: col, Offset: offset},
			Kind: kind,
		})
		line, col = advancePosition(line, col, tokText)
		offset += n
		rest = rest[n:]
	}

	total := 0
	for _, t := range toks {
		total += len(t.Text)
	}
	if total != len(text) {
		return nil, &gerr.SpecError{Cause: gerr.ErrTokenizationIncomplete}
	}

	return toks, nil
}

// advancePosition walks tokText rune-by-rune, treating "\r\n" as a single
// line terminator, to compute the line/column following it.
func advancePosition(line, col int, tokText string) (int, int) {
	i := 0
	for i < len(tokText) {
		r, size := utf8.DecodeRuneInString(tokText[i:])
		switch r {
		case '\r':
			if i+size < len(tokText) && tokText[i+size] == '\n' {
				size++
			}
			line++
			col = 1
		case '\n':
			line++
			col = 1
		default:
			col++
		}
		i += size
	}
	return line, col
}

func lexOne(s string) (int, Kind) {
	type candidate struct {
		n    int
		kind Kind
	}
	matchers := []func(string) int{
		lexLineComment,
		lexBlockComment,
		lexWhitespace,
		lexLineBreak,
		lexQuotedString,
		lexWord,
		lexAnnotationValue,
		lexAnnotationBare,
	}
	kinds := []Kind{
		KindComment,
		KindComment,
		KindWhitespace,
		KindLineBreak,
		KindQuotedString,
		KindIdentifier,
		KindAnnotation,
		KindAnnotation,
	}

	var best candidate
	for i, m := range matchers {
		n := m(s)
		if n > best.n {
			best = candidate{n: n, kind: kinds[i]}
		}
	}
	if best.n > 0 {
		return best.n, best.kind
	}

	// Any single other character, including bracket/punctuation runes.
	_, size := utf8.DecodeRuneInString(s)
	return size, KindOther
}

func lexLineComment(s string) int {
	if !strings.HasPrefix(s, "//") {
		return 0
	}
	i := strings.IndexAny(s, "\r\n")
	if i < 0 {
		return len(s)
	}
	return i
}

func lexBlockComment(s string) int {
	if !strings.HasPrefix(s, "/*") {
		return 0
	}
	if i := strings.Index(s[2:], "*/"); i >= 0 {
		return 2 + i + 2
	}
	return len(s)
}

func lexWhitespace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func lexLineBreak(s string) int {
	i := 0
	for i < len(s) && (s[i] == '\r' || s[i] == '\n') {
		i++
	}
	return i
}

func lexQuotedString(s string) int {
	if len(s) == 0 || s[0] != '"' {
		return 0
	}
	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				i += 2
				continue
			}
			return 0
		case '"':
			return i + 1
		}
		i++
	}
	return 0
}

func isIdentStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_' || b == '$'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func lexWord(s string) int {
	if len(s) == 0 || !isIdentStart(s[0]) {
		return 0
	}
	i := 1
	for i < len(s) && isIdentPart(s[i]) {
		i++
	}
	return i
}

// lexAnnotationValue matches "(@name=value)" where value contains neither
// '"' nor '(' nor ')'.
func lexAnnotationValue(s string) int {
	if !strings.HasPrefix(s, "(@") {
		return 0
	}
	i := 2
	if i >= len(s) || !isIdentStart(s[i]) {
		return 0
	}
	i++
	for i < len(s) && isIdentPart(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != '=' {
		return 0
	}
	i++
	for i < len(s) {
		switch s[i] {
		case ')':
			return i + 1
		case '"', '(':
			return 0
		}
		i++
	}
	return 0
}

// lexAnnotationBare matches a valueless "@name" annotation (no parens).
func lexAnnotationBare(s string) int {
	if len(s) == 0 || s[0] != '@' {
		return 0
	}
	i := 1
	if i >= len(s) || !isIdentStart(s[i]) {
		return 0
	}
	i++
	for i < len(s) && isIdentPart(s[i]) {
		i++
	}
	return i
}

// FilterSignificant drops whitespace/comment/line-break tokens while
// preserving the line numbers recorded on the tokens that remain.
func FilterSignificant(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.significant() {
			out = append(out, t)
		}
	}
	return out
}
