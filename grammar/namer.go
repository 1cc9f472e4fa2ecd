package grammar

import (
	"fmt"
	"strings"

	"github.com/gramforge/gramforge/gerr"
)

// puncNode is one node of the fixed punctuation trie used to derive
// alphanumeric mnemonics from literal string bodies (spec §4.3). Grounded
// on original_source's `_PUNC_TO_ALNUM` table.
type puncNode struct {
	name string
	has  bool
	next map[byte]*puncNode
}

var puncTrie = map[byte]*puncNode{
	'.': {name: "dot", has: true, next: map[byte]*puncNode{
		'.': {has: false, next: map[byte]*puncNode{
			'.': {name: "ellip", has: true},
		}},
	}},
	'[':  {name: "ls", has: true},
	']':  {name: "rs", has: true},
	'(':  {name: "lp", has: true},
	')':  {name: "rp", has: true},
	'{':  {name: "lc", has: true},
	'}':  {name: "rc", has: true},
	'&':  {name: "amp", has: true, next: map[byte]*puncNode{'&': {name: "amp2", has: true}}},
	'|':  {name: "pip", has: true, next: map[byte]*puncNode{'|': {name: "pip2", has: true}}},
	'<':  {name: "lt", has: true, next: map[byte]*puncNode{'<': {name: "lt2", has: true, next: map[byte]*puncNode{'<': {name: "lt3", has: true}}}}},
	'>':  {name: "gt", has: true, next: map[byte]*puncNode{'>': {name: "gt2", has: true, next: map[byte]*puncNode{'>': {name: "gt3", has: true}}}}},
	',':  {name: "com", has: true},
	'?':  {name: "qm", has: true},
	';':  {name: "sem", has: true},
	'*':  {name: "str", has: true},
	'=':  {name: "eq", has: true},
	'!':  {name: "bng", has: true},
	'@':  {name: "at", has: true},
	'/':  {name: "fwd", has: true},
	'\\': {name: "bck", has: true},
	':':  {name: "cln", has: true},
	'-':  {name: "dsh", has: true, next: map[byte]*puncNode{'>': {name: "arr", has: true}}},
	'^':  {name: "hat", has: true},
	'~':  {name: "tld", has: true},
	'%':  {name: "pct", has: true},
	'+':  {name: "pls", has: true},
	'#':  {name: "hsh", has: true},
	'"':  {name: "dq", has: true},
	'\'': {name: "sq", has: true},
	'`':  {name: "tck", has: true},
}

// toAlnum finds the longest-match alphanumeric mnemonic for s[i:], per the
// run of identifier-part characters or the punctuation trie above.
func toAlnum(s string, i int) (name string, end int, ok bool) {
	n := len(s)
	if i < n && isIdentPart(s[i]) {
		e := i + 1
		for e < n && isIdentPart(s[e]) {
			e++
		}
		return s[i:e], e, true
	}

	current := puncTrie
	for i < n && current != nil {
		nxt, exists := current[s[i]]
		if !exists {
			break
		}
		if nxt.has {
			name, end, ok = nxt.name, i+1, true
		}
		if nxt.next == nil {
			break
		}
		current = nxt.next
		i++
	}
	return name, end, ok
}

func stripNonIdent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if isIdentPart(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// synthesizeVariantName derives a base name from a variant's raw tokens
// (spec §4.3). The scan stops at the first annotation token.
func synthesizeVariantName(rawToks []Token) string {
	var parts []string
	prevWasNot := false
	for _, tok := range rawToks {
		if tok.Kind == KindAnnotation {
			break
		}
		switch tok.Kind {
		case KindQuotedString:
			body := tok.Text
			if len(body) >= 2 {
				body = body[1 : len(body)-1]
			}
			i := 0
			for i < len(body) {
				name, end, ok := toAlnum(body, i)
				if !ok {
					i++
					continue
				}
				if name != "" {
					parts = append(parts, name)
				}
				i = end
			}
			prevWasNot = false
		default:
			if tok.Text == "!" {
				if prevWasNot {
					parts[len(parts)-1] = "exp"
					prevWasNot = false
				} else {
					parts = append(parts, "not")
					prevWasNot = true
				}
				continue
			}
			cleaned := stripNonIdent(tok.Text)
			if cleaned != "" {
				parts = append(parts, cleaned)
			}
			prevWasNot = false
		}
	}

	base := collapseUnderscores(strings.Join(parts, "_"))
	base = underscoresToUpperCamel(base)
	if base == "" {
		base = "Epsilon"
	}
	return base
}

func collapseUnderscores(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '_' {
			j := i
			for j < len(s) && s[j] == '_' {
				j++
			}
			b.WriteByte('_')
			i = j
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	out := b.String()
	if out == "" {
		return out
	}
	c := out[0]
	if !isIdentStart(c) {
		out = "_" + out
	}
	return out
}

func isAsciiLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func toUpperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// underscoresToUpperCamel turns "foo_bar" into "FooBar", preserving a
// single leading underscore (used by collapseUnderscores to keep a name
// from starting with a digit) as "_Foo".
func underscoresToUpperCamel(s string) string {
	var b strings.Builder
	i, n := 0, len(s)
	if n > 0 && s[0] == '_' {
		j := 0
		for j < n && s[j] == '_' {
			j++
		}
		if j < n && isAsciiLetter(s[j]) {
			b.WriteByte('_')
			b.WriteByte(toUpperByte(s[j]))
			i = j + 1
		}
	}
	for i < n {
		if s[i] == '_' {
			j := i
			for j < n && s[j] == '_' {
				j++
			}
			if j < n && isAsciiLetter(s[j]) {
				b.WriteByte(toUpperByte(s[j]))
				i = j + 1
				continue
			}
			b.WriteString(s[i:j])
			i = j
			continue
		}
		if i == 0 && isAsciiLetter(s[i]) {
			b.WriteByte(toUpperByte(s[i]))
			i++
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// variantNamer assigns stable, unique names to the variants of a single
// production (spec §4.3).
type variantNamer struct {
	used map[string]bool
}

func newVariantNamer() *variantNamer {
	return &variantNamer{used: map[string]bool{}}
}

func (vn *variantNamer) name(rawToks []Token, anns []Annotation) (string, error) {
	if ann, ok := findAnnotation(anns, "name"); ok {
		name := ann.Value
		if vn.used[name] {
			return "", &gerr.SpecError{
				Cause:  gerr.ErrAmbiguousVariantName,
				Pos:    ann.Pos,
				Detail: name,
			}
		}
		vn.used[name] = true
		return name, nil
	}

	base := synthesizeVariantName(rawToks)
	name := base
	k := 0
	for vn.used[name] {
		k++
		name = fmt.Sprintf("%s$%d", base, k)
	}
	vn.used[name] = true
	return name, nil
}
