package grammar

import (
	"strings"

	"github.com/gramforge/gramforge/gerr"
)

// splitAt groups toks into items delimited by splitter, following the
// incremental probing algorithm of original_source's split_at: splitter is
// tried at every candidate boundary i in [1, len(toks)], and whenever it
// fires, [start, i) is closed off as one item and start advances to i. The
// final call probes [start, len(toks)).
func splitAt[T any](toks []Token, splitter func(toks []Token, s, e int) (T, bool)) []T {
	start := 0
	var items []T
	n := len(toks)
	for i := 1; i < n; i++ {
		if item, ok := splitter(toks, start, i); ok {
			items = append(items, item)
			start = i
		}
	}
	if item, ok := splitter(toks, start, n); ok {
		items = append(items, item)
	}
	return items
}

type rawChapter struct {
	name string
	toks []Token
}

func getChapterName(toks []Token, i int) (string, bool) {
	if i+4 < len(toks) &&
		toks[i].startsLine() && toks[i].is("(") &&
		toks[i+1].is("chapter") &&
		toks[i+2].is("=") &&
		toks[i+3].isIdent() &&
		toks[i+4].is(")") {
		return toks[i+3].Text, true
	}
	return "", false
}

func maybeMakeChapter(toks []Token, s, e int) (rawChapter, bool) {
	if e <= s {
		return rawChapter{}, false
	}
	if e != len(toks) {
		if _, ok := getChapterName(toks, e); !ok {
			return rawChapter{}, false
		}
	}
	name, explicit := getChapterName(toks, s)
	sub := toks[s:e]
	if explicit {
		sub = toks[s+5 : e]
	} else {
		name = "Unknown"
	}
	return rawChapter{name: name, toks: sub}, true
}

type rawProduction struct {
	name     string
	headTok  Token
	toks     []Token
	hadName  bool
}

func getProdName(toks []Token, i int) (Token, bool) {
	if i+1 < len(toks) && toks[i].startsLine() && toks[i].isIdent() && toks[i+1].is(":") {
		return toks[i], true
	}
	return Token{}, false
}

func maybeMakeProd(toks []Token, s, e int) (rawProduction, bool) {
	if e <= s {
		return rawProduction{}, false
	}
	if e != len(toks) {
		if _, ok := getProdName(toks, e); !ok {
			return rawProduction{}, false
		}
	}
	head, explicit := getProdName(toks, s)
	sub := toks[s:e]
	if explicit {
		sub = toks[s+2 : e]
	}
	return rawProduction{name: head.Text, headTok: head, toks: sub, hadName: explicit}, true
}

func maybeMakeVariant(toks []Token, s, e int) ([]Token, bool) {
	if e == len(toks) || toks[s].Pos.Line != toks[e].Pos.Line {
		return toks[s:e], true
	}
	return nil, false
}

// Parse runs the structural parser (spec §4.2) over a significant token
// stream, producing the unpruned Grammar Model. Non-fatal diagnostics (e.g.
// a production header with no name) are returned alongside a successfully
// built model; a fatal error aborts the build entirely.
func Parse(toks []Token) (*Model, gerr.SpecErrors, error) {
	m := newModel()
	var warnings gerr.SpecErrors

	rawChapters := splitAt(toks, maybeMakeChapter)
	for _, rc := range rawChapters {
		if strings.HasPrefix(rc.name, "_") {
			return nil, nil, &gerr.SpecError{Cause: gerr.ErrReservedIdentifier, Detail: rc.name}
		}
		ch := &Chapter{Name: rc.name}
		m.Chapters = append(m.Chapters, ch)

		rawProds := splitAt(rc.toks, maybeMakeProd)
		for _, rp := range rawProds {
			if !rp.hadName {
				warnings = append(warnings, &gerr.SpecError{
					Cause: gerr.ErrMissingProductionName,
				})
				rp.name = "Unknown"
			} else if strings.HasPrefix(rp.name, "_") {
				return nil, nil, &gerr.SpecError{
					Cause: gerr.ErrReservedIdentifier,
					Pos:   rp.headTok.Pos,
					Detail: rp.name,
				}
			}

			headerAnns, body := splitHeaderAnnotations(rp.toks, rp.headTok.Pos.Line, rp.hadName)

			p := &Production{
				Name:         rp.name,
				SourceTokens: body,
				Annotations:  headerAnns,
				Chapter:      ch.Name,
			}

			namer := newVariantNamer()
			rawVariants := splitAt(body, maybeMakeVariant)
			for _, vtoks := range rawVariants {
				ptlist, anns, err := parseRHS(vtoks)
				if err != nil {
					return nil, nil, err
				}
				name, err := namer.name(vtoks, anns)
				if err != nil {
					return nil, nil, err
				}
				p.Variants = append(p.Variants, &Variant{
					Name:        name,
					PTree:       ptlist,
					Annotations: anns,
				})
			}

			ch.Productions = append(ch.Productions, p)
			m.addProduction(ch.Name, p)
		}
	}

	return m, warnings, nil
}

// splitHeaderAnnotations peels off the leading annotation tokens on the
// production header's own line (spec §4.2 item 2); the remainder is the
// production body passed on to variant splitting.
func splitHeaderAnnotations(body []Token, headerLine int, hadHeader bool) ([]Annotation, []Token) {
	if !hadHeader {
		return nil, body
	}
	var anns []Annotation
	i := 0
	for i < len(body) && body[i].Pos.Line == headerLine && body[i].Kind == KindAnnotation {
		anns = append(anns, parseAnnotationToken(body[i]))
		i++
	}
	return anns, body[i:]
}

func parseAnnotationToken(tok Token) Annotation {
	text := tok.Text
	if strings.HasPrefix(text, "(@") {
		inner := text[2 : len(text)-1]
		eq := strings.IndexByte(inner, '=')
		return Annotation{Name: inner[:eq], Value: inner[eq+1:], HasValue: true, Pos: tok.Pos}
	}
	return Annotation{Name: text[1:], Pos: tok.Pos}
}

// parseRHS parses a variant's right-hand side into its parse-tree template
// list plus trailing variant annotations (spec §4.2 item 3, §3).
func parseRHS(toks []Token) ([]*PT, []Annotation, error) {
	var ptlist []*PT
	i, n := 0, len(toks)
	for i < n {
		if toks[i].Kind == KindAnnotation {
			break
		}
		node, j, err := makeNode(toks, i)
		if err != nil {
			return nil, nil, err
		}
		ptlist = append(ptlist, node)
		i = j
	}

	var anns []Annotation
	for i < n {
		if toks[i].Kind == KindAnnotation {
			anns = append(anns, parseAnnotationToken(toks[i]))
		}
		i++
	}
	return ptlist, anns, nil
}

var bracketClose = map[string]string{"(": ")", "{": "}", "[": "]"}
var bracketKind = map[string]PTKind{"(": PTSequence, "{": PTRepeated, "[": PTOptional}

func isCloseBracket(text string) bool {
	return text == ")" || text == "}" || text == "]"
}

func makeNode(toks []Token, i int) (*PT, int, error) {
	n := len(toks)
	tok := toks[i]

	switch tok.Kind {
	case KindQuotedString:
		return litPT(tok), i + 1, nil
	case KindIdentifier:
		return refPT(tok), i + 1, nil
	}

	if tok.Text == "!" {
		if i+1 >= n || toks[i+1].Kind == KindAnnotation {
			return nil, 0, &gerr.SpecError{Cause: gerr.ErrNegationWithoutOperand, Pos: tok.Pos}
		}
		child, j, err := makeNode(toks, i+1)
		if err != nil {
			return nil, 0, err
		}
		return wrap(PTNegativeLookahead, seqPT([]*PT{child})), j, nil
	}

	if closeText, ok := bracketClose[tok.Text]; ok {
		kind := bracketKind[tok.Text]
		var children []*PT
		j := i + 1
		for {
			if j >= n {
				return nil, 0, &gerr.SpecError{Cause: gerr.ErrUnexpectedEOF, Pos: tok.Pos}
			}
			if toks[j].Text == closeText {
				return &PT{Kind: kind, Children: children}, j + 1, nil
			}
			if isCloseBracket(toks[j].Text) {
				return nil, 0, &gerr.SpecError{Cause: gerr.ErrUnbalancedBracket, Pos: toks[j].Pos}
			}
			child, k, err := makeNode(toks, j)
			if err != nil {
				return nil, 0, err
			}
			children = append(children, child)
			j = k
		}
	}

	return nil, 0, &gerr.SpecError{Cause: gerr.ErrUnbalancedBracket, Pos: tok.Pos, Detail: tok.Text}
}
