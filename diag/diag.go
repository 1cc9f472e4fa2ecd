// Package diag renders the verbose diagnostic dump described in spec §6
// ("-v / --verbose"): tokens, filtered tokens, the structured grammar,
// unreachable productions, the nullability set, the left-call map, LR
// witnesses, per-variant lookaheads, and the cross-chapter public API list.
package diag

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"

	"github.com/gramforge/gramforge/grammar"
)

// Dump prints the full verbose diagnostic report for a compiled grammar.
func Dump(res *grammar.Result) {
	pterm.DefaultSection.Println("Tokens")
	pterm.Info.Printfln("%d raw tokens, %d significant", len(res.Tokens), len(res.Significant))
	for _, t := range res.Tokens {
		pterm.Printfln("%v\t%v\t%q", t.Pos, t.Kind, t.Text)
	}

	pterm.DefaultSection.Println("Filtered tokens")
	for _, t := range res.Significant {
		pterm.Printfln("%v\t%v\t%q", t.Pos, t.Kind, t.Text)
	}

	pterm.DefaultSection.Println("Structured grammar")
	dumpChapters(res.Model)

	pterm.DefaultSection.Println("Unreachable productions")
	if len(res.Diagnostics.Unreachable) == 0 {
		pterm.Info.Println("none")
	} else {
		items := make([]pterm.BulletListItem, 0, len(res.Diagnostics.Unreachable))
		for _, name := range res.Diagnostics.Unreachable {
			items = append(items, pterm.BulletListItem{Level: 0, Text: name})
		}
		pterm.DefaultBulletList.WithItems(items).Render()
	}

	pterm.DefaultSection.Println("Nullability")
	dumpNullability(res.Nullable)

	pterm.DefaultSection.Println("Left-call map")
	dumpLeftCalls(res.LeftCalls)

	pterm.DefaultSection.Println("Left recursion")
	dumpLeftRecursion(res.LeftRecursion, res.Diagnostics.LRForwarding)

	pterm.DefaultSection.Println("Shortest LR cycles")
	dumpShortestLRCycles(res.ShortestCycles)

	pterm.DefaultSection.Println("Lookahead")
	dumpLookahead(res.Model, res.Lookahead)

	pterm.DefaultSection.Println("Cross-chapter public API")
	dumpPublicAPI(res.Model)
}

func dumpChapters(m *grammar.Model) {
	var root pterm.LeveledList
	for _, ch := range m.Chapters {
		root = append(root, pterm.LeveledListItem{Level: 0, Text: ch.Name})
		for _, p := range ch.Productions {
			root = append(root, pterm.LeveledListItem{Level: 1, Text: p.Name})
			for _, v := range p.Variants {
				root = append(root, pterm.LeveledListItem{Level: 2, Text: v.Name})
			}
		}
	}
	tree := pterm.NewTreeFromLeveledList(root)
	pterm.DefaultTree.WithRoot(tree).Render()
}

func dumpNullability(nullable map[string]bool) {
	names := make([]string, 0, len(nullable))
	for name := range nullable {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := [][]string{{"production", "empty-matching"}}
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprintf("%v", nullable[name])})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func dumpLeftCalls(table grammar.LeftCallTable) {
	prods := make([]string, 0, len(table))
	for name := range table {
		prods = append(prods, name)
	}
	sort.Strings(prods)

	for _, p := range prods {
		variants := table[p]
		vnames := make([]string, 0, len(variants))
		for v := range variants {
			vnames = append(vnames, v)
		}
		sort.Strings(vnames)
		for _, v := range vnames {
			if len(variants[v]) == 0 {
				continue
			}
			pterm.Info.Printfln("%s/%s -> %v", p, v, variants[v])
			if len(variants[v]) >= 2 {
				pterm.Warning.Printfln("%s/%s has multiple left calls in one variant", p, v)
			}
		}
	}
}

func dumpLeftRecursion(lr grammar.LRTable, forwarding []string) {
	prods := make([]string, 0, len(lr))
	for name := range lr {
		prods = append(prods, name)
	}
	sort.Strings(prods)

	for _, p := range prods {
		variants := lr[p]
		vnames := make([]string, 0, len(variants))
		for v := range variants {
			vnames = append(vnames, v)
		}
		sort.Strings(vnames)
		for _, v := range vnames {
			pterm.Warning.Printfln("%s/%s is left-recursive: %v", p, v, variants[v])
		}
	}

	if len(forwarding) > 0 {
		pterm.Info.Printfln("LR-forwarding productions (isLR cleared on emission): %v", forwarding)
	}
}

func dumpShortestLRCycles(shortest map[grammar.LRCycleKey][]grammar.PVStep) {
	if len(shortest) == 0 {
		pterm.Info.Println("none")
		return
	}
	keys := make([]grammar.LRCycleKey, 0, len(shortest))
	for k := range shortest {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Prod != keys[j].Prod {
			return keys[i].Prod < keys[j].Prod
		}
		if keys[i].Variant != keys[j].Variant {
			return keys[i].Variant < keys[j].Variant
		}
		return keys[i].Callee < keys[j].Callee
	})
	for _, k := range keys {
		pterm.Info.Printfln("%s/%s via %s: %v", k.Prod, k.Variant, k.Callee, shortest[k])
	}
}

func dumpLookahead(m *grammar.Model, table *grammar.LookaheadTable) {
	rows := [][]string{{"production", "first"}}
	for _, p := range m.Productions() {
		if s, ok := table.Production[p.Name]; ok {
			rows = append(rows, []string{p.Name, fmt.Sprintf("%v", s.Values())})
		}
		for _, v := range p.Variants {
			if s, ok := table.Variant[p.Name][v.Name]; ok {
				rows = append(rows, []string{p.Name + "/" + v.Name, fmt.Sprintf("%v", s.Values())})
			}
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func dumpPublicAPI(m *grammar.Model) {
	items := make([]pterm.BulletListItem, 0)
	for _, ch := range m.Chapters {
		for _, p := range ch.Productions {
			if p.IsToplevel() {
				items = append(items, pterm.BulletListItem{Level: 0, Text: fmt.Sprintf("%s.%s", ch.Name, p.Name)})
			}
		}
	}
	if len(items) == 0 {
		pterm.Info.Println("none")
		return
	}
	pterm.DefaultBulletList.WithItems(items).Render()
}
