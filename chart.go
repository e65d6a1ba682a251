package chartparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// TraceKey is the schuko tracing key the parser traces under.
const TraceKey = "chartparse"

// tracer traces with key 'chartparse'.
func tracer() tracing.Trace {
	return tracing.Select(TraceKey)
}

// DefaultMaxDerivations is the derivation budget of parsers made by NewParser.
const DefaultMaxDerivations = 100000

// Parser enumerates every derivation of a token sequence under a Grammar.
// A Parser holds no per-call state; one value may serve concurrent calls.
type Parser struct {
	grammar *Grammar

	// MaxDerivations bounds the number of derivations a single Parse may
	// store in its chart. Zero means unbounded.
	MaxDerivations int
}

// NewParser returns a parser for g with the default derivation budget.
func NewParser(g *Grammar) *Parser {
	return &Parser{grammar: g, MaxDerivations: DefaultMaxDerivations}
}

// Grammar returns the grammar the parser was built with.
func (p *Parser) Grammar() *Grammar {
	return p.grammar
}

// Parse is shorthand for NewParser(g).Parse(tokens).
func Parse(g *Grammar, tokens []string) ([]*Tree, error) {
	return NewParser(g).Parse(tokens)
}

// Parse returns one tree per distinct derivation of tokens from the start
// symbol. The order is deterministic: rules are tried in declaration order,
// spans bottom-up. An ungrammatical sentence yields no trees and no error.
// An empty token sequence yields a *ParseError wrapping ErrNoTokens.
func (p *Parser) Parse(tokens []string) ([]*Tree, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Msg: "empty token sequence", err: ErrNoTokens}
	}
	g := p.grammar
	n := len(tokens)
	c := newChart(tokens, p.MaxDerivations)

	for w := 1; w <= n; w++ {
		for start := 0; start+w <= n; start++ {
			end := start + w
			if w == 1 {
				if err := c.seed(g, start); err != nil {
					return nil, err
				}
			}
			for _, r := range g.phrasal {
				if len(r.RHS) > w {
					continue
				}
				if err := c.combine(r, start, end); err != nil {
					return nil, err
				}
			}
			if err := c.closeUnits(g, start, end); err != nil {
				return nil, err
			}
		}
	}

	found := c.at(0, n).entries[g.start.Name]
	trees := make([]*Tree, len(found))
	for i, t := range found {
		trees[i] = t.clone()
	}
	tracer().Infof("parsed %d tokens: %d derivations in chart, %d complete", n, c.count, len(trees))
	return trees, nil
}

// cell holds the completed derivations for one span, grouped by label.
type cell struct {
	entries map[string][]*Tree
	seen    map[string]bool
}

// chart is the per-call table of completed derivations indexed by span.
// Trees inside the chart share substructure; Parse clones what it returns.
type chart struct {
	tokens []string
	cells  [][]*cell // cells[start][end-start-1]
	count  int
	limit  int
}

func newChart(tokens []string, limit int) *chart {
	n := len(tokens)
	c := &chart{tokens: tokens, cells: make([][]*cell, n), limit: limit}
	for start := range c.cells {
		c.cells[start] = make([]*cell, n-start)
	}
	return c
}

// at returns the cell for [start, end), creating it on first use.
func (c *chart) at(start, end int) *cell {
	cl := c.cells[start][end-start-1]
	if cl == nil {
		cl = &cell{entries: make(map[string][]*Tree), seen: make(map[string]bool)}
		c.cells[start][end-start-1] = cl
	}
	return cl
}

// add stores t over [start, end) unless a structurally equal tree with the
// same label is already there.
func (c *chart) add(start, end int, t *Tree) (bool, error) {
	cl := c.at(start, end)
	key := t.key()
	if cl.seen[key] {
		return false, nil
	}
	if c.limit > 0 && c.count >= c.limit {
		return false, fmt.Errorf("%w: more than %d derivations", ErrBudgetExceeded, c.limit)
	}
	cl.seen[key] = true
	cl.entries[t.label] = append(cl.entries[t.label], t)
	c.count++
	tracer().Debugf("[%d,%d) %v", start, end, t)
	return true, nil
}

// seed adds a preterminal tree for every lexical rule matching tokens[i].
func (c *chart) seed(g *Grammar, i int) error {
	word := c.tokens[i]
	for _, r := range g.lexical[word] {
		if _, err := c.add(i, i+1, NewTree(r.LHS.Name, Leaf(word))); err != nil {
			return err
		}
	}
	return nil
}

// combine adds a tree for every partition of [start, end) into len(r.RHS)
// non-empty sub-spans realised by the rule's symbols.
func (c *chart) combine(r *Rule, start, end int) error {
	kids := make([]Node, 0, len(r.RHS))
	var extend func(i, pos int) error
	extend = func(i, pos int) error {
		rest := len(r.RHS) - i - 1
		lo, hi := pos+1, end-rest
		if rest == 0 {
			lo = end
		}
		for split := lo; split <= hi; split++ {
			for _, child := range c.realize(r.RHS[i], pos, split) {
				kids = append(kids, child)
				var err error
				if rest == 0 {
					_, err = c.add(start, end, NewTree(r.LHS.Name, append([]Node(nil), kids...)...))
				} else {
					err = extend(i+1, split)
				}
				kids = kids[:len(kids)-1]
				if err != nil {
					return err
				}
			}
		}
		return nil
	}
	return extend(0, start)
}

// realize lists the nodes that can stand for sym over [start, end).
func (c *chart) realize(sym Symbol, start, end int) []Node {
	if sym.Terminal {
		if end-start == 1 && c.tokens[start] == sym.Name {
			return []Node{Leaf(sym.Name)}
		}
		return nil
	}
	cl := c.cells[start][end-start-1]
	if cl == nil {
		return nil
	}
	found := cl.entries[sym.Name]
	nodes := make([]Node, len(found))
	for i, t := range found {
		nodes[i] = t
	}
	return nodes
}

// closeUnits applies unit rules over [start, end) until nothing new appears.
// A unit rule is not applied to a tree whose single-child chain already
// carries the rule's label, so unit cycles terminate.
func (c *chart) closeUnits(g *Grammar, start, end int) error {
	if c.cells[start][end-start-1] == nil {
		return nil
	}
	cl := c.at(start, end)
	for changed := true; changed; {
		changed = false
		for _, r := range g.unit {
			below := cl.entries[r.RHS[0].Name]
			for i := 0; i < len(below); i++ {
				if unitChainHas(below[i], r.LHS.Name) {
					continue
				}
				added, err := c.add(start, end, NewTree(r.LHS.Name, below[i]))
				if err != nil {
					return err
				}
				changed = changed || added
			}
		}
	}
	return nil
}

// unitChainHas reports whether label occurs on t or on the chain of
// only-children below it.
func unitChainHas(t *Tree, label string) bool {
	for {
		if t.label == label {
			return true
		}
		if len(t.children) != 1 {
			return false
		}
		sub, ok := t.children[0].(*Tree)
		if !ok {
			return false
		}
		t = sub
	}
}

// key is a canonical encoding of t used for structural deduplication.
func (t *Tree) key() string {
	var b strings.Builder
	t.writeKey(&b)
	return b.String()
}

func (t *Tree) writeKey(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(t.label)
	for _, c := range t.children {
		b.WriteByte(' ')
		switch c := c.(type) {
		case Leaf:
			b.WriteString(strconv.Quote(string(c)))
		case *Tree:
			c.writeKey(b)
		}
	}
	b.WriteByte(')')
}

// clone deep-copies t so the caller owns every node.
func (t *Tree) clone() *Tree {
	kids := make([]Node, len(t.children))
	for i, c := range t.children {
		if sub, ok := c.(*Tree); ok {
			kids[i] = sub.clone()
		} else {
			kids[i] = c
		}
	}
	return &Tree{label: t.label, children: kids}
}
