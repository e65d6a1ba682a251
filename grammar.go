package chartparse

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cznic/sortutil"
)

// Grammar is an immutable context-free grammar compiled from rule text.
// It is safe for concurrent use by any number of parsers.
type Grammar struct {
	start Symbol

	// rules holds every rule in declaration order.
	rules []*Rule

	// byLHS maps nonterminal name → rules with that left-hand side.
	byLHS map[string][]*Rule

	// lexical maps word → rules whose right-hand side is exactly that word.
	lexical map[string][]*Rule

	// words is the set of every terminal used anywhere in the grammar.
	words map[string]bool

	// phrasal holds rules with two or more right-hand-side symbols.
	phrasal []*Rule

	// unit holds rules whose right-hand side is a single nonterminal.
	unit []*Rule
}

// ruleToken is one lexeme of a rule line.
type ruleToken struct {
	kind string
	text string
}

// ruleTokenDefs is tried in order at every position of a rule line.
var ruleTokenDefs = []struct {
	kind    string
	pattern *regexp.Regexp
}{
	{"Whitespace", regexp.MustCompile(`^\s+`)},
	{"Arrow", regexp.MustCompile(`^->`)},
	{"Pipe", regexp.MustCompile(`^\|`)},
	{"String", regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`)},
	{"String", regexp.MustCompile(`^'(?:[^'\\]|\\.)*'`)},
	{"Name", regexp.MustCompile(`^[^\s"'|]+`)},
}

// lexRuleLine splits a rule line into tokens, dropping whitespace.
func lexRuleLine(line string) ([]ruleToken, error) {
	var tokens []ruleToken
	for len(line) > 0 {
		found := false
		for _, def := range ruleTokenDefs {
			loc := def.pattern.FindStringIndex(line)
			if loc == nil {
				continue
			}
			text := line[:loc[1]]
			// a name may not swallow an arrow written without spaces
			if def.kind == "Name" {
				if i := strings.Index(text, "->"); i > 0 {
					text = text[:i]
				}
			}
			if def.kind != "Whitespace" {
				tokens = append(tokens, ruleToken{kind: def.kind, text: text})
			}
			line = line[len(text):]
			found = true
			break
		}
		if !found {
			return tokens, fmt.Errorf("unexpected input at %q", line)
		}
	}
	return tokens, nil
}

var terminalUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\'`, `'`)

// unquoteTerminal strips the quotes of a String token.
func unquoteTerminal(s string) string {
	return terminalUnescaper.Replace(s[1 : len(s)-1])
}

// NewGrammar compiles rule text into a Grammar.
//
// Each non-blank line has the form
//
//	LHS -> RHS1 | RHS2 | ...
//
// where each alternative is a whitespace-separated sequence of bare
// nonterminal names and quoted terminals. Lines starting with '#' are
// comments. The left-hand side of the first rule is the start symbol.
func NewGrammar(text string) (*Grammar, error) {
	g := &Grammar{
		byLHS:   make(map[string][]*Rule),
		lexical: make(map[string][]*Rule),
		words:   make(map[string]bool),
	}
	ruleLines := make(map[*Rule]int)

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules, err := parseRuleLine(line)
		if err != nil {
			return nil, &GrammarError{Line: lineNo, Text: line, Msg: err.Error()}
		}
		for _, r := range rules {
			ruleLines[r] = lineNo
			g.add(r)
		}
	}

	if len(g.rules) == 0 {
		return nil, &GrammarError{Msg: "no rules"}
	}
	g.start = g.rules[0].LHS

	for _, r := range g.rules {
		for _, s := range r.RHS {
			if s.Terminal {
				continue
			}
			if _, ok := g.byLHS[s.Name]; !ok {
				return nil, &GrammarError{
					Line: ruleLines[r],
					Text: r.String(),
					Msg:  fmt.Sprintf("nonterminal %s is never defined", s.Name),
				}
			}
		}
	}
	return g, nil
}

// parseRuleLine turns one "LHS -> alt | alt" line into rules.
func parseRuleLine(line string) ([]*Rule, error) {
	tokens, err := lexRuleLine(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) < 2 || tokens[1].kind != "Arrow" {
		return nil, fmt.Errorf("expected 'LHS ->'")
	}
	if tokens[0].kind != "Name" {
		return nil, fmt.Errorf("left-hand side must be a bare nonterminal")
	}
	lhs := NT(tokens[0].text)

	var rules []*Rule
	var rhs []Symbol
	flush := func() error {
		if len(rhs) == 0 {
			return fmt.Errorf("empty alternative for %s", lhs.Name)
		}
		rules = append(rules, &Rule{LHS: lhs, RHS: rhs})
		rhs = nil
		return nil
	}
	for _, tok := range tokens[2:] {
		switch tok.kind {
		case "Pipe":
			if err := flush(); err != nil {
				return nil, err
			}
		case "Arrow":
			return nil, fmt.Errorf("unexpected '->'")
		case "String":
			word := unquoteTerminal(tok.text)
			if word == "" {
				return nil, fmt.Errorf("empty terminal")
			}
			rhs = append(rhs, T(word))
		default:
			rhs = append(rhs, NT(tok.text))
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return rules, nil
}

// add indexes a rule.
func (g *Grammar) add(r *Rule) {
	g.rules = append(g.rules, r)
	g.byLHS[r.LHS.Name] = append(g.byLHS[r.LHS.Name], r)
	for _, s := range r.RHS {
		if s.Terminal {
			g.words[s.Name] = true
		}
	}
	switch {
	case r.IsLexical():
		g.lexical[r.RHS[0].Name] = append(g.lexical[r.RHS[0].Name], r)
	case r.IsUnit():
		g.unit = append(g.unit, r)
	default:
		g.phrasal = append(g.phrasal, r)
	}
}

// Start returns the start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// RulesFor returns the rules whose left-hand side is nt, in declaration
// order, or nil if nt is not defined.
func (g *Grammar) RulesFor(nt string) []*Rule {
	rules := g.byLHS[nt]
	if rules == nil {
		return nil
	}
	return append([]*Rule(nil), rules...)
}

// Rules returns every rule in declaration order.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Lexicon returns the rules rewriting directly to word.
func (g *Grammar) Lexicon(word string) []*Rule {
	return append([]*Rule(nil), g.lexical[word]...)
}

// Nonterminals returns the sorted names of all defined nonterminals.
func (g *Grammar) Nonterminals() []string {
	names := make([]string, 0, len(g.rules))
	for _, r := range g.rules {
		names = append(names, r.LHS.Name)
	}
	sort.Strings(names)
	return names[:sortutil.Dedupe(sort.StringSlice(names))]
}

// Terminals returns the sorted words of the grammar.
func (g *Grammar) Terminals() []string {
	words := make([]string, 0, len(g.words))
	for _, r := range g.rules {
		for _, s := range r.RHS {
			if s.Terminal {
				words = append(words, s.Name)
			}
		}
	}
	sort.Strings(words)
	return words[:sortutil.Dedupe(sort.StringSlice(words))]
}

// MissingWords returns, in input order and without repetition, the tokens
// that no rule of the grammar mentions. A sentence containing any of them
// has no derivation.
func (g *Grammar) MissingWords(tokens []string) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if g.words[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		missing = append(missing, tok)
	}
	return missing
}
