package chartparse

import (
	"strconv"
	"strings"
)

// Symbol is a grammar symbol: either a nonterminal category such as "NP"
// or a terminal word such as "the". Symbols are compared by value.
type Symbol struct {
	// Name is the category name or the literal word.
	Name string
	// Terminal is true for literal words.
	Terminal bool
}

// NT returns the nonterminal symbol name.
func NT(name string) Symbol { return Symbol{Name: name} }

// T returns the terminal symbol word.
func T(word string) Symbol { return Symbol{Name: word, Terminal: true} }

// String renders terminals quoted and nonterminals bare, as in rule text.
func (s Symbol) String() string {
	if s.Terminal {
		return strconv.Quote(s.Name)
	}
	return s.Name
}

// Rule is a production LHS -> RHS[0] RHS[1] ...
type Rule struct {
	// LHS is always a nonterminal.
	LHS Symbol
	// RHS holds one or more symbols.
	RHS []Symbol
}

// String renders the rule in rule-text syntax.
func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS.Name)
	b.WriteString(" ->")
	for _, s := range r.RHS {
		b.WriteByte(' ')
		b.WriteString(s.String())
	}
	return b.String()
}

// IsLexical reports whether the rule rewrites to exactly one word.
func (r *Rule) IsLexical() bool {
	return len(r.RHS) == 1 && r.RHS[0].Terminal
}

// IsUnit reports whether the rule rewrites to exactly one nonterminal.
func (r *Rule) IsUnit() bool {
	return len(r.RHS) == 1 && !r.RHS[0].Terminal
}
