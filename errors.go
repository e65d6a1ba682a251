package chartparse

import (
	"errors"
	"fmt"
)

// GrammarError reports malformed rule text or a grammar that is not closed
// (a right-hand-side nonterminal with no defining rule).
type GrammarError struct {
	// Line is the 1-based line of the rule text, or 0 when the error
	// concerns the grammar as a whole.
	Line int
	// Text is the offending line, trimmed.
	Text string
	// Msg describes the problem.
	Msg string
}

func (e *GrammarError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("grammar: line %d: %s: %q", e.Line, e.Msg, e.Text)
	}
	return "grammar: " + e.Msg
}

// ParseError reports input the parser refuses to work on.
// An ungrammatical sentence is not a ParseError: Parse returns no trees.
type ParseError struct {
	Msg string
	err error
}

func (e *ParseError) Error() string { return "parse: " + e.Msg }

func (e *ParseError) Unwrap() error { return e.err }

var (
	// ErrNoTokens is wrapped by the ParseError returned for an empty token sequence.
	ErrNoTokens = errors.New("no tokens")

	// ErrBudgetExceeded is returned when a parse creates more derivations
	// than Parser.MaxDerivations allows.
	ErrBudgetExceeded = errors.New("derivation budget exceeded")
)
