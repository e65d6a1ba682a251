// Package chartparse parses tokenized English sentences against a
// context-free grammar, returning every derivation as an explicit tree,
// and extracts the noun-phrase chunks of each tree.
//
// A Grammar is compiled once from rule text such as
//
//	S -> NP VP
//	NP -> Det N | N
//	Det -> "the"
//
// and is read-only afterwards. The chart parser works bottom-up over spans
// of the input, accepts right-hand sides of any length, and keeps every
// distinct derivation rather than a single best one.
package chartparse

// Analysis is the result of analysing one sentence.
type Analysis struct {
	// Tokens is the normalized input the trees cover.
	Tokens []string
	// Trees holds every derivation, in parser order.
	Trees []*Tree
	// Chunks holds the noun-phrase chunks of Trees[i] at index i.
	Chunks [][]*Tree
}

// Analyze tokenizes sentence, parses it with p and extracts the noun-phrase
// chunks of every tree. A sentence without a derivation yields an Analysis
// with no trees and a nil error.
func (p *Parser) Analyze(sentence string) (*Analysis, error) {
	return p.AnalyzeTokens(Tokenize(sentence))
}

// AnalyzeTokens is Analyze for already-normalized tokens.
func (p *Parser) AnalyzeTokens(tokens []string) (*Analysis, error) {
	trees, err := p.Parse(tokens)
	if err != nil {
		return nil, err
	}
	a := &Analysis{Tokens: tokens, Trees: trees, Chunks: make([][]*Tree, len(trees))}
	for i, t := range trees {
		a.Chunks[i] = NPChunks(t)
	}
	return a, nil
}
