package chartparse

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Rule files read by LoadGrammarDir, in order. The phrase-structure rules
// come first so that their first left-hand side is the start symbol.
const (
	NonterminalsFile = "nonterminals.cfg"
	TerminalsFile    = "terminals.cfg"
)

// LoadGrammar reads rule text from path and compiles it.
func LoadGrammar(path string) (*Grammar, error) {
	text, err := readRuleFile(path)
	if err != nil {
		return nil, err
	}
	g, err := NewGrammar(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// LoadGrammarDir compiles the phrase-structure rules and the lexicon found
// in dataDir into one Grammar.
func LoadGrammarDir(dataDir string) (*Grammar, error) {
	var b strings.Builder
	for _, name := range []string{NonterminalsFile, TerminalsFile} {
		text, err := readRuleFile(filepath.Join(dataDir, name))
		if err != nil {
			return nil, err
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	g, err := NewGrammar(b.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dataDir, err)
	}
	return g, nil
}

// readRuleFile returns the lines of a rule file joined with newlines.
func readRuleFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var b strings.Builder
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		b.WriteString(sc.Text())
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return b.String(), nil
}
