package chartparse

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const dataDir = "data"

func TestLoadGrammarDir(t *testing.T) {
	g, err := LoadGrammarDir(dataDir)
	if err != nil {
		t.Fatalf("LoadGrammarDir(%q): %v", dataDir, err)
	}
	if g.Start() != NT("S") {
		t.Errorf("Start() = %v, want S", g.Start())
	}
	if lex := g.Lexicon("she"); len(lex) != 2 {
		t.Errorf("Lexicon(she) = %v, want Pro and N", lex)
	}
	t.Logf("Loaded %d rules, %d nonterminals, %d terminals",
		len(g.Rules()), len(g.Nonterminals()), len(g.Terminals()))
}

func TestLoadGrammarDirMissing(t *testing.T) {
	_, err := LoadGrammarDir(filepath.Join(t.TempDir(), "nowhere"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadGrammar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dog.cfg")
	if err := os.WriteFile(path, []byte(dogGrammar), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := LoadGrammar(path)
	if err != nil {
		t.Fatalf("LoadGrammar: %v", err)
	}
	if len(g.Rules()) != 6 {
		t.Errorf("len(Rules()) = %d, want 6", len(g.Rules()))
	}

	bad := filepath.Join(t.TempDir(), "bad.cfg")
	if err := os.WriteFile(bad, []byte("S -> NP\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var gerr *GrammarError
	if _, err := LoadGrammar(bad); !errors.As(err, &gerr) {
		t.Errorf("LoadGrammar(bad) error = %v, want *GrammarError", err)
	}
}

func TestDataSentences(t *testing.T) {
	g, err := LoadGrammarDir(dataDir)
	if err != nil {
		t.Fatalf("LoadGrammarDir(%q): %v", dataDir, err)
	}
	files, err := filepath.Glob(filepath.Join(dataDir, "sentences", "*.txt"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no sample sentences: %v", err)
	}
	p := NewParser(g)
	for _, f := range files {
		text, err := os.ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		a, err := p.Analyze(string(text))
		if err != nil {
			t.Errorf("%s: %v", f, err)
			continue
		}
		if len(a.Trees) == 0 {
			t.Errorf("%s: %v has no derivation", f, a.Tokens)
			continue
		}
		checkTrees(t, g, a.Tokens, a.Trees)
		for i, chunks := range a.Chunks {
			for _, c := range chunks {
				if c.Label() != NounPhrase || hasChildLabeled(c, NounPhrase) {
					t.Errorf("%s tree %d: bad chunk %v", f, i, c)
				}
			}
		}
		t.Logf("%s: %d trees", filepath.Base(f), len(a.Trees))
	}
}
