// Command npchunk parses an English sentence and prints every parse tree
// together with its noun-phrase chunks.
//
// Usage:
//
//	npchunk [-data dir | -grammar file] [-repl] [sentence-file]
//
// Without a file argument the sentence is read from an interactive prompt.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/peterh/liner"

	"github.com/cours-de-latin/chartparse"
)

const (
	prompt      = "Sentence: "
	historyFile = ".npchunk_history"
)

// report prints the analysis of one sentence to w.
func report(w io.Writer, p *chartparse.Parser, sentence string) error {
	a, err := p.Analyze(sentence)
	if err != nil {
		return err
	}
	if len(a.Trees) == 0 {
		fmt.Fprintln(w, "Could not parse sentence.")
		if missing := p.Grammar().MissingWords(a.Tokens); len(missing) > 0 {
			fmt.Fprintf(w, "Unknown words: %s\n", strings.Join(missing, ", "))
		}
		return nil
	}
	for i, t := range a.Trees {
		if len(a.Trees) > 1 {
			fmt.Fprintf(w, "Parse %d of %d\n", i+1, len(a.Trees))
		}
		fmt.Fprint(w, t.Pretty())
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Noun Phrase Chunks")
		for _, np := range a.Chunks[i] {
			fmt.Fprintln(w, chartparse.Words(np))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// repl prompts for sentences until EOF. With once set it stops after the
// first sentence.
func repl(p *chartparse.Parser, once bool) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if strings.TrimSpace(line) == "" {
			if once {
				return 0
			}
			continue
		}
		ln.AppendHistory(line)
		if err := report(os.Stdout, p, line); err != nil {
			fmt.Fprintln(os.Stderr, err)
			if once {
				return 1
			}
		}
		if once {
			return 0
		}
	}
}

// enableTracing sends the parser's debug traces to w.
func enableTracing(w io.Writer) func() {
	return chartparse.TraceTo(w, tracing.LevelDebug)
}

func main() {
	dataDir := flag.String("data", "data", "path to the grammar data directory")
	grammarFile := flag.String("grammar", "", "single rule file to use instead of -data")
	loop := flag.Bool("repl", false, "keep prompting for sentences until EOF")
	maxDerivations := flag.Int("max-derivations", chartparse.DefaultMaxDerivations, "derivation budget per sentence, 0 for none")
	verbose := flag.Bool("v", false, "trace the chart parser to stderr")
	flag.Parse()

	if *verbose {
		enableTracing(os.Stderr)
	}

	var g *chartparse.Grammar
	var err error
	if *grammarFile != "" {
		g, err = chartparse.LoadGrammar(*grammarFile)
	} else {
		g, err = chartparse.LoadGrammarDir(*dataDir)
	}
	if err != nil {
		log.Fatalf("failed to load grammar: %v", err)
	}
	p := chartparse.NewParser(g)
	p.MaxDerivations = *maxDerivations

	if flag.NArg() == 0 {
		os.Exit(repl(p, !*loop))
	}

	contents, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to read sentence: %v", err)
	}
	if err := report(os.Stdout, p, string(contents)); err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}
