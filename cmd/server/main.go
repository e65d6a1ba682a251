// Command server exposes the chart parser as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/parse?sentence=<text>
//	POST /api/parse   body: {"sentence":"..."} or {"tokens":["..."]}
//	GET  /api/grammar
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/rs/cors"

	"github.com/cours-de-latin/chartparse"
)

// ---- JSON response types ------------------------------------------------

type treeJSON struct {
	Bracketed string     `json:"bracketed"`
	Pretty    string     `json:"pretty"`
	Chunks    [][]string `json:"np_chunks"`
}

type parseResponse struct {
	Tokens  []string   `json:"tokens"`
	Trees   []treeJSON `json:"trees"`
	Missing []string   `json:"missing_words,omitempty"`
}

type ruleJSON struct {
	LHS string   `json:"lhs"`
	RHS []string `json:"rhs"`
}

type grammarResponse struct {
	Start        string     `json:"start"`
	Rules        []ruleJSON `json:"rules"`
	Nonterminals []string   `json:"nonterminals"`
	Terminals    []string   `json:"terminals"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func toParseResponse(g *chartparse.Grammar, a *chartparse.Analysis) parseResponse {
	out := parseResponse{Tokens: a.Tokens, Trees: make([]treeJSON, 0, len(a.Trees))}
	for i, t := range a.Trees {
		chunks := make([][]string, 0, len(a.Chunks[i]))
		for _, np := range a.Chunks[i] {
			chunks = append(chunks, np.Flatten())
		}
		out.Trees = append(out.Trees, treeJSON{
			Bracketed: t.String(),
			Pretty:    t.Pretty(),
			Chunks:    chunks,
		})
	}
	if len(a.Trees) == 0 {
		out.Missing = g.MissingWords(a.Tokens)
	}
	return out
}

func toGrammarResponse(g *chartparse.Grammar) grammarResponse {
	rules := g.Rules()
	out := grammarResponse{
		Start:        g.Start().Name,
		Rules:        make([]ruleJSON, 0, len(rules)),
		Nonterminals: g.Nonterminals(),
		Terminals:    g.Terminals(),
	}
	for _, r := range rules {
		rhs := make([]string, 0, len(r.RHS))
		for _, s := range r.RHS {
			rhs = append(rhs, s.String())
		}
		out.Rules = append(out.Rules, ruleJSON{LHS: r.LHS.Name, RHS: rhs})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func handleParse(p *chartparse.Parser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var tokens []string
		switch r.Method {
		case http.MethodGet:
			tokens = chartparse.Tokenize(r.URL.Query().Get("sentence"))
		case http.MethodPost:
			var body struct {
				Sentence string   `json:"sentence"`
				Tokens   []string `json:"tokens"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "body must be JSON with a 'sentence' or 'tokens' field")
				return
			}
			if len(body.Tokens) > 0 {
				tokens = body.Tokens
			} else {
				tokens = chartparse.Tokenize(body.Sentence)
			}
		default:
			writeError(w, http.StatusMethodNotAllowed, "GET or POST required")
			return
		}

		a, err := p.AnalyzeTokens(tokens)
		switch {
		case errors.Is(err, chartparse.ErrNoTokens):
			writeError(w, http.StatusBadRequest, "sentence has no words")
			return
		case errors.Is(err, chartparse.ErrBudgetExceeded):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toParseResponse(p.Grammar(), a))
	}
}

func handleGrammar(g *chartparse.Grammar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, toGrammarResponse(g))
	}
}

// newHandler builds the API mux wrapped in CORS handling. An empty origins
// list allows every origin.
func newHandler(p *chartparse.Parser, origins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse", handleParse(p))
	mux.HandleFunc("/api/grammar", handleGrammar(p.Grammar()))

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

// loadGrammar prefers a single rule file over the data directory.
func loadGrammar(grammarFile, dataDir string) (*chartparse.Grammar, error) {
	if grammarFile != "" {
		return chartparse.LoadGrammar(grammarFile)
	}
	return chartparse.LoadGrammarDir(dataDir)
}

// ---- main ---------------------------------------------------------------

func main() {
	dataDir := flag.String("data", "data", "path to the grammar data directory")
	grammarFile := flag.String("grammar", "", "single rule file to use instead of -data")
	addr := flag.String("addr", ":8080", "listen address")
	origins := flag.String("origins", "", "comma-separated CORS origins (default any)")
	maxDerivations := flag.Int("max-derivations", chartparse.DefaultMaxDerivations, "derivation budget per sentence, 0 for none")
	verbose := flag.Bool("v", false, "trace the chart parser to stderr")
	flag.Parse()

	if *verbose {
		chartparse.TraceTo(os.Stderr, tracing.LevelInfo)
	}

	log.Printf("loading grammar …")
	g, err := loadGrammar(*grammarFile, *dataDir)
	if err != nil {
		log.Fatalf("failed to load grammar: %v", err)
	}
	log.Printf("grammar loaded: %d rules, start symbol %s", len(g.Rules()), g.Start())

	p := chartparse.NewParser(g)
	p.MaxDerivations = *maxDerivations

	var allowed []string
	if *origins != "" {
		allowed = strings.Split(*origins, ",")
	}

	log.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, newHandler(p, allowed)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
