// filterbench measures how long one match pass of the dmenu matcher
// takes over synthetically generated candidate sets of configurable
// size.
//
// Usage:
//
//	go run ./cmd/filterbench [flags]
//
// Examples:
//
//	go run ./cmd/filterbench --lines 1000000 --query foo
//	go run ./cmd/filterbench --lines 500000 --query "foo bar" --strategy Token --ignore-case
//	go run ./cmd/filterbench --lines 1000000 --typing "f,fo,foo,foob,fooba,foobar"
//	go run ./cmd/filterbench --input /path/to/largefile.txt --json
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/peco/dmenu/candidate"
	"github.com/peco/dmenu/filter"
)

type result struct {
	Matcher     string  `json:"matcher"`
	Query       string  `json:"query"`
	Lines       int     `json:"lines"`
	Matches     int     `json:"matches"`
	Duration    string  `json:"duration"`
	DurationMs  float64 `json:"duration_ms"`
	LinesPerSec float64 `json:"lines_per_sec"`
}

type benchOptions struct {
	Lines      int    `long:"lines" default:"1000000" description:"number of candidates to generate"`
	Query      string `long:"query" default:"foo" description:"query to match with"`
	Typing     string `long:"typing" description:"comma separated queries run in sequence (simulates typing)"`
	Strategy   string `long:"strategy" description:"Token or Fuzzy (empty = both)"`
	IgnoreCase bool   `long:"ignore-case" description:"match case-insensitively"`
	Input      string `long:"input" description:"read candidates from file instead of generating them"`
	JSON       bool   `long:"json" description:"output results as JSON"`
	Seed       uint64 `long:"seed" default:"42" description:"random seed for data generation"`
	LineLength int    `long:"line-length" default:"80" description:"average length of generated candidates"`
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "filterbench"})

	var opts benchOptions
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	store, err := loadOrGenerate(opts)
	if err != nil {
		logger.Fatal("failed to prepare candidates", "err", err)
	}

	matchers := buildMatchers(opts.Strategy, opts.IgnoreCase)
	if len(matchers) == 0 {
		logger.Fatal("unknown strategy", "strategy", opts.Strategy, "available", "Token, Fuzzy")
	}

	queries := []string{opts.Query}
	if opts.Typing != "" {
		queries = strings.Split(opts.Typing, ",")
	}

	if !opts.JSON {
		fmt.Fprintf(os.Stderr, "Dataset: %d candidates\n", store.Len())
		fmt.Fprintf(os.Stderr, "Queries: %v\n", queries)
		fmt.Fprintf(os.Stderr, "GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))
	}

	var results []result
	for _, m := range matchers {
		var cumulative time.Duration
		for _, q := range queries {
			r := bench(m, store, q)
			cumulative += time.Duration(r.DurationMs * float64(time.Millisecond))
			results = append(results, r)
			if !opts.JSON {
				printResult(os.Stdout, r)
			}
		}
		if !opts.JSON && len(queries) > 1 {
			fmt.Printf("Cumulative time: %s\n\n", cumulative)
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			logger.Fatal("failed to encode results", "err", err)
		}
	}
}

func buildMatchers(name string, ignoreCase bool) []*filter.Matcher {
	all := []*filter.Matcher{
		filter.New(filter.Token, ignoreCase),
		filter.New(filter.Fuzzy, ignoreCase),
	}
	if name == "" {
		return all
	}

	for _, m := range all {
		if strings.EqualFold(m.Strategy().String(), name) {
			return []*filter.Matcher{m}
		}
	}
	return nil
}

func loadOrGenerate(opts benchOptions) (*candidate.Store, error) {
	store := candidate.NewStore(nil)
	if opts.Input == "" {
		return store, store.Load(strings.NewReader(generateLines(opts)))
	}

	f, err := os.Open(opts.Input)
	if err != nil {
		return nil, errors.Wrap(err, "error opening file")
	}
	defer f.Close()

	return store, store.Load(f)
}

// generateLines creates a synthetic dataset, one candidate per line.
// Short queries (e.g. "f", "fo") match many candidates, longer ones
// (e.g. "foobar") progressively fewer.
func generateLines(opts benchOptions) string {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed+1))

	words := []struct {
		word string
		freq float64 // probability of appearing in a line
	}{
		{"foo", 0.30},
		{"bar", 0.25},
		{"baz", 0.15},
		{"qux", 0.10},
		{"foobar", 0.03},
		{"foobaz", 0.02},
		{"foobarbaz", 0.005},
	}

	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789_-./: "

	var out strings.Builder
	for range opts.Lines {
		var sb strings.Builder
		targetLen := opts.LineLength/2 + rng.IntN(max(opts.LineLength, 1))

		for sb.Len() < targetLen {
			for _, w := range words {
				if rng.Float64() < w.freq*0.3 {
					if sb.Len() > 0 {
						sb.WriteByte(' ')
					}
					sb.WriteString(w.word)
				}
			}
			n := 3 + rng.IntN(8)
			for j := 0; j < n && sb.Len() < targetLen; j++ {
				sb.WriteByte(alphabet[rng.IntN(len(alphabet))])
			}
			if sb.Len() < targetLen {
				sb.WriteByte(' ')
			}
		}

		out.WriteString(sb.String())
		out.WriteByte('\n')
	}
	return out.String()
}

// bench runs one full match pass, the way the menu does after every
// edit.
func bench(m *filter.Matcher, store *candidate.Store, query string) result {
	runtime.GC()

	start := time.Now()
	matches := m.Match(store.Items(), query)
	elapsed := time.Since(start)

	return result{
		Matcher:     m.String(),
		Query:       query,
		Lines:       store.Len(),
		Matches:     len(matches),
		Duration:    elapsed.String(),
		DurationMs:  float64(elapsed.Milliseconds()),
		LinesPerSec: float64(store.Len()) / elapsed.Seconds(),
	}
}

func printResult(w io.Writer, r result) {
	fmt.Fprintf(w, "%-22s  query=%-20s  %d lines  %6d matches  %10s  (%.0f lines/sec)\n",
		r.Matcher, fmt.Sprintf("%q", r.Query), r.Lines, r.Matches, r.Duration, r.LinesPerSec)
}
