package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/cognicore/ruletok/pkg/ruletok/chunk"
	"github.com/cognicore/ruletok/pkg/ruletok/ingest"
	"github.com/cognicore/ruletok/pkg/ruletok/token"
)

const (
	formatSummary = "summary"
	formatTSV     = "tsv"
	formatJSONL   = "jsonl"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(14)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

type summary struct {
	Source  string
	Elapsed time.Duration
	Doc     ingest.Document
	ID      string
	Workers int
}

// printSample prints the first n tokens joined by " | ".
func printSample(w io.Writer, toks []token.Token, n int) {
	if n <= 0 || len(toks) == 0 {
		return
	}
	more := ""
	if len(toks) > n {
		toks = toks[:n]
		more = mutedStyle.Render(" | …")
	}
	fmt.Fprintln(w, strings.Join(token.Texts(toks), " | ")+more)
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, s summary) {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	st := s.Doc.Stats

	fmt.Fprintln(w, titleStyle.Render("Tokenized "+s.Source))
	row := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+value)
	}
	row("time", s.Elapsed.Round(time.Microsecond).String())
	row("lines", humanize.Comma(int64(st.Lines)))
	row("chars", humanize.Comma(int64(s.Doc.Chars)))
	row("chunks", humanize.Comma(int64(st.Chunks)))
	row("tokens", humanize.Comma(int64(st.Tokens)))
	row("workers", fmt.Sprint(workers))
	if s.Elapsed > 0 {
		rate := float64(st.Tokens) / s.Elapsed.Seconds()
		row("rate", humanize.Comma(int64(rate))+" tokens/s")
	}

	var paths []string
	for p := chunk.Path(0); int(p) < chunk.NumPaths; p++ {
		if n := st.Paths[p]; n > 0 {
			paths = append(paths, fmt.Sprintf("%s=%s", p, humanize.Comma(int64(n))))
		}
	}
	if len(paths) > 0 {
		row("paths", strings.Join(paths, " "))
	}
	if st.PartialExceptions > 0 {
		row("partial exc.", humanize.Comma(int64(st.PartialExceptions)))
	}
	if s.ID != "" {
		row("stored as", s.ID)
	}
}

// writeTSV writes one token per line: start, end, text, norm.
func writeTSV(w io.Writer, toks []token.Token) error {
	for _, t := range toks {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", t.Start, t.End, t.Text, t.Norm); err != nil {
			return err
		}
	}
	return nil
}

type jsonToken struct {
	Text  string `json:"text"`
	Norm  string `json:"norm,omitempty"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// writeJSONL writes one JSON object per token.
func writeJSONL(w io.Writer, toks []token.Token) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, t := range toks {
		if err := enc.Encode(jsonToken{Text: t.Text, Norm: t.Norm, Start: t.Start, End: t.End}); err != nil {
			return err
		}
	}
	return nil
}
