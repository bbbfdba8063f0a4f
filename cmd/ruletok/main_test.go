package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestTokenizeSummary(t *testing.T) {
	path := writeInput(t, "in.txt", "don't stop.\nbye!\n")

	out, err := runCLI(t, "tokenize", path, "--sample", "3")
	if err != nil {
		t.Fatalf("tokenize: %v\n%s", err, out)
	}
	if !strings.Contains(out, "do | n't | stop") {
		t.Errorf("sample missing from output:\n%s", out)
	}
	for _, want := range []string{"tokens", "lines", "exception=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTokenizeTSV(t *testing.T) {
	path := writeInput(t, "in.txt", "don't stop.")

	out, err := runCLI(t, "tokenize", path, "--format", "tsv")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := "0\t2\tdo\tdo\n2\t5\tn't\tnot\n6\t10\tstop\t\n10\t11\t.\t\n"
	if out != want {
		t.Errorf("tsv output = %q, want %q", out, want)
	}
}

func TestTokenizeJSONL(t *testing.T) {
	path := writeInput(t, "in.txt", "a & b")

	out, err := runCLI(t, "tokenize", path, "--format", "jsonl")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}

	var texts []string
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var tok jsonToken
		if err := json.Unmarshal(sc.Bytes(), &tok); err != nil {
			t.Fatalf("bad json line %q: %v", sc.Text(), err)
		}
		texts = append(texts, tok.Text)
	}
	if got := strings.Join(texts, " "); got != "a & b" {
		t.Errorf("tokens = %q", got)
	}
	if !strings.Contains(out, `"text":"&"`) {
		t.Errorf("ampersand should not be escaped:\n%s", out)
	}
}

func TestTokenizeUnknownFormat(t *testing.T) {
	path := writeInput(t, "in.txt", "x")
	if _, err := runCLI(t, "tokenize", path, "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := runCLI(t, "tokenize", filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTokenizeStoreShowTop(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tokens.db")
	path := writeInput(t, "in.txt", "a b a.\n")

	out, err := runCLI(t, "tokenize", path, "--db", db)
	if err != nil {
		t.Fatalf("tokenize --db: %v\n%s", err, out)
	}
	idx := strings.Index(out, "stored as")
	if idx < 0 {
		t.Fatalf("no document id in output:\n%s", out)
	}
	fields := strings.Fields(out[idx+len("stored as"):])
	if len(fields) == 0 || len(fields[0]) != 26 {
		t.Fatalf("could not parse id from:\n%s", out)
	}
	id := fields[0]

	out, err = runCLI(t, "show", id, "--db", db)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 4 {
		t.Errorf("show printed %d tokens, want 4:\n%s", lines, out)
	}

	out, err = runCLI(t, "top", "--db", db, "-k", "1")
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if !strings.Contains(out, "a") || !strings.Contains(out, "2") {
		t.Errorf("unexpected top output:\n%s", out)
	}

	out, err = runCLI(t, "docs", "--db", db)
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	if !strings.Contains(out, id) {
		t.Errorf("docs should list %s:\n%s", id, out)
	}

	if _, err := runCLI(t, "show", "01ZZZZZZZZZZZZZZZZZZZZZZZZ", "--db", db); err == nil {
		t.Error("show of unknown id should fail")
	}
}

func TestStoreCommandsRequireDB(t *testing.T) {
	for _, args := range [][]string{{"top"}, {"docs"}, {"show", "x"}} {
		_, err := runCLI(t, args...)
		if !errors.Is(err, errNoDB) {
			t.Errorf("%v without --db: err = %v, want %v", args, err, errNoDB)
		}
	}
}

func TestRulesCommand(t *testing.T) {
	out, err := runCLI(t, "rules")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	for _, want := range []string{"prefixes", "suffixes", "exceptions", "english"} {
		if !strings.Contains(out, want) {
			t.Errorf("rules output missing %q:\n%s", want, out)
		}
	}
}

func TestRulesCommandInvalidPattern(t *testing.T) {
	rules := writeInput(t, "rules.yaml", "base: none\nsuffixes: ['(']\n")
	if _, err := runCLI(t, "rules", "--rules", rules); err == nil {
		t.Error("invalid pattern should fail")
	}
}

func TestTokenizeWithRuleFileAndConfig(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.yaml")
	run := filepath.Join(dir, "run.yaml")
	in := filepath.Join(dir, "in.html")
	for path, content := range map[string]string{
		rules: "base: none\nsuffixes: ['!']\n",
		run:   "html: true\nworkers: 2\n",
		in:    "<p>wow!</p>",
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := runCLI(t, "tokenize", in, "--rules", rules, "--config", run, "--format", "tsv")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if out != "0\t3\twow\t\n3\t4\t!\t\n" {
		t.Errorf("unexpected output %q", out)
	}
}
