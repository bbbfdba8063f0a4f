package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/ruletok/pkg/ruletok/token"
)

func TestLoaderAllEmpty(t *testing.T) {
	loader := Loader{}

	comp, err := loader.Load(nil)
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}
	if comp.Rules == nil {
		t.Fatal("Should fall back to english rules")
	}
	if comp.Pipeline == nil {
		t.Fatal("Should build a pipeline")
	}
	if comp.Run != DefaultRun() {
		t.Errorf("Run = %+v, want defaults", comp.Run)
	}

	doc := comp.Pipeline.ProcessString("don't stop.")
	if got := strings.Join(token.Texts(doc.Tokens), " "); got != "do n't stop ." {
		t.Errorf("unexpected tokens %q", got)
	}
}

func TestLoaderNonExistentRules(t *testing.T) {
	loader := Loader{RulesPath: "/nonexistent/rules.yaml"}

	if _, err := loader.Load(nil); err == nil {
		t.Error("Should error on nonexistent rules file")
	}
}

func TestLoaderNonExistentRun(t *testing.T) {
	loader := Loader{RunPath: "/nonexistent/run.yaml"}

	if _, err := loader.Load(nil); err == nil {
		t.Error("Should error on nonexistent run file")
	}
}

func TestLoaderWithFiles(t *testing.T) {
	dir := t.TempDir()
	rulesPath := writeFile(t, dir, "rules.yaml", "base: none\nsuffixes: ['!']\n")
	runPath := writeFile(t, dir, "run.yaml", "workers: 2\nhtml: true\n")

	loader := Loader{
		RulesPath: rulesPath,
		RunPath:   runPath,
		Override:  func(r *Run) { r.DB = filepath.Join(dir, "x.db") },
	}
	comp, err := loader.Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Run.Workers != 2 || !comp.Run.HTML || comp.Run.DB == "" {
		t.Errorf("run settings not applied: %+v", comp.Run)
	}

	doc, err := comp.Pipeline.Process(context.Background(), strings.NewReader("<p>wow!</p>"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := strings.Join(token.Texts(doc.Tokens), " "); got != "wow !" {
		t.Errorf("unexpected tokens %q", got)
	}
}

func TestLoaderInvalidPattern(t *testing.T) {
	dir := t.TempDir()
	rulesPath := writeFile(t, dir, "rules.yaml", "base: none\nprefixes: ['[']\n")

	loader := Loader{RulesPath: rulesPath}
	_, err := loader.Load(nil)
	if err == nil {
		t.Fatal("Should error on invalid pattern")
	}
	if !strings.Contains(err.Error(), "prefix pattern 0") {
		t.Errorf("error should name the pattern: %v", err)
	}
}
