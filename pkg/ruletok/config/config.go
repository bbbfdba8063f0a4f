package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/ruletok/pkg/ruletok/internalerr"
	"github.com/cognicore/ruletok/pkg/ruletok/rules"
	"github.com/cognicore/ruletok/pkg/ruletok/rules/english"
)

// Rule bases a RuleFile can extend.
const (
	BaseEnglish = "english"
	BaseNone    = "none"
)

// SubToken is one piece of an exception entry.
type SubToken struct {
	Orth string `yaml:"orth"`
	Norm string `yaml:"norm,omitempty"`
}

// RuleFile is a YAML rule definition. Lists are appended to the base
// tables; token_match and url_match replace the base matcher when set;
// exceptions are merged over the base lexicon after remove_exceptions is
// applied.
type RuleFile struct {
	Base             string                `yaml:"base"`
	Prefixes         []string              `yaml:"prefixes"`
	Suffixes         []string              `yaml:"suffixes"`
	Infixes          []string              `yaml:"infixes"`
	LiteralInfixes   []string              `yaml:"literal_infixes"`
	TokenMatch       string                `yaml:"token_match"`
	URLMatch         string                `yaml:"url_match"`
	Exceptions       map[string][]SubToken `yaml:"exceptions"`
	ExceptionsFile   string                `yaml:"exceptions_file"`
	RemoveExceptions []string              `yaml:"remove_exceptions"`

	dir string
}

// LoadRules loads a rule file from YAML. A relative exceptions_file is
// resolved against the rule file's directory.
func LoadRules(path string) (*RuleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "%s: %v", path, err)
	}
	rf.dir = filepath.Dir(path)
	return &rf, nil
}

// Spec merges the file over its base tables.
func (rf *RuleFile) Spec() (rules.Spec, error) {
	var spec rules.Spec
	switch strings.ToLower(rf.Base) {
	case "", BaseEnglish:
		spec = english.Spec()
	case BaseNone:
		spec.Exceptions = make(map[string][]rules.SubToken)
	default:
		return rules.Spec{}, errors.Wrapf(internalerr.ErrInvalidConfig, "unknown base %q", rf.Base)
	}

	spec.Prefixes = append(spec.Prefixes, rf.Prefixes...)
	spec.Suffixes = append(spec.Suffixes, rf.Suffixes...)
	spec.Infixes = append(spec.Infixes, rf.Infixes...)
	spec.LiteralInfixes = append(spec.LiteralInfixes, rf.LiteralInfixes...)
	if rf.TokenMatch != "" {
		spec.TokenMatch = rf.TokenMatch
	}
	if rf.URLMatch != "" {
		spec.URLMatch = rf.URLMatch
	}

	for _, text := range rf.RemoveExceptions {
		delete(spec.Exceptions, text)
	}
	if rf.ExceptionsFile != "" {
		path := rf.ExceptionsFile
		if !filepath.IsAbs(path) && rf.dir != "" {
			path = filepath.Join(rf.dir, path)
		}
		exc, err := LoadExceptions(path)
		if err != nil {
			return rules.Spec{}, errors.Wrap(err, "load exceptions file")
		}
		for text, subs := range exc {
			spec.Exceptions[text] = subs
		}
	}
	for text, subs := range rf.Exceptions {
		out := make([]rules.SubToken, len(subs))
		for i, s := range subs {
			out[i] = rules.SubToken{Orth: s.Orth, Norm: s.Norm}
		}
		spec.Exceptions[text] = out
	}
	return spec, nil
}

// Compile builds the rule set described by the file.
func (rf *RuleFile) Compile() (*rules.Set, error) {
	spec, err := rf.Spec()
	if err != nil {
		return nil, err
	}
	return rules.Compile(spec)
}

// LoadExceptions loads exception entries from a text file.
// Format: text|orth[=norm]|orth[=norm]...
// Blank lines and lines starting with # are ignored.
func LoadExceptions(path string) (map[string][]rules.SubToken, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	exc := make(map[string][]rules.SubToken)
	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "%s:%d: want text|orth[=norm]...", path, n+1)
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		subs := make([]rules.SubToken, 0, len(parts)-1)
		for _, p := range parts[1:] {
			orth, norm, _ := strings.Cut(p, "=")
			if orth == "" {
				return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "%s:%d: empty sub-token", path, n+1)
			}
			subs = append(subs, rules.SubToken{Orth: orth, Norm: norm})
		}
		exc[parts[0]] = subs
	}
	return exc, nil
}

// Run holds run settings.
type Run struct {
	Workers int    `yaml:"workers"`
	Verify  bool   `yaml:"verify"`
	HTML    bool   `yaml:"html"`
	DB      string `yaml:"db"`
	Sample  int    `yaml:"sample"`
}

// DefaultRun returns the settings used when no run file is given.
func DefaultRun() Run {
	return Run{Sample: 50}
}

// LoadRun loads run settings from YAML over DefaultRun.
func LoadRun(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, err
	}

	run := DefaultRun()
	if err := yaml.Unmarshal(data, &run); err != nil {
		return Run{}, errors.Wrapf(internalerr.ErrInvalidConfig, "%s: %v", path, err)
	}
	if run.Workers < 0 || run.Sample < 0 {
		return Run{}, errors.Wrapf(internalerr.ErrInvalidConfig, "%s: workers and sample must not be negative", path)
	}
	return run, nil
}
