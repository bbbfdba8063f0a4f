package config

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cognicore/ruletok/pkg/ruletok/ingest"
	"github.com/cognicore/ruletok/pkg/ruletok/rules"
	"github.com/cognicore/ruletok/pkg/ruletok/rules/english"
	"github.com/cognicore/ruletok/pkg/ruletok/sentence"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	RulesPath string
	RunPath   string
	// Override, when set, adjusts the run settings after they are loaded.
	Override func(*Run)
}

// Components holds all loaded configuration components
type Components struct {
	Rules    *rules.Set
	Pipeline *ingest.Pipeline
	Run      Run
}

// Load reads all configuration files and returns initialized components.
// Without a rules path the English defaults are used.
func (l *Loader) Load(logger *zap.Logger) (*Components, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	comp := &Components{Run: DefaultRun()}

	if l.RunPath != "" {
		run, err := LoadRun(l.RunPath)
		if err != nil {
			return nil, errors.Wrap(err, "load run settings")
		}
		comp.Run = run
	}
	if l.Override != nil {
		l.Override(&comp.Run)
	}

	if l.RulesPath != "" {
		rf, err := LoadRules(l.RulesPath)
		if err != nil {
			return nil, errors.Wrap(err, "load rules")
		}
		if comp.Rules, err = rf.Compile(); err != nil {
			return nil, errors.Wrapf(err, "compile %s", l.RulesPath)
		}
	} else {
		var err error
		if comp.Rules, err = english.Rules(); err != nil {
			return nil, errors.Wrap(err, "compile english rules")
		}
	}

	st := comp.Rules.Stats()
	logger.Debug("rules compiled",
		zap.String("source", rulesSource(l.RulesPath)),
		zap.Int("prefixes", st.Prefixes),
		zap.Int("suffixes", st.Suffixes),
		zap.Int("infixes", st.Infixes),
		zap.Int("exceptions", st.Exceptions))

	orch := sentence.New(comp.Rules, sentence.Options{
		Workers: comp.Run.Workers,
		Verify:  comp.Run.Verify,
		Logger:  logger.Named("sentence"),
	})
	comp.Pipeline = ingest.NewPipeline(orch, ingest.Options{
		HTML:   comp.Run.HTML,
		Logger: logger.Named("ingest"),
	})
	return comp, nil
}

func rulesSource(path string) string {
	if path == "" {
		return BaseEnglish
	}
	return path
}
