package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/weaver"
	"github.com/deepnoodle-ai/weaver/bundle"
	"github.com/deepnoodle-ai/weaver/transform"
	"github.com/deepnoodle-ai/weaver/transformers"
)

// stageConfig describes one phase in the pipeline configuration.
type stageConfig struct {
	Transformers []string `mapstructure:"transformers"`
	When         string   `mapstructure:"when"`
}

// pipelineConfig is the weave.yaml schema: a table of phases and the order
// in which to run them.
type pipelineConfig struct {
	Phases map[string]stageConfig `mapstructure:"phases"`
	Run    []string               `mapstructure:"run"`
}

func loadConfig(path string) (*pipelineConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg pipelineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// buildApplier turns the configuration into one composed applier. Phases
// listed under "run" but not defined under "phases" contribute nothing.
func (c *pipelineConfig) buildApplier() (transform.Applier, error) {
	table := make(map[transform.Phase][]transform.Factory, len(c.Phases))
	for name, stage := range c.Phases {
		var factories []transform.Factory
		for _, transformerName := range stage.Transformers {
			factory, ok := transformers.Lookup(transformerName)
			if !ok {
				return nil, fmt.Errorf("unknown transformer %q in phase %q (have: %s)",
					transformerName, name, strings.Join(transformers.Names(), ", "))
			}
			factories = append(factories, factory)
		}
		table[transform.Phase(name)] = factories
	}
	var opts []weaver.Option
	for _, name := range c.Run {
		pred, err := parsePredicate(c.Phases[name].When)
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", name, err)
		}
		opts = append(opts, weaver.WithPhase(table, transform.Phase(name), pred))
	}
	return weaver.Applier(opts...), nil
}

// parsePredicate parses a "when" expression: "always" (the default),
// "has-class:<name>", or "min-classes:<n>".
func parsePredicate(spec string) (transform.Predicate, error) {
	switch {
	case spec == "" || spec == "always":
		return func(*bundle.Bundle) bool { return true }, nil
	case strings.HasPrefix(spec, "has-class:"):
		name := strings.TrimPrefix(spec, "has-class:")
		return func(b *bundle.Bundle) bool {
			_, ok := b.Class(name)
			return ok
		}, nil
	case strings.HasPrefix(spec, "min-classes:"):
		n, err := strconv.Atoi(strings.TrimPrefix(spec, "min-classes:"))
		if err != nil {
			return nil, fmt.Errorf("invalid min-classes count in %q", spec)
		}
		return func(b *bundle.Bundle) bool { return b.ClassCount() >= n }, nil
	default:
		return nil, fmt.Errorf("unknown predicate %q", spec)
	}
}
