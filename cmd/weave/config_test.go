package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/weaver/bundle"
	"github.com/deepnoodle-ai/weaver/classfile"
	"github.com/deepnoodle-ai/weaver/transform"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weave.yaml")
	require.Nil(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func encodedClass(t *testing.T, name string) []byte {
	t.Helper()
	data, err := classfile.Encode(&classfile.Class{Name: name})
	require.Nil(t, err)
	return data
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
phases:
  instrumentation:
    transformers: [entry-trace]
    when: has-class:acme/Greeter
  cleanup:
    transformers: [strip-debug]
run:
  - instrumentation
  - cleanup
`)
	cfg, err := loadConfig(path)
	require.Nil(t, err)
	require.Equal(t, []string{"instrumentation", "cleanup"}, cfg.Run)
	require.Equal(t, []string{"entry-trace"}, cfg.Phases["instrumentation"].Transformers)
	require.Equal(t, "has-class:acme/Greeter", cfg.Phases["instrumentation"].When)
}

func TestBuildApplierUnknownTransformer(t *testing.T) {
	cfg := &pipelineConfig{
		Phases: map[string]stageConfig{
			"broken": {Transformers: []string{"nope"}},
		},
		Run: []string{"broken"},
	}
	_, err := cfg.buildApplier()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), `unknown transformer "nope"`)
}

func TestBuildApplierRunsConfiguredPhases(t *testing.T) {
	cfg := &pipelineConfig{
		Phases: map[string]stageConfig{
			"cleanup": {Transformers: []string{"strip-debug"}},
		},
		// Unconfigured phases in the run list are harmless no-ops.
		Run: []string{"cleanup", "missing"},
	}
	applier, err := cfg.buildApplier()
	require.Nil(t, err)

	data, err := classfile.Encode(&classfile.Class{Name: "acme/A", SourceFile: "a.w"})
	require.Nil(t, err)
	in := bundle.New(bundle.Params{
		Classes: map[string]*bundle.Class{"acme/A": bundle.NewClass("acme/A", data)},
	})

	out, err := applier.Apply(in, nil)
	require.Nil(t, err)
	cls, ok := out.Class("acme/A")
	require.True(t, ok)
	decoded, err := classfile.Parse(cls.Bytecode())
	require.Nil(t, err)
	require.Empty(t, decoded.SourceFile)
}

func TestBuildApplierEmptyConfigIsIdentity(t *testing.T) {
	applier, err := (&pipelineConfig{}).buildApplier()
	require.Nil(t, err)
	require.Equal(t, transform.Identity, applier)
}

func TestParsePredicate(t *testing.T) {
	b := bundle.New(bundle.Params{
		Classes: map[string]*bundle.Class{
			"acme/A": bundle.NewClass("acme/A", encodedClass(t, "acme/A")),
		},
	})

	tests := []struct {
		spec string
		want bool
	}{
		{"", true},
		{"always", true},
		{"has-class:acme/A", true},
		{"has-class:acme/B", false},
		{"min-classes:1", true},
		{"min-classes:2", false},
	}
	for _, tt := range tests {
		pred, err := parsePredicate(tt.spec)
		require.Nil(t, err, tt.spec)
		require.Equal(t, tt.want, pred(b), tt.spec)
	}
}

func TestParsePredicateErrors(t *testing.T) {
	_, err := parsePredicate("min-classes:many")
	require.NotNil(t, err)

	_, err = parsePredicate("whenever")
	require.NotNil(t, err)
}
