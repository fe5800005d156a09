package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/deepnoodle-ai/weaver/bundle"
	"github.com/deepnoodle-ai/weaver/classfile"
)

const classExt = ".wclass"

// loadBundle reads a bundle from a directory: every *.wclass file becomes a
// class keyed by its declared name, everything else a resource keyed by its
// relative path. Per-file failures are collected so a bad bundle reports
// all of its problems at once.
func loadBundle(dir string) (*bundle.Bundle, error) {
	classes := map[string]*bundle.Class{}
	resources := map[string][]byte{}
	var errs *multierror.Error

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierror.Append(errs, err)
			return nil
		}
		if !strings.HasSuffix(rel, classExt) {
			resources[filepath.ToSlash(rel)] = data
			return nil
		}
		cls, err := classfile.Parse(data)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", rel, err))
			return nil
		}
		if _, exists := classes[cls.Name]; exists {
			errs = multierror.Append(errs, fmt.Errorf("%s: duplicate class %q", rel, cls.Name))
			return nil
		}
		classes[cls.Name] = bundle.NewClass(cls.Name, data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return bundle.New(bundle.Params{Classes: classes, Resources: resources}), nil
}

// writeBundle writes a bundle to a directory, mirroring the layout read by
// loadBundle. Class names may contain slashes, which become subdirectories.
// Names come from decoded class data, so paths that would escape the output
// directory are rejected.
func writeBundle(b *bundle.Bundle, dir string) error {
	for _, name := range b.ClassNames() {
		cls, _ := b.Class(name)
		path, err := containedPath(dir, name+classExt)
		if err != nil {
			return err
		}
		if err := writeFile(path, cls.Bytecode()); err != nil {
			return err
		}
	}
	for _, name := range b.ResourceNames() {
		data, _ := b.Resource(name)
		path, err := containedPath(dir, name)
		if err != nil {
			return err
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
	}
	return nil
}

// containedPath joins name onto dir and verifies the result stays under dir.
func containedPath(dir, name string) (string, error) {
	path := filepath.Join(dir, filepath.FromSlash(name))
	if !strings.HasPrefix(path, filepath.Clean(dir)+string(filepath.Separator)) {
		return "", fmt.Errorf("name %q escapes output directory", name)
	}
	return path, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
