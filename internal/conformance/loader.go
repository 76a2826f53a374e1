package conformance

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseSuite parses a conformance suite from YAML bytes.
// Unknown fields are rejected so typos in case files fail loudly.
func ParseSuite(data []byte) (*Suite, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Suite
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		le := &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
		var te *yaml.TypeError
		if errors.As(err, &te) && len(te.Errors) > 0 {
			le.Message = te.Errors[0]
		}
		return nil, le
	}

	if s.Name == "" {
		return nil, &LoadError{Message: "suite name is required"}
	}
	if len(s.Parse)+len(s.Arithmetic)+len(s.Compare)+len(s.Calendar) == 0 {
		return nil, &LoadError{Message: "suite must have at least one case"}
	}

	return &s, nil
}

// LoadSuite loads a conformance suite from a file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	s, err := ParseSuite(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{
			File:    path,
			Message: err.Error(),
		}
	}

	return s, nil
}

// LoadDir loads all conformance suites from a directory.
// Only files with .yaml or .yml extensions are loaded.
func LoadDir(dir string) ([]*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	var suites []*Suite
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		s, err := LoadSuite(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}

	return suites, nil
}
