package conformance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuite(t *testing.T) {
	data := []byte(`
name: sample
description: a small suite
parse:
  - name: one day
    input: "P1D"
    want: "P1D"
compare:
  - name: equal zeros
    lhs: "PT0S"
    rhs: "P0D"
    want: 0
`)
	s, err := ParseSuite(data)
	require.NoError(t, err)

	assert.Equal(t, "sample", s.Name)
	assert.Equal(t, "a small suite", s.Description)
	require.Len(t, s.Parse, 1)
	assert.Equal(t, "P1D", s.Parse[0].Input)
	require.Len(t, s.Compare, 1)
	assert.Equal(t, 0, s.Compare[0].Want)
}

func TestParseSuiteRejectsUnknownField(t *testing.T) {
	data := []byte(`
name: sample
parse:
  - name: one day
    input: "P1D"
    wnat: "P1D"
`)
	_, err := ParseSuite(data)
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Message, "wnat")
}

func TestParseSuiteRequiresName(t *testing.T) {
	data := []byte(`
parse:
  - name: one day
    input: "P1D"
    want: "P1D"
`)
	_, err := ParseSuite(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suite name is required")
}

func TestParseSuiteRequiresCases(t *testing.T) {
	_, err := ParseSuite([]byte("name: empty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one case")
}

func TestLoadSuite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.yaml")
	data := []byte(`
name: sample
arithmetic:
  - name: double a day
    op: scale
    lhs: "P1D"
    factor: 2
    want: "P2D"
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := LoadSuite(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name)
	require.Len(t, s.Arithmetic, 1)
	require.NotNil(t, s.Arithmetic[0].Factor)
	assert.Equal(t, 2.0, *s.Arithmetic[0].Factor)
}

func TestLoadSuiteMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	_, err := LoadSuite(path)
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, path, le.File)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadSuiteNamesFileOnParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parse: []\n"), 0644))

	_, err := LoadSuite(path)
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, path, le.File)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	first := []byte(`
name: first
parse:
  - name: one day
    input: "P1D"
    want: "P1D"
`)
	second := []byte(`
name: second
compare:
  - name: day below week
    lhs: "P1D"
    rhs: "P1W"
    want: -1
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.yaml"), first, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "second.yml"), second, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	suites, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, suites, 2)
	assert.Equal(t, "first", suites[0].Name)
	assert.Equal(t, "second", suites[1].Name)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
}

func TestLoadErrorFormat(t *testing.T) {
	withLine := &LoadError{File: "cases.yaml", Line: 12, Message: "bad value"}
	assert.Equal(t, "cases.yaml:12: bad value", withLine.Error())

	withoutLine := &LoadError{File: "cases.yaml", Message: "bad value"}
	assert.Equal(t, "cases.yaml: bad value", withoutLine.Error())

	cause := errors.New("root cause")
	wrapped := &LoadError{Message: "outer", Cause: cause}
	assert.Equal(t, cause, errors.Unwrap(wrapped))
}
