package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigengo/quality/formatter"
	tt "github.com/eigengo/quality/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewWithMissingConfig(t *testing.T) {
	engine, err := New(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NotNil(t, engine)
}

func TestNewWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, ".qlint.yaml", `name: quality
rules:
  final-field:
    enabled: false
  naming-convention:
    severity: warning
`)

	engine, err := New(cfg)
	require.NoError(t, err)

	violations, err := engine.RunSource("test.java", []byte(`class fooBar { private String name; }`))
	require.NoError(t, err)

	for _, v := range violations {
		assert.NotEqual(t, "final-field", v.Rule)
		if v.Rule == "naming-convention" {
			assert.Equal(t, tt.SeverityWarning, v.Severity)
		}
	}
}

func TestNewWithUnknownRule(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, ".qlint.yaml", `name: quality
rules:
  made-up-rule:
    severity: error
`)

	_, err := New(cfg)
	require.Error(t, err)
	var unknown *tt.UnknownRuleError
	assert.ErrorAs(t, err, &unknown)
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Bad.java", `class bad { private String name; }`)
	writeFile(t, dir, "Good.java", `class Good { private final String name; }`)
	writeFile(t, dir, "notes.txt", `not java`)

	engine, err := New("")
	require.NoError(t, err)

	violations, err := ProcessFiles(context.Background(), nil, engine, []string{dir}, ProcessFile)
	require.NoError(t, err)

	files := make(map[string]bool)
	for _, v := range violations {
		files[filepath.Base(v.Filename)] = true
	}
	assert.True(t, files["Bad.java"])
	assert.False(t, files["Good.java"])
	assert.False(t, files["notes.txt"])
}

func TestProcessFilesMalformedIsolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Broken.java", `class A { void f() {`)
	writeFile(t, dir, "Fine.java", `class fooBar { }`)

	engine, err := New("")
	require.NoError(t, err)

	violations, err := ProcessFiles(context.Background(), nil, engine, []string{dir}, ProcessFile)
	require.NoError(t, err)

	var malformed, naming int
	for _, v := range violations {
		switch v.Rule {
		case "malformed-source":
			malformed++
			assert.Equal(t, "Broken.java", filepath.Base(v.Filename))
		case "naming-convention":
			naming++
			assert.Equal(t, "Fine.java", filepath.Base(v.Filename))
		}
	}
	// one malformed violation, and the broken file does not stop the batch
	assert.Equal(t, 1, malformed)
	assert.Equal(t, 1, naming)
}

func TestProcessFilesWorkerErrorBecomesViolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.java", `class A { }`)
	writeFile(t, dir, "B.java", `class fooBar { }`)

	engine, err := New("")
	require.NoError(t, err)

	failing := func(e LintEngine, path string) ([]tt.Violation, error) {
		if filepath.Base(path) == "A.java" {
			return nil, fmt.Errorf("read failed")
		}
		return ProcessFile(e, path)
	}

	violations, err := ProcessFiles(context.Background(), nil, engine, []string{dir}, failing)
	require.NoError(t, err)

	var access, naming int
	for _, v := range violations {
		switch v.Rule {
		case "file-access":
			access++
			assert.Equal(t, tt.SeverityError, v.Severity)
			assert.Equal(t, "A.java", filepath.Base(v.Filename))
			assert.Contains(t, v.Message, "read failed")
		case "naming-convention":
			naming++
		}
	}
	// the failed file is reported, the rest of the batch still runs
	assert.Equal(t, 1, access)
	assert.Equal(t, 1, naming)
}

func TestReportOrderIndependentOfCompletion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.java", `class a { }`)
	writeFile(t, dir, "B.java", `class b { }`)
	writeFile(t, dir, "C.java", `class c { }`)

	engine, err := New("")
	require.NoError(t, err)

	var previous []tt.Violation
	for i := 0; i < 3; i++ {
		violations, err := ProcessFiles(context.Background(), nil, engine, []string{dir}, ProcessFile)
		require.NoError(t, err)
		formatter.Sort(violations)

		if previous != nil {
			assert.Equal(t, previous, violations)
		}
		previous = violations
	}
}

func TestProcessSource(t *testing.T) {
	engine, err := New("")
	require.NoError(t, err)

	violations, err := ProcessSource(engine, "test.java", []byte(`class fooBar { }`))
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "naming-convention", violations[0].Rule)
}
