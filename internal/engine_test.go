package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/eigengo/quality/internal/types"
)

func TestNewEngineUnknownRule(t *testing.T) {
	_, err := NewEngine(map[string]tt.ConfigRule{
		"no-such-rule": {},
	})
	require.Error(t, err)
	var unknown *tt.UnknownRuleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "no-such-rule", unknown.Rule)
}

func TestEngineRunSource(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	src := []byte(`class fooBar {
    private String name;
}`)
	violations, err := engine.RunSource("test.java", src)
	require.NoError(t, err)

	rules := make(map[string]int)
	for _, v := range violations {
		rules[v.Rule]++
	}
	assert.Equal(t, 1, rules["naming-convention"])
	assert.Equal(t, 1, rules["final-field"])
}

func TestEngineSeverityConfiguration(t *testing.T) {
	errSev := tt.SeverityError
	engine, err := NewEngine(map[string]tt.ConfigRule{
		"final-field": {Severity: &errSev},
	})
	require.NoError(t, err)

	violations, err := engine.RunSource("test.java", []byte(`class A { private String name; }`))
	require.NoError(t, err)

	var found bool
	for _, v := range violations {
		if v.Rule == "final-field" {
			found = true
			assert.Equal(t, tt.SeverityError, v.Severity)
		}
	}
	assert.True(t, found)
}

func TestEngineDisabledRule(t *testing.T) {
	disabled := false
	engine, err := NewEngine(map[string]tt.ConfigRule{
		"final-field": {Enabled: &disabled},
	})
	require.NoError(t, err)

	violations, err := engine.RunSource("test.java", []byte(`class A { private String name; }`))
	require.NoError(t, err)

	for _, v := range violations {
		assert.NotEqual(t, "final-field", v.Rule)
	}
}

func TestEngineIgnoreRule(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.IgnoreRule("naming-convention")

	violations, err := engine.RunSource("test.java", []byte(`class fooBar { }`))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestEngineMalformedSource(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	violations, err := engine.RunSource("bad.java", []byte(`class A { void f() {`))
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "malformed-source", violations[0].Rule)
	assert.Equal(t, tt.SeverityError, violations[0].Severity)
	assert.Equal(t, "bad.java", violations[0].Filename)
}

func TestEngineNolintSuppression(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	src := []byte(`class A {
    // NOLINT(final-field)
    private String name;
}`)
	violations, err := engine.RunSource("test.java", src)
	require.NoError(t, err)
	for _, v := range violations {
		assert.NotEqual(t, "final-field", v.Rule)
	}
}

func TestEngineIdempotence(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	src := []byte(`class fooBar {
    private String name;
    public void f(String s) { use(s); }
}`)

	first, err := engine.RunSource("test.java", src)
	require.NoError(t, err)
	second, err := engine.RunSource("test.java", src)
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
}

func TestDefaultRuleSeverities(t *testing.T) {
	defaults := DefaultRuleSeverities()
	assert.Equal(t, tt.SeverityError, defaults["naming-convention"])
	assert.Equal(t, tt.SeverityWarning, defaults["final-field"])
	assert.Equal(t, tt.SeverityInfo, defaults["fail-fast-null-check"])
	assert.Equal(t, tt.SeverityError, defaults["generic-exception-catch"])
	assert.Equal(t, tt.SeverityError, defaults["utility-class"])
}
