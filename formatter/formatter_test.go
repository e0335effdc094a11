package formatter

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/eigengo/quality/internal/types"
)

func TestSortIsDeterministic(t *testing.T) {
	violations := []tt.Violation{
		{Filename: "b.java", Line: 3, Rule: "final-field"},
		{Filename: "a.java", Line: 10, Rule: "utility-class"},
		{Filename: "a.java", Line: 10, Rule: "naming-convention"},
		{Filename: "a.java", Line: 2, Rule: "final-field"},
		{Filename: "b.java", Line: 1, Rule: "naming-convention"},
	}

	expected := []tt.Violation{
		{Filename: "a.java", Line: 2, Rule: "final-field"},
		{Filename: "a.java", Line: 10, Rule: "naming-convention"},
		{Filename: "a.java", Line: 10, Rule: "utility-class"},
		{Filename: "b.java", Line: 1, Rule: "naming-convention"},
		{Filename: "b.java", Line: 3, Rule: "final-field"},
	}

	// ordering must not depend on the order rules produced results
	for i := 0; i < 10; i++ {
		shuffled := make([]tt.Violation, len(violations))
		copy(shuffled, violations)
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		Sort(shuffled)
		assert.Equal(t, expected, shuffled)
	}
}

func TestText(t *testing.T) {
	violations := []tt.Violation{
		{
			Rule: "naming-convention", Severity: tt.SeverityError,
			Filename: "a.java", Line: 2,
			Message: `type name "fooBar" should be UpperCamelCase`,
		},
		{
			Rule: "final-field", Severity: tt.SeverityWarning,
			Filename: "a.java", Line: 3,
			Message: `instance field "name" should be declared final`,
		},
	}

	out := Text(violations)
	assert.Equal(t,
		"a.java:2: [error] naming-convention: type name \"fooBar\" should be UpperCamelCase\n"+
			"a.java:3: [warning] final-field: instance field \"name\" should be declared final\n",
		out)
}

func TestFilter(t *testing.T) {
	violations := []tt.Violation{
		{Rule: "a", Severity: tt.SeverityInfo},
		{Rule: "b", Severity: tt.SeverityWarning},
		{Rule: "c", Severity: tt.SeverityError},
	}

	assert.Len(t, Filter(violations, tt.SeverityInfo), 3)
	assert.Len(t, Filter(violations, tt.SeverityWarning), 2)
	assert.Len(t, Filter(violations, tt.SeverityError), 1)
}

func TestJSONGroupsByFile(t *testing.T) {
	violations := []tt.Violation{
		{Rule: "a", Severity: tt.SeverityError, Filename: "x.java", Line: 1, Message: "m1"},
		{Rule: "b", Severity: tt.SeverityInfo, Filename: "y.java", Line: 2, Message: "m2"},
		{Rule: "c", Severity: tt.SeverityWarning, Filename: "x.java", Line: 3, Message: "m3"},
	}

	data, err := JSON(violations)
	require.NoError(t, err)

	var decoded map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded["x.java"], 2)
	assert.Len(t, decoded["y.java"], 1)
	assert.Equal(t, "error", decoded["x.java"][0]["severity"])
}

func TestPrettyIncludesSnippet(t *testing.T) {
	snippet := &SourceCode{Lines: []string{
		"class fooBar {",
		"    private String name;",
		"}",
	}}
	violations := []tt.Violation{
		{
			Rule: "final-field", Severity: tt.SeverityWarning,
			Filename: "a.java", Line: 2,
			Message:    `instance field "name" should be declared final`,
			Suggestion: "private final String name;",
		},
	}

	out := Pretty(violations, snippet)
	assert.Contains(t, out, "final-field")
	assert.Contains(t, out, "a.java:2")
	assert.Contains(t, out, "private String name;")
	assert.Contains(t, out, "Suggestion:")
}
