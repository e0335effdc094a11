package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFinalFields(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{
			name:     "non-final instance field",
			code:     `class A { private String name; }`,
			expected: 1,
		},
		{
			name:     "final instance field",
			code:     `class A { private final String name; }`,
			expected: 0,
		},
		{
			name:     "static field is exempt",
			code:     `class A { private static String shared; }`,
			expected: 0,
		},
		{
			name:     "interface fields are implicitly final",
			code:     `interface A { int LIMIT = 3; }`,
			expected: 0,
		},
		{
			name:     "two mutable fields",
			code:     `class A { int a; int b; }`,
			expected: 2,
		},
		{
			name:     "multi-declarator field without initializer",
			code:     `class A { int a, b; }`,
			expected: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			unit := scanSource(t, tc.code)
			violations, err := CheckFinalFields("test.java", unit)
			require.NoError(t, err)
			assert.Len(t, violations, tc.expected)
			for _, v := range violations {
				assert.Equal(t, "final-field", v.Rule)
			}
		})
	}
}
