package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckUtilityClass(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{
			name:     "well-formed utility class",
			code:     `public final class Utils { private Utils(){} public static int f(){return 1;} }`,
			expected: 0,
		},
		{
			name:     "missing final",
			code:     `public class Utils { private Utils(){} public static int f(){return 1;} }`,
			expected: 1,
		},
		{
			name:     "public constructor",
			code:     `public final class Utils { private Utils(){} public Utils(int x){} public static int f(){return 1;} }`,
			expected: 1,
		},
		{
			name:     "no declared constructor",
			code:     `public final class Utils { public static int f(){return 1;} }`,
			expected: 1,
		},
		{
			name:     "mutable static state",
			code:     `public final class Utils { private Utils(){} private static int counter; public static int f(){return 1;} }`,
			expected: 1,
		},
		{
			name:     "instance members disqualify",
			code:     `public class Worker { private int x; public static int f(){return 1;} }`,
			expected: 0,
		},
		{
			name:     "no static members",
			code:     `public class Plain { private int x; void f(){} }`,
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			unit := scanSource(t, tc.code)
			violations, err := CheckUtilityClass("test.java", unit)
			require.NoError(t, err)
			assert.Len(t, violations, tc.expected)
			for _, v := range violations {
				assert.Equal(t, "utility-class", v.Rule)
			}
		})
	}
}
