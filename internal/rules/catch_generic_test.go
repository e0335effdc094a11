package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckGenericCatch(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{
			name: "specific exception is fine",
			code: `class A { void f() { try { g(); } catch (java.io.IOException e) { } } }`,
			expected: 0,
		},
		{
			name: "generic Exception",
			code: `class A { void f() { try { g(); } catch (Exception e) { } } }`,
			expected: 1,
		},
		{
			name: "qualified generic Exception",
			code: `class A { void f() { try { g(); } catch (java.lang.Exception e) { } } }`,
			expected: 1,
		},
		{
			name: "Throwable",
			code: `class A { void f() { try { g(); } catch (Throwable e) { } } }`,
			expected: 1,
		},
		{
			name: "generic in multi-catch",
			code: `class A { void f() { try { g(); } catch (java.io.IOException | RuntimeException e) { } } }`,
			expected: 1,
		},
		{
			name: "boundary annotation exempts",
			code: "class A {\n@Boundary\nvoid f() { try { g(); } catch (Exception e) { } }\n}",
			expected: 0,
		},
		{
			name: "boundary comment exempts",
			code: "class A { void f() {\ntry { g(); }\n// boundary\ncatch (Exception e) { }\n} }",
			expected: 0,
		},
		{
			name: "prose comment mentioning boundary does not exempt",
			code: "class A { void f() {\ntry { g(); }\n// crosses the service boundary\ncatch (Exception e) { }\n} }",
			expected: 1,
		},
		{
			name: "two generic catches",
			code: `class A { void f() { try { g(); } catch (Exception e) { } try { g(); } catch (Throwable e) { } } }`,
			expected: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			unit := scanSource(t, tc.code)
			violations, err := CheckGenericCatch("test.java", unit)
			require.NoError(t, err)
			assert.Len(t, violations, tc.expected)
			for _, v := range violations {
				assert.Equal(t, "generic-exception-catch", v.Rule)
			}
		})
	}
}
