package rules

import (
	"fmt"

	"github.com/eigengo/quality/internal/java"
	tt "github.com/eigengo/quality/internal/types"
)

// CheckFailFastNullChecks flags public methods and constructors whose
// reference-typed parameters are not guarded by the fail-fast idiom
//
//	if (param == null) throw new IllegalArgumentException(...);
//
// This is a structural heuristic: it looks for a conditional referencing
// the parameter and null that leads to a throw or return, and also
// accepts Objects.requireNonNull. It cannot verify intent, so it ships
// at info severity.
func CheckFailFastNullChecks(filename string, unit *java.SourceUnit) ([]tt.Violation, error) {
	var violations []tt.Violation

	for i := range unit.Decls {
		d := &unit.Decls[i]
		if d.Kind != java.KindMethod && d.Kind != java.KindConstructor {
			continue
		}
		if !d.Modifiers.Has(java.ModPublic) || len(d.Body) == 0 {
			continue
		}
		for _, p := range d.Params {
			if !p.Reference || hasNullGuard(d.Body, p.Name) {
				continue
			}
			violations = append(violations, tt.Violation{
				Rule:     "fail-fast-null-check",
				Filename: filename,
				Line:     d.Line,
				Message: fmt.Sprintf("public %s %q does not fail fast on parameter %q",
					d.Kind, d.Name, p.Name),
				Suggestion: fmt.Sprintf(
					"if (%s == null) throw new IllegalArgumentException(\"The '%s' argument must not be null.\");",
					p.Name, p.Name),
				Note: "heuristic check; suppress with NOLINT if the guard lives elsewhere",
			})
		}
	}

	return violations, nil
}

// hasNullGuard reports whether the body contains a guard for the given
// parameter: a conditional comparing it against null followed by a
// throw/return, or a requireNonNull call taking it.
func hasNullGuard(body []java.Token, param string) bool {
	for j := 0; j < len(body); j++ {
		tok := body[j]

		if tok.Type == java.TokenIdent && tok.Value == "requireNonNull" {
			if end := matchParen(body, j+1); end > 0 && mentions(body[j+2:end], param) {
				return true
			}
		}

		if tok.Type == java.TokenKeyword && tok.Value == "if" {
			end := matchParen(body, j+1)
			if end < 0 {
				continue
			}
			cond := body[j+2 : end]
			if mentions(cond, param) && mentions(cond, "null") && guardFailsFast(body[end+1:]) {
				return true
			}
		}
	}
	return false
}

// matchParen returns the index of the ')' matching an opening '(' at
// index start, or -1.
func matchParen(body []java.Token, start int) int {
	if start >= len(body) || body[start].Value != "(" {
		return -1
	}
	depth := 0
	for j := start; j < len(body); j++ {
		if body[j].Type != java.TokenPunct {
			continue
		}
		switch body[j].Value {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func mentions(toks []java.Token, name string) bool {
	for _, tok := range toks {
		if (tok.Type == java.TokenIdent || tok.Type == java.TokenKeyword) && tok.Value == name {
			return true
		}
	}
	return false
}

// guardFailsFast reports whether the statement (or block) following a
// guard condition throws or returns.
func guardFailsFast(rest []java.Token) bool {
	if len(rest) == 0 {
		return false
	}
	if rest[0].Type == java.TokenPunct && rest[0].Value == "{" {
		depth := 0
		for _, tok := range rest {
			if tok.Type == java.TokenPunct {
				switch tok.Value {
				case "{":
					depth++
				case "}":
					depth--
					if depth == 0 {
						return false
					}
				}
			}
			if tok.Type == java.TokenKeyword && (tok.Value == "throw" || tok.Value == "return") {
				return true
			}
		}
		return false
	}
	for _, tok := range rest {
		if tok.Type == java.TokenPunct && tok.Value == ";" {
			return false
		}
		if tok.Type == java.TokenKeyword && (tok.Value == "throw" || tok.Value == "return") {
			return true
		}
	}
	return false
}
