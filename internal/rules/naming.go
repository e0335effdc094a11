package rules

import (
	"fmt"
	"regexp"

	"github.com/eigengo/quality/internal/java"
	tt "github.com/eigengo/quality/internal/types"
)

var (
	upperCamelPattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	lowerCamelPattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	upperSnakePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`)
	upperStartPattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*$`)
)

// CheckNaming verifies the guide's naming patterns: type and enum names
// are UpperCamelCase, enum constants start upper-case, methods and
// fields are lowerCamelCase, and constants (static final fields) are
// UPPER_SNAKE_CASE.
func CheckNaming(filename string, unit *java.SourceUnit) ([]tt.Violation, error) {
	var violations []tt.Violation
	add := func(line int, msg string) {
		violations = append(violations, tt.Violation{
			Rule:     "naming-convention",
			Filename: filename,
			Line:     line,
			Message:  msg,
		})
	}

	for i := range unit.Decls {
		d := &unit.Decls[i]
		switch d.Kind {
		case java.KindType, java.KindEnum:
			if !upperCamelPattern.MatchString(d.Name) {
				add(d.Line, fmt.Sprintf("%s name %q should be UpperCamelCase", d.Kind, d.Name))
			}
		case java.KindEnumConstant:
			if !upperStartPattern.MatchString(d.Name) {
				add(d.Line, fmt.Sprintf("enum constant %q should start with an upper-case letter", d.Name))
			}
		case java.KindMethod:
			if !lowerCamelPattern.MatchString(d.Name) {
				add(d.Line, fmt.Sprintf("method name %q should be lowerCamelCase", d.Name))
			}
		case java.KindField:
			// interface fields are implicitly static final
			constant := d.Modifiers.Has(java.ModStatic) && d.Modifiers.Has(java.ModFinal)
			if enc := unit.EnclosingType(i); enc >= 0 && unit.Decls[enc].Type == "interface" {
				constant = true
			}
			if constant {
				if !upperSnakePattern.MatchString(d.Name) {
					add(d.Line, fmt.Sprintf("constant %q should be UPPER_SNAKE_CASE", d.Name))
				}
			} else if !lowerCamelPattern.MatchString(d.Name) {
				add(d.Line, fmt.Sprintf("field name %q should be lowerCamelCase", d.Name))
			}
		}
	}

	return violations, nil
}
