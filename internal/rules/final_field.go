package rules

import (
	"fmt"

	"github.com/eigengo/quality/internal/java"
	tt "github.com/eigengo/quality/internal/types"
)

// CheckFinalFields flags non-static instance fields of classes that are
// not declared final. The guide treats immutable fields as a preference,
// so this rule ships at warning severity.
func CheckFinalFields(filename string, unit *java.SourceUnit) ([]tt.Violation, error) {
	var violations []tt.Violation

	for i := range unit.Decls {
		d := &unit.Decls[i]
		if d.Kind != java.KindField || d.Modifiers.Has(java.ModStatic) || d.Modifiers.Has(java.ModFinal) {
			continue
		}
		// interface fields are implicitly static final
		if enc := unit.EnclosingType(i); enc >= 0 && unit.Decls[enc].Type != "class" {
			continue
		}
		violations = append(violations, tt.Violation{
			Rule:       "final-field",
			Filename:   filename,
			Line:       d.Line,
			Message:    fmt.Sprintf("instance field %q should be declared final", d.Name),
			Suggestion: fmt.Sprintf("private final %s %s;", d.Type, d.Name),
		})
	}

	return violations, nil
}
