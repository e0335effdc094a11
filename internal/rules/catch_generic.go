package rules

import (
	"fmt"
	"strings"

	"github.com/eigengo/quality/internal/java"
	tt "github.com/eigengo/quality/internal/types"
)

var genericCatchTypes = map[string]bool{
	"Exception":        true,
	"RuntimeException": true,
	"Throwable":        true,
	"Error":            true,
}

// CheckGenericCatch flags catch clauses typed as one of the broadest
// exception categories. A site designated as a top-level error boundary
// (an @Boundary-style annotation on the enclosing method, or a boundary
// marker comment on the catch line) is exempt.
func CheckGenericCatch(filename string, unit *java.SourceUnit) ([]tt.Violation, error) {
	var violations []tt.Violation

	for i := range unit.Decls {
		d := &unit.Decls[i]
		if d.Kind != java.KindMethod && d.Kind != java.KindConstructor {
			continue
		}
		for _, clause := range d.Catches {
			if clause.Boundary {
				continue
			}
			for _, typ := range clause.Types {
				base := strings.TrimPrefix(typ, "java.lang.")
				if !genericCatchTypes[base] {
					continue
				}
				violations = append(violations, tt.Violation{
					Rule:     "generic-exception-catch",
					Filename: filename,
					Line:     clause.Line,
					Message:  fmt.Sprintf("catch of generic %s; catch the most specific exception instead", base),
					Note:     "mark a deliberate top-level handler with an @Boundary annotation or a '// boundary' comment",
				})
			}
		}
	}

	return violations, nil
}
