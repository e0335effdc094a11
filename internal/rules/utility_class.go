package rules

import (
	"fmt"

	"github.com/eigengo/quality/internal/java"
	tt "github.com/eigengo/quality/internal/types"
)

// CheckUtilityClass verifies the shape of utility classes. A class whose
// fields and methods are all static must be final, must declare a
// private constructor, and must not hold mutable static state.
func CheckUtilityClass(filename string, unit *java.SourceUnit) ([]tt.Violation, error) {
	var violations []tt.Violation
	add := func(line int, msg string) {
		violations = append(violations, tt.Violation{
			Rule:     "utility-class",
			Filename: filename,
			Line:     line,
			Message:  msg,
		})
	}

	for i := range unit.Decls {
		d := &unit.Decls[i]
		if d.Kind != java.KindType || d.Type != "class" {
			continue
		}

		var (
			staticMembers int
			constructors  []int
			isUtility     = true
		)
		members := unit.Members(i)
		for _, m := range members {
			member := &unit.Decls[m]
			switch member.Kind {
			case java.KindField, java.KindMethod:
				if member.Modifiers.Has(java.ModStatic) {
					staticMembers++
				} else {
					isUtility = false
				}
			case java.KindConstructor:
				constructors = append(constructors, m)
			}
		}
		if !isUtility || staticMembers == 0 {
			continue
		}

		if !d.Modifiers.Has(java.ModFinal) {
			add(d.Line, fmt.Sprintf("utility class %q must be final", d.Name))
		}
		if len(constructors) == 0 {
			add(d.Line, fmt.Sprintf("utility class %q must declare a private constructor", d.Name))
		}
		for _, c := range constructors {
			ctor := &unit.Decls[c]
			if !ctor.Modifiers.Has(java.ModPrivate) {
				add(ctor.Line, fmt.Sprintf("utility class %q must not expose a public constructor", d.Name))
			}
		}
		for _, m := range members {
			member := &unit.Decls[m]
			if member.Kind == java.KindField &&
				member.Modifiers.Has(java.ModStatic) && !member.Modifiers.Has(java.ModFinal) {
				add(member.Line, fmt.Sprintf("utility class %q must not hold mutable state in %q", d.Name, member.Name))
			}
		}
	}

	return violations, nil
}
