package formatter

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	tt "github.com/eigengo/quality/internal/types"
)

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a
// SourceCode struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return &SourceCode{Lines: strings.Split(string(content), "\n")}, nil
}

// Sort orders violations deterministically: file path, then line, then
// rule id. Output is reproducible regardless of rule evaluation order.
func Sort(violations []tt.Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
}

// Filter keeps violations at or above the given severity.
func Filter(violations []tt.Violation, threshold tt.Severity) []tt.Violation {
	kept := make([]tt.Violation, 0, len(violations))
	for _, v := range violations {
		if v.Severity >= threshold {
			kept = append(kept, v)
		}
	}
	return kept
}

// Text renders violations one per line:
//
//	<path>:<line>: [<severity>] <rule-id>: <message>
func Text(violations []tt.Violation) string {
	var builder strings.Builder
	for _, v := range violations {
		fmt.Fprintf(&builder, "%s:%d: [%s] %s: %s\n",
			v.Filename, v.Line, v.Severity, v.Rule, v.Message)
	}
	return builder.String()
}

// JSON renders violations grouped by file path.
func JSON(violations []tt.Violation) ([]byte, error) {
	byFile := make(map[string][]tt.Violation)
	for _, v := range violations {
		byFile[v.Filename] = append(byFile[v.Filename], v)
	}
	return json.Marshal(byFile)
}
