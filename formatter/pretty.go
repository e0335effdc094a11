package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	tt "github.com/eigengo/quality/internal/types"
)

const tabWidth = 8

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	infoStyle       = color.New(color.FgHiBlue, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

// Pretty formats violations of a single file into a human-readable,
// colored report with the offending source line underlined.
func Pretty(violations []tt.Violation, snippet *SourceCode) string {
	var builder strings.Builder
	for _, v := range violations {
		builder.WriteString(buildViolation(v, snippet))
	}
	return builder.String()
}

func buildViolation(v tt.Violation, snippet *SourceCode) string {
	maxLineNumWidth := len(fmt.Sprintf("%d", v.Line))
	padding := strings.Repeat(" ", maxLineNumWidth+1)

	var builder strings.Builder
	builder.WriteString(header(v, maxLineNumWidth))
	builder.WriteString(codeSnippet(v, snippet, maxLineNumWidth, padding))
	if v.Suggestion != "" {
		builder.WriteString(suggestion(v, padding, maxLineNumWidth))
	}
	if v.Note != "" {
		builder.WriteString(suggestionStyle.Sprint("Note: "))
		builder.WriteString(lineStyle.Sprintf("%s\n", v.Note))
	}
	builder.WriteByte('\n')
	return builder.String()
}

func header(v tt.Violation, maxLineNumWidth int) string {
	var endString string
	switch v.Severity {
	case tt.SeverityError:
		endString = errorStyle.Sprint("error: ")
	case tt.SeverityWarning:
		endString = warningStyle.Sprint("warning: ")
	default:
		endString = infoStyle.Sprint("info: ")
	}

	endString += ruleStyle.Sprintf("%s\n", v.Rule)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d", v.Filename, v.Line)
	if v.Column > 0 {
		endString += fileStyle.Sprintf(":%d", v.Column)
	}
	endString += "\n"
	return endString
}

func codeSnippet(v tt.Violation, snippet *SourceCode, maxLineNumWidth int, padding string) string {
	if snippet == nil || v.Line-1 < 0 || v.Line > len(snippet.Lines) {
		return lineStyle.Sprintf("%s= ", padding) + messageStyle.Sprintf("%s\n", v.Message)
	}

	line := snippet.Lines[v.Line-1]
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]

	var endString string
	endString = lineStyle.Sprintf("%s|\n", padding)
	endString += lineStyle.Sprintf("%*d | %s\n", maxLineNumWidth, v.Line, trimmed)
	endString += lineStyle.Sprintf("%s| ", padding)

	underlineStart := 0
	if v.Column > 0 {
		underlineStart = visualColumn(line, v.Column) - visualColumn(line, len(indent)+1)
		if underlineStart < 0 {
			underlineStart = 0
		}
	}
	endString += strings.Repeat(" ", underlineStart)
	endString += messageStyle.Sprintf("%s\n", strings.Repeat("~", max(1, len(trimmed)-underlineStart)))

	endString += lineStyle.Sprintf("%s= ", padding)
	endString += messageStyle.Sprintf("%s\n", v.Message)
	return endString
}

func suggestion(v tt.Violation, padding string, maxLineNumWidth int) string {
	var endString string
	endString = suggestionStyle.Sprint("Suggestion:\n")
	endString += lineStyle.Sprintf("%s|\n", padding)
	for i, line := range strings.Split(v.Suggestion, "\n") {
		endString += lineStyle.Sprintf("%*d | %s\n", maxLineNumWidth, v.Line+i, line)
	}
	endString += lineStyle.Sprintf("%s|\n", padding)
	return endString
}

// visualColumn accounts for tab characters when computing an underline
// position.
func visualColumn(line string, column int) int {
	visual := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visual += tabWidth - (visual % tabWidth)
		} else {
			visual++
		}
	}
	return visual
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
