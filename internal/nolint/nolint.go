package nolint

import (
	"strings"

	"github.com/eigengo/quality/internal/java"
)

const nolintPrefix = "NOLINT"

// Manager manages NOLINT scopes and checks whether a violation is
// suppressed.
type Manager struct {
	scopes []scope
}

// scope represents a line range in which NOLINT applies.
type scope struct {
	// rules is nil when the comment suppresses every rule.
	rules map[string]struct{}
	start int
	end   int
}

// Parse collects NOLINT comments from a scanned unit. A comment on (or
// immediately above) a declaration suppresses for that declaration's
// whole extent; anywhere else it suppresses its own lines only.
//
//	// NOLINT                 suppress all rules
//	// NOLINT(rule-a,rule-b)  suppress the listed rules
func Parse(unit *java.SourceUnit) *Manager {
	m := &Manager{}
	for _, c := range unit.Comments {
		text := trimCommentMarkers(c.Text)
		if !strings.HasPrefix(text, nolintPrefix) {
			continue
		}
		rest := strings.TrimPrefix(text, nolintPrefix)
		sc := scope{start: c.Line, end: c.EndLine, rules: parseRuleNames(rest)}

		for i := range unit.Decls {
			d := &unit.Decls[i]
			if d.Line == c.Line || d.Line == c.EndLine+1 {
				if d.EndLine > sc.end {
					sc.end = d.EndLine
				}
				break
			}
		}
		m.scopes = append(m.scopes, sc)
	}
	return m
}

// IsSuppressed reports whether the given rule is suppressed at line.
func (m *Manager) IsSuppressed(line int, rule string) bool {
	for _, sc := range m.scopes {
		if line < sc.start || line > sc.end {
			continue
		}
		if sc.rules == nil {
			return true
		}
		if _, ok := sc.rules[rule]; ok {
			return true
		}
	}
	return false
}

func parseRuleNames(rest string) map[string]struct{} {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "(") {
		return nil
	}
	rest = strings.TrimPrefix(rest, "(")
	if idx := strings.IndexByte(rest, ')'); idx >= 0 {
		rest = rest[:idx]
	}
	rules := make(map[string]struct{})
	for _, name := range strings.Split(rest, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			rules[name] = struct{}{}
		}
	}
	if len(rules) == 0 {
		return nil
	}
	return rules
}

func trimCommentMarkers(text string) string {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return strings.TrimSpace(text)
}
