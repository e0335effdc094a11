package types

import "fmt"

// Violation represents a single deviation from an enabled style rule.
type Violation struct {
	Rule       string   `json:"rule"`
	Severity   Severity `json:"severity"`
	Filename   string   `json:"filename"`
	Line       int      `json:"line"`
	Column     int      `json:"column,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Note       string   `json:"note,omitempty"`
}

// Severity classifies how a violation is reported and whether it affects
// the exit code.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a config string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "off":
		return SeverityOff, nil
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return SeverityOff, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	sev, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// ConfigRule is one entry of a ruleset: whether the rule runs and at
// which severity. Nil fields mean the rule keeps its defaults.
type ConfigRule struct {
	Enabled  *bool     `yaml:"enabled,omitempty"`
	Severity *Severity `yaml:"severity,omitempty"`
}

// Disabled reports whether the entry turns its rule off.
func (c ConfigRule) Disabled() bool {
	if c.Enabled != nil && !*c.Enabled {
		return true
	}
	return c.Severity != nil && *c.Severity == SeverityOff
}
