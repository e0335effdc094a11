package types

import "fmt"

// MalformedSourceError reports a file the scanner could not delimit into
// declarations. It is fatal for that file only; the engine converts it to
// a violation so the rest of a batch keeps running.
type MalformedSourceError struct {
	Path string
	Line int
	Msg  string
}

func (e *MalformedSourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: malformed source: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: malformed source: %s", e.Path, e.Msg)
}

// UnknownRuleError reports a ruleset entry that names no registered rule.
// It aborts the run before any file is scanned.
type UnknownRuleError struct {
	Rule string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %q in ruleset", e.Rule)
}

// RuleExecutionError reports that a single rule's check failed or
// panicked. It is isolated per rule and does not abort the run.
type RuleExecutionError struct {
	Rule string
	Err  error
}

func (e *RuleExecutionError) Error() string {
	return fmt.Sprintf("rule %q failed: %v", e.Rule, e.Err)
}

func (e *RuleExecutionError) Unwrap() error { return e.Err }
