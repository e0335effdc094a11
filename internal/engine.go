package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/eigengo/quality/internal/java"
	"github.com/eigengo/quality/internal/nolint"
	tt "github.com/eigengo/quality/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	ignoredPaths []string
	rules        map[string]LintRule
	cache        *Cache
}

// NewEngine creates a new lint engine with the default rules adjusted by
// the given ruleset. An entry naming no registered rule fails with
// *types.UnknownRuleError before any file is scanned.
func NewEngine(ruleset map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{}
	if err := engine.applyRules(ruleset); err != nil {
		return nil, err
	}
	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"naming-convention":       NewNamingConventionRule,
	"final-field":             NewFinalFieldRule,
	"fail-fast-null-check":    NewFailFastNullCheckRule,
	"generic-exception-catch": NewGenericExceptionCatchRule,
	"utility-class":           NewUtilityClassRule,
}

// DefaultRuleSeverities returns the registered rule ids with their
// default severities.
func DefaultRuleSeverities() map[string]tt.Severity {
	out := make(map[string]tt.Severity, len(allRuleConstructors))
	for _, newRule := range allRuleConstructors {
		rule := newRule()
		out[rule.Name()] = rule.Severity()
	}
	return out
}

func (e *Engine) applyRules(ruleset map[string]tt.ConfigRule) error {
	e.rules = make(map[string]LintRule, len(allRuleConstructors))
	for key, newRule := range allRuleConstructors {
		e.rules[key] = newRule()
	}

	for key, cfg := range ruleset {
		rule, ok := e.rules[key]
		if !ok {
			return &tt.UnknownRuleError{Rule: key}
		}
		if cfg.Disabled() {
			e.IgnoreRule(key)
			continue
		}
		if cfg.Severity != nil {
			rule.SetSeverity(*cfg.Severity)
		}
	}
	return nil
}

// IgnoreRule disables a rule for this engine.
func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath excludes files under the given path prefix.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, path)
}

// SetCache attaches a result cache consulted by Run.
func (e *Engine) SetCache(cache *Cache) {
	e.cache = cache
}

// Run applies all rules to the given file and returns its violations.
func (e *Engine) Run(filename string) ([]tt.Violation, error) {
	for _, prefix := range e.ignoredPaths {
		if strings.HasPrefix(filename, prefix) {
			return nil, nil
		}
	}

	if e.cache != nil {
		if violations, ok := e.cache.Get(filename); ok {
			return violations, nil
		}
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}

	violations, err := e.RunSource(filename, src)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Set(filename, violations)
	}
	return violations, nil
}

// RunSource applies all rules to the given source text. A source the
// scanner cannot delimit yields a single malformed-source violation
// instead of an error, so a batch keeps running.
func (e *Engine) RunSource(filename string, src []byte) ([]tt.Violation, error) {
	unit, err := java.Scan(filename, src)
	if err != nil {
		var malformed *tt.MalformedSourceError
		if errors.As(err, &malformed) {
			return []tt.Violation{malformedViolation(filename, malformed)}, nil
		}
		return nil, err
	}

	suppressions := nolint.Parse(unit)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allViolations []tt.Violation
	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			defer func() {
				// a panicking rule must not take the run down with it
				if rec := recover(); rec != nil {
					execErr := &tt.RuleExecutionError{Rule: r.Name(), Err: fmt.Errorf("panic: %v", rec)}
					mu.Lock()
					allViolations = append(allViolations, executionViolation(filename, execErr))
					mu.Unlock()
				}
			}()

			violations, err := r.Check(filename, unit)
			if err != nil {
				execErr := &tt.RuleExecutionError{Rule: r.Name(), Err: err}
				mu.Lock()
				allViolations = append(allViolations, executionViolation(filename, execErr))
				mu.Unlock()
				return
			}

			kept := filterSuppressed(violations, suppressions)

			mu.Lock()
			allViolations = append(allViolations, kept...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	return allViolations, nil
}

func malformedViolation(filename string, err *tt.MalformedSourceError) tt.Violation {
	line := err.Line
	if line == 0 {
		line = 1
	}
	return tt.Violation{
		Rule:     "malformed-source",
		Severity: tt.SeverityError,
		Filename: filename,
		Line:     line,
		Message:  err.Msg,
	}
}

func executionViolation(filename string, err *tt.RuleExecutionError) tt.Violation {
	return tt.Violation{
		Rule:     "rule-execution",
		Severity: tt.SeverityError,
		Filename: filename,
		Line:     1,
		Message:  err.Error(),
	}
}

// filterSuppressed drops violations covered by NOLINT comments.
func filterSuppressed(violations []tt.Violation, suppressions *nolint.Manager) []tt.Violation {
	kept := make([]tt.Violation, 0, len(violations))
	for _, v := range violations {
		if !suppressions.IsSuppressed(v.Line, v.Rule) {
			kept = append(kept, v)
		}
	}
	return kept
}
