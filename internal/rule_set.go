package internal

import (
	"github.com/eigengo/quality/internal/java"
	"github.com/eigengo/quality/internal/rules"
	tt "github.com/eigengo/quality/internal/types"
)

/*
* Implement each style rule as a separate struct
 */

// LintRule defines the interface for all style rules.
type LintRule interface {
	// Check runs the rule on a scanned unit and returns its violations.
	Check(filename string, unit *java.SourceUnit) ([]tt.Violation, error)

	// Name returns the stable id of the rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(severity tt.Severity)
}

// stamp applies the rule's configured severity to each violation.
func stamp(violations []tt.Violation, severity tt.Severity) []tt.Violation {
	for i := range violations {
		violations[i].Severity = severity
	}
	return violations
}

type NamingConventionRule struct{ severity tt.Severity }

func NewNamingConventionRule() LintRule {
	return &NamingConventionRule{severity: tt.SeverityError}
}

func (r *NamingConventionRule) Name() string                     { return "naming-convention" }
func (r *NamingConventionRule) Severity() tt.Severity            { return r.severity }
func (r *NamingConventionRule) SetSeverity(severity tt.Severity) { r.severity = severity }

func (r *NamingConventionRule) Check(filename string, unit *java.SourceUnit) ([]tt.Violation, error) {
	violations, err := rules.CheckNaming(filename, unit)
	return stamp(violations, r.severity), err
}

type FinalFieldRule struct{ severity tt.Severity }

func NewFinalFieldRule() LintRule {
	return &FinalFieldRule{severity: tt.SeverityWarning}
}

func (r *FinalFieldRule) Name() string                     { return "final-field" }
func (r *FinalFieldRule) Severity() tt.Severity            { return r.severity }
func (r *FinalFieldRule) SetSeverity(severity tt.Severity) { r.severity = severity }

func (r *FinalFieldRule) Check(filename string, unit *java.SourceUnit) ([]tt.Violation, error) {
	violations, err := rules.CheckFinalFields(filename, unit)
	return stamp(violations, r.severity), err
}

type FailFastNullCheckRule struct{ severity tt.Severity }

func NewFailFastNullCheckRule() LintRule {
	return &FailFastNullCheckRule{severity: tt.SeverityInfo}
}

func (r *FailFastNullCheckRule) Name() string                     { return "fail-fast-null-check" }
func (r *FailFastNullCheckRule) Severity() tt.Severity            { return r.severity }
func (r *FailFastNullCheckRule) SetSeverity(severity tt.Severity) { r.severity = severity }

func (r *FailFastNullCheckRule) Check(filename string, unit *java.SourceUnit) ([]tt.Violation, error) {
	violations, err := rules.CheckFailFastNullChecks(filename, unit)
	return stamp(violations, r.severity), err
}

type GenericExceptionCatchRule struct{ severity tt.Severity }

func NewGenericExceptionCatchRule() LintRule {
	return &GenericExceptionCatchRule{severity: tt.SeverityError}
}

func (r *GenericExceptionCatchRule) Name() string                     { return "generic-exception-catch" }
func (r *GenericExceptionCatchRule) Severity() tt.Severity            { return r.severity }
func (r *GenericExceptionCatchRule) SetSeverity(severity tt.Severity) { r.severity = severity }

func (r *GenericExceptionCatchRule) Check(filename string, unit *java.SourceUnit) ([]tt.Violation, error) {
	violations, err := rules.CheckGenericCatch(filename, unit)
	return stamp(violations, r.severity), err
}

type UtilityClassRule struct{ severity tt.Severity }

func NewUtilityClassRule() LintRule {
	return &UtilityClassRule{severity: tt.SeverityError}
}

func (r *UtilityClassRule) Name() string                     { return "utility-class" }
func (r *UtilityClassRule) Severity() tt.Severity            { return r.severity }
func (r *UtilityClassRule) SetSeverity(severity tt.Severity) { r.severity = severity }

func (r *UtilityClassRule) Check(filename string, unit *java.SourceUnit) ([]tt.Violation, error) {
	violations, err := rules.CheckUtilityClass(filename, unit)
	return stamp(violations, r.severity), err
}
