package eventfile

import "fmt"

// Severity classifies a finding. Errors make a document invalid,
// warnings never do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single deviation from the event file format, located by
// the path at which it was detected. Findings are immutable once
// recorded.
type Finding struct {
	Severity Severity
	Message  string
	Path     Path
}

// Ledger accumulates findings for one validation run. A ledger belongs
// to a single run and needs no locking; concurrent runs each get their
// own.
type Ledger struct {
	findings []Finding
	errors   int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends a finding.
func (l *Ledger) Record(sev Severity, path Path, msg string) {
	l.findings = append(l.findings, Finding{Severity: sev, Message: msg, Path: path})
	if sev == SeverityError {
		l.errors++
	}
}

// Errorf records an error-severity finding at path.
func (l *Ledger) Errorf(path Path, format string, args ...any) {
	l.Record(SeverityError, path, fmt.Sprintf(format, args...))
}

// Warnf records a warning-severity finding at path.
func (l *Ledger) Warnf(path Path, format string, args ...any) {
	l.Record(SeverityWarning, path, fmt.Sprintf(format, args...))
}

// IsValid reports whether no error-severity finding has been recorded.
// Warnings do not affect validity.
func (l *Ledger) IsValid() bool {
	return l.errors == 0
}

// All returns every finding in recording order, which matches the
// validator's traversal order.
func (l *Ledger) All() []Finding {
	return l.findings
}

// Len returns the total number of findings.
func (l *Ledger) Len() int {
	return len(l.findings)
}

// ErrorCount returns the number of error-severity findings.
func (l *Ledger) ErrorCount() int {
	return l.errors
}

// WarningCount returns the number of warning-severity findings.
func (l *Ledger) WarningCount() int {
	return len(l.findings) - l.errors
}
