// Package report renders validation ledgers for the CLI: a plain text
// form for humans and a JSON form for tooling, with an optional jq
// post-filter over the latter.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/eventcheck/pkg/eventfile"
)

// Finding is the rendered form of one validation finding.
type Finding struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	// Value carries a compacted snippet of the offending value when
	// previews are requested and the path resolves in the document.
	Value any `json:"value,omitempty"`
}

// Report is the rendered outcome of validating one input.
type Report struct {
	Source   string    `json:"source"`
	Valid    bool      `json:"valid"`
	Errors   int       `json:"errors"`
	Warnings int       `json:"warnings"`
	Findings []Finding `json:"findings,omitempty"`
}

// Option configures report construction.
type Option func(*options)

type options struct {
	doc     any
	withDoc bool
}

// WithValues attaches compacted previews of the offending values,
// resolved from doc at each finding's path. Paths that do not resolve
// (e.g. missing-field findings) are skipped.
func WithValues(doc any) Option {
	return func(o *options) {
		o.doc = doc
		o.withDoc = true
	}
}

// New builds a report from a validation ledger.
func New(source string, led *eventfile.Ledger, opts ...Option) *Report {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &Report{
		Source:   source,
		Valid:    led.IsValid(),
		Errors:   led.ErrorCount(),
		Warnings: led.WarningCount(),
	}
	for _, f := range led.All() {
		out := Finding{
			Severity: string(f.Severity),
			Path:     f.Path.String(),
			Message:  f.Message,
		}
		if o.withDoc {
			if v, ok := resolve(o.doc, f.Path); ok {
				out.Value = compactValue(v, 0)
			}
		}
		r.Findings = append(r.Findings, out)
	}
	return r
}

// printer formats summary counts for humans.
var printer = message.NewPrinter(language.English)

// Text writes the report in line-per-finding form followed by a
// one-line summary.
func (r *Report) Text(w io.Writer) {
	for _, f := range r.Findings {
		fmt.Fprintf(w, "%s %s: %s\n", strings.ToUpper(f.Severity), f.Path, f.Message)
		if f.Value != nil {
			if data, err := json.Marshal(f.Value); err == nil {
				fmt.Fprintf(w, "  value: %s\n", data)
			}
		}
	}

	status := "OK"
	if !r.Valid {
		status = "INVALID"
	}
	printer.Fprintf(w, "%s: %s (%d errors, %d warnings)\n",
		r.Source, status, r.Errors, r.Warnings)
}

// resolve walks doc along path and returns the value it addresses.
func resolve(doc any, path eventfile.Path) (any, bool) {
	cur := doc
	for _, seg := range path {
		if seg.IsIndex() {
			arr, ok := cur.([]any)
			if !ok || seg.Index() < 0 || seg.Index() >= len(arr) {
				return nil, false
			}
			cur = arr[seg.Index()]
			continue
		}
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg.Key()]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
