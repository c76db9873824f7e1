package validation

import (
	"fmt"
	"strings"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
)

// Level names the stage that produced a finding.
type Level string

const (
	LevelSchema Level = "schema"
	LevelLayout Level = "layout"
	LevelWiring Level = "wiring"
	LevelScene  Level = "scene"
)

// Severity ranks a finding. Only errors make a report invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is one finding. Path locates the offending value, for example
// "banks[1].rows" in a scenario or "strings[3]" in a wiring.
type Result struct {
	Level       Level    `json:"level"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Path        string   `json:"path,omitempty"`
	ActualValue any      `json:"actual_value,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Report collects the findings of one or more validation stages.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport returns an empty, valid report.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// AddError records result as an error and marks the report invalid.
func (r *Report) AddError(result Result) {
	r.add(SeverityError, result)
}

// AddWarning records result as a warning. Warnings never invalidate a report.
func (r *Report) AddWarning(result Result) {
	r.add(SeverityWarning, result)
}

// AddInfo records result as an informational note.
func (r *Report) AddInfo(result Result) {
	r.add(SeverityInfo, result)
}

func (r *Report) add(sev Severity, result Result) {
	result.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, result)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, result)
	default:
		r.Info = append(r.Info, result)
	}
	r.updateSummary()
}

// Merge appends other's findings to r. A nil other is ignored.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	r.Valid = r.Valid && other.Valid
	r.updateSummary()
}

// String formats the finding as "path: message", or just the message when it
// has no path.
func (res Result) String() string {
	if res.Path == "" {
		return res.Message
	}
	return res.Path + ": " + res.Message
}

// Err returns nil for a valid report, otherwise an INVALID_ARGUMENT error
// listing every error finding.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.String()
	}
	return errors.New(errors.ErrCodeInvalidArgument, "%s", strings.Join(msgs, "; "))
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
