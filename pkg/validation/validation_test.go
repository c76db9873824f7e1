package validation

import (
	"testing"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
)

func TestReportSeverities(t *testing.T) {
	tests := []struct {
		name      string
		add       func(*Report, Result)
		severity  Severity
		valid     bool
		summary   string
		collected func(*Report) []Result
	}{
		{"error", (*Report).AddError, SeverityError, false, "1 errors, 0 warnings, 0 info",
			func(r *Report) []Result { return r.Errors }},
		{"warning", (*Report).AddWarning, SeverityWarning, true, "0 errors, 1 warnings, 0 info",
			func(r *Report) []Result { return r.Warnings }},
		{"info", (*Report).AddInfo, SeverityInfo, true, "0 errors, 0 warnings, 1 info",
			func(r *Report) []Result { return r.Info }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport()
			if !r.Valid || r.Summary != "0 errors, 0 warnings, 0 info" {
				t.Fatalf("fresh report: valid=%v summary=%q", r.Valid, r.Summary)
			}
			// The caller's severity is overwritten.
			tt.add(r, Result{Level: LevelWiring, Severity: "bogus", Message: "m"})

			got := tt.collected(r)
			if len(got) != 1 || got[0].Severity != tt.severity {
				t.Fatalf("collected %+v, want one %s", got, tt.severity)
			}
			if r.Valid != tt.valid {
				t.Errorf("valid = %v, want %v", r.Valid, tt.valid)
			}
			if r.Summary != tt.summary {
				t.Errorf("summary = %q, want %q", r.Summary, tt.summary)
			}
		})
	}
}

func TestMergeStages(t *testing.T) {
	schema := NewReport()
	schema.AddInfo(Result{Level: LevelSchema, Message: "stack overrides banks"})

	layout := NewReport()
	layout.AddWarning(Result{Level: LevelLayout, Message: "banks overlap", Path: "banks[0]"})
	schema.Merge(layout)
	if !schema.Valid {
		t.Fatal("warnings must not invalidate a merged report")
	}

	wiring := NewReport()
	wiring.AddError(Result{Level: LevelWiring, Message: "module wired twice", Path: "strings[2]"})
	schema.Merge(wiring)
	schema.Merge(nil)

	if schema.Valid {
		t.Error("merged report should be invalid once any stage has errors")
	}
	if schema.Summary != "1 errors, 1 warnings, 1 info" {
		t.Errorf("summary = %q", schema.Summary)
	}
	if schema.Errors[0].Level != LevelWiring {
		t.Errorf("error level = %s, want wiring", schema.Errors[0].Level)
	}
}

func TestResultString(t *testing.T) {
	if got := (Result{Path: "module.width", Message: "must be positive"}).String(); got != "module.width: must be positive" {
		t.Errorf("with path: %q", got)
	}
	if got := (Result{Message: "segment is nil"}).String(); got != "segment is nil" {
		t.Errorf("without path: %q", got)
	}
}

func TestErr(t *testing.T) {
	r := NewReport()
	r.AddWarning(Result{Level: LevelScene, Message: "entity outside bounds"})
	if r.Err() != nil {
		t.Error("report with only warnings should have nil Err")
	}
	r.AddError(Result{Level: LevelSchema, Message: "must be positive", Path: "max_string_size"})
	r.AddError(Result{Level: LevelSchema, Message: "no path"})

	err := r.Err()
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
	want := "max_string_size: must be positive; no path"
	if got := errors.UserMessage(err); got != want {
		t.Errorf("UserMessage = %q, want %q", got, want)
	}
}
