package validation

import (
	"fmt"
	"math"
	"slices"

	"github.com/ChicagoDave/fieldplanner/pkg/geo"
	"github.com/ChicagoDave/fieldplanner/pkg/spec"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

// ValidateScenario checks a parsed scenario before any layout is computed.
// Every invalid parameter is reported with its path; nothing is defaulted.
func ValidateScenario(s *spec.Scenario) *Report {
	r := NewReport()

	validateModule(s, r)
	validateBanks(s, r)
	validateStack(s, r)
	validateWiringParams(s, r)

	return r
}

func validateModule(s *spec.Scenario, r *Report) {
	if !positiveFinite(s.Module.Width) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "module width must be a finite number greater than 0",
			Path:        "module.width",
			ActualValue: s.Module.Width,
			Expected:    "> 0",
		})
	}
	if !positiveFinite(s.Module.Height) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "module height must be a finite number greater than 0",
			Path:        "module.height",
			ActualValue: s.Module.Height,
			Expected:    "> 0",
		})
	}
}

// checkPoint reports a point with a NaN or infinite coordinate.
func checkPoint(p spec.Point, path string, r *Report) {
	if geo.Vec(p.X, p.Y).IsFinite() {
		return
	}
	r.AddError(Result{
		Level:       LevelSchema,
		Message:     fmt.Sprintf("%s must have finite coordinates", path),
		Path:        path,
		ActualValue: fmt.Sprintf("(%g, %g)", p.X, p.Y),
		Expected:    "finite x and y",
	})
}

func validateBanks(s *spec.Scenario, r *Report) {
	if !validDirection(s.RowDirection) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown row_direction %q", s.RowDirection),
			Path:        "row_direction",
			ActualValue: s.RowDirection,
			Expected:    "up or down",
		})
	}

	if len(s.Banks) == 0 && (s.Stack == nil || s.Stack.Count == 0) {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "scenario places no banks; wiring will be empty",
			Path:        "banks",
			Suggestions: []string{"Add at least one entry under banks, or set stack.count"},
		})
		return
	}

	seen := map[int]int{}
	for i, b := range s.Banks {
		checkPoint(b.Origin, fmt.Sprintf("banks[%d].origin", i), r)
		if b.Columns <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("banks[%d]: columns must be greater than 0", i),
				Path:        fmt.Sprintf("banks[%d].columns", i),
				ActualValue: b.Columns,
				Expected:    "> 0",
			})
		}
		if b.Rows <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("banks[%d]: rows must be greater than 0", i),
				Path:        fmt.Sprintf("banks[%d].rows", i),
				ActualValue: b.Rows,
				Expected:    "> 0",
			})
		}
		if b.Index != nil {
			if prev, dup := seen[*b.Index]; dup {
				r.AddError(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("bank index %d used by banks[%d] and banks[%d]", *b.Index, prev, i),
					Path:        fmt.Sprintf("banks[%d].index", i),
					ActualValue: *b.Index,
					Expected:    "unique index",
				})
			}
			seen[*b.Index] = i
		}
	}
}

func validateStack(s *spec.Scenario, r *Report) {
	st := s.Stack
	if st == nil {
		return
	}
	if !validDirection(st.Direction) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown stack direction %q", st.Direction),
			Path:        "stack.direction",
			ActualValue: st.Direction,
			Expected:    "up or down",
		})
	}
	checkPoint(st.Start, "stack.start", r)
	if !(st.RowSpacing >= 0) || math.IsInf(st.RowSpacing, 1) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "stack row_spacing must be a finite number, not negative",
			Path:        "stack.row_spacing",
			ActualValue: st.RowSpacing,
			Expected:    ">= 0",
		})
	}
	if len(s.Banks) > 0 {
		if st.Count != 0 {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     "stack.count is ignored when banks are listed explicitly",
				Path:        "stack.count",
				ActualValue: st.Count,
			})
		}
		r.AddInfo(Result{
			Level:   LevelSchema,
			Message: "bank origins are computed from stack; banks[].origin is ignored",
			Path:    "stack",
		})
		return
	}
	if st.Count < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "stack count must not be negative",
			Path:        "stack.count",
			ActualValue: st.Count,
			Expected:    ">= 0",
		})
	}
	if st.Count > 0 {
		if st.Columns <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     "stack columns must be greater than 0",
				Path:        "stack.columns",
				ActualValue: st.Columns,
				Expected:    "> 0",
			})
		}
		if st.Rows <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     "stack rows must be greater than 0",
				Path:        "stack.rows",
				ActualValue: st.Rows,
				Expected:    "> 0",
			})
		}
	}
}

func validateWiringParams(s *spec.Scenario, r *Report) {
	if s.MaxStringSize <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "max_string_size must be greater than 0",
			Path:        "max_string_size",
			ActualValue: s.MaxStringSize,
			Expected:    "> 0",
		})
	}
	if s.Strategy != "" && !slices.Contains(wiring.StrategyNames(), s.Strategy) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown wiring strategy %q", s.Strategy),
			Path:        "strategy",
			ActualValue: s.Strategy,
			Expected:    fmt.Sprintf("one of %v", wiring.StrategyNames()),
		})
	}
}

// positiveFinite is false for NaN, which compares false against everything.
func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func validDirection(d string) bool {
	return d == "" || d == "up" || d == "down"
}
