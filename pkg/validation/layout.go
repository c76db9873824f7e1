package validation

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/fieldplanner/pkg/field"
	"github.com/ChicagoDave/fieldplanner/pkg/geo"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

// overlapTolerance is the smallest footprint intersection, in square meters,
// reported as a bank collision.
const overlapTolerance = 1e-6

// ValidateLayout checks a built segment: every bank complete, the flat module
// list equal to the banks in order, and no two bank footprints overlapping.
// Overlaps are warnings since the builder does not forbid them.
func ValidateLayout(seg *field.Segment) *Report {
	r := NewReport()
	if seg == nil {
		r.AddError(Result{Level: LevelLayout, Message: "segment is nil"})
		return r
	}

	flat := 0
	for i, b := range seg.Banks {
		path := fmt.Sprintf("banks[%d]", i)
		if !b.Complete() {
			r.AddError(Result{
				Level:       LevelLayout,
				Message:     fmt.Sprintf("bank %d holds %d modules", b.Index, len(b.Modules)),
				Path:        path,
				ActualValue: len(b.Modules),
				Expected:    fmt.Sprintf("%d", b.NumRows*b.NumCols),
			})
		}
		for j, m := range b.Modules {
			if flat >= len(seg.Modules) || seg.Modules[flat] != m {
				r.AddError(Result{
					Level:    LevelLayout,
					Message:  fmt.Sprintf("module %s is not at position %d of the segment", m.ID(), flat),
					Path:     fmt.Sprintf("%s.modules[%d]", path, j),
					Expected: "segment order equal to bank order",
				})
				return r
			}
			if m.BankIndex != b.Index {
				r.AddError(Result{
					Level:       LevelLayout,
					Message:     fmt.Sprintf("module %s carries bank index %d", m.ID(), m.BankIndex),
					Path:        fmt.Sprintf("%s.modules[%d]", path, j),
					ActualValue: m.BankIndex,
					Expected:    fmt.Sprintf("%d", b.Index),
				})
			}
			flat++
		}
	}
	if flat != len(seg.Modules) {
		r.AddError(Result{
			Level:       LevelLayout,
			Message:     "segment holds modules outside any bank",
			Path:        "modules",
			ActualValue: len(seg.Modules),
			Expected:    fmt.Sprintf("%d", flat),
		})
	}

	for i := 0; i < len(seg.Banks); i++ {
		fi := seg.Banks[i].Footprint()
		for j := i + 1; j < len(seg.Banks); j++ {
			area := geo.OverlapArea(fi, seg.Banks[j].Footprint())
			if area > overlapTolerance {
				r.AddWarning(Result{
					Level:       LevelLayout,
					Message:     fmt.Sprintf("banks %d and %d overlap by %.3f m2", seg.Banks[i].Index, seg.Banks[j].Index, area),
					Path:        fmt.Sprintf("banks[%d]", j),
					ActualValue: area,
					Suggestions: []string{"Increase stack.row_spacing or move the bank origin"},
				})
			}
		}
	}
	return r
}

// ValidateWiring checks that a wiring result covers every module of its
// segment exactly once, respects the string size bound, and that the total
// is the sum of the string distances.
func ValidateWiring(res *wiring.Result) *Report {
	r := NewReport()
	if res == nil || res.Segment == nil {
		r.AddError(Result{Level: LevelWiring, Message: "wiring result has no segment"})
		return r
	}

	inSegment := make(map[*field.FieldModule]bool, res.Segment.Len())
	for _, m := range res.Segment.Modules {
		inSegment[m] = true
	}

	seen := make(map[*field.FieldModule]bool, res.Segment.Len())
	sum := 0.0
	for i, s := range res.Strings {
		path := fmt.Sprintf("strings[%d]", i)
		if len(s.Modules) == 0 || len(s.Modules) > res.MaxStringSize {
			r.AddError(Result{
				Level:       LevelWiring,
				Message:     fmt.Sprintf("string %d holds %d modules", s.Index, len(s.Modules)),
				Path:        path,
				ActualValue: len(s.Modules),
				Expected:    fmt.Sprintf("1..%d", res.MaxStringSize),
			})
		}
		for _, m := range s.Modules {
			if !inSegment[m] {
				r.AddError(Result{
					Level:   LevelWiring,
					Message: fmt.Sprintf("string %d wires module %s which is not in the segment", s.Index, m.ID()),
					Path:    path,
				})
				continue
			}
			if seen[m] {
				r.AddError(Result{
					Level:   LevelWiring,
					Message: fmt.Sprintf("module %s is wired more than once", m.ID()),
					Path:    path,
				})
			}
			seen[m] = true
		}
		sum += s.Distance
	}

	if missing := len(inSegment) - len(seen); missing > 0 {
		r.AddError(Result{
			Level:       LevelWiring,
			Message:     fmt.Sprintf("%d modules are not wired", missing),
			Path:        "strings",
			ActualValue: len(seen),
			Expected:    fmt.Sprintf("%d", len(inSegment)),
		})
	}
	if math.Abs(sum-res.Total) > geo.DefaultTolerance*math.Max(1, sum) {
		r.AddError(Result{
			Level:       LevelWiring,
			Message:     "total distance does not match the sum of string distances",
			Path:        "total",
			ActualValue: res.Total,
			Expected:    fmt.Sprintf("%g", sum),
		})
	}
	return r
}
