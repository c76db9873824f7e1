// Package wiring groups a segment's modules into electrical strings and
// reports the routing distance of each string.
//
// How modules are ordered before chunking is pluggable through Strategy.
// InsertionOrder is the reference policy; the others are heuristics and make
// no optimality claim. Whatever the strategy, Compute guarantees every module
// appears in exactly one string and no string exceeds the size bound.
package wiring

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/field"
	"github.com/ChicagoDave/fieldplanner/pkg/geo"
)

// String is an ordered group of modules on one electrical circuit.
type String struct {
	Index    int
	Modules  []*field.FieldModule
	Distance float64 // planar distance between consecutive centers
}

// Route returns the path through the module centers in wiring order.
func (s String) Route() geo.Polyline {
	pts := make([]geo.Vector, len(s.Modules))
	for i, m := range s.Modules {
		pts[i] = m.Center()
	}
	return geo.NewPolyline(pts...)
}

// MarshalJSON encodes modules by ID so the viewer can join against the
// segment's module list.
func (s String) MarshalJSON() ([]byte, error) {
	ids := make([]string, len(s.Modules))
	for i, m := range s.Modules {
		ids[i] = m.ID()
	}
	return json.Marshal(struct {
		Index    int      `json:"index"`
		Modules  []string `json:"modules"`
		Distance float64  `json:"distance"`
	}{s.Index, ids, s.Distance})
}

// Result is a segment together with its computed wiring. The segment is
// shared, not copied, and must be treated as read-only.
type Result struct {
	Segment       *field.Segment `json:"segment"`
	Strategy      string         `json:"strategy"`
	MaxStringSize int            `json:"max_string_size"`
	Strings       []String       `json:"strings"`
	Total         float64        `json:"total_distance"`
}

// Compute orders the segment's modules with strategy, splits them into
// consecutive strings of at most maxStringSize modules and measures each
// string. A nil strategy means InsertionOrder.
func Compute(seg *field.Segment, maxStringSize int, strategy Strategy) (*Result, error) {
	if maxStringSize <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"max string size must be positive, got %d", maxStringSize)
	}
	if seg == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "segment is required")
	}
	if strategy == nil {
		strategy = InsertionOrder{}
	}

	order := strategy.Order(seg)
	if err := checkPermutation(seg, order); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "strategy %s", strategy.Name())
	}

	res := &Result{
		Segment:       seg,
		Strategy:      strategy.Name(),
		MaxStringSize: maxStringSize,
		Strings:       []String{},
	}
	for start := 0; start < len(order); start += maxStringSize {
		end := min(start+maxStringSize, len(order))
		s := String{
			Index:   len(res.Strings),
			Modules: order[start:end:end],
		}
		s.Distance = s.Route().Length()
		res.Strings = append(res.Strings, s)
		res.Total += s.Distance
	}
	return res, nil
}

// checkPermutation verifies order holds each segment module exactly once.
func checkPermutation(seg *field.Segment, order []*field.FieldModule) error {
	if len(order) != len(seg.Modules) {
		return errors.New(errors.ErrCodeInternal,
			"ordered %d modules, segment has %d", len(order), len(seg.Modules))
	}
	want := make(map[*field.FieldModule]bool, len(seg.Modules))
	for _, m := range seg.Modules {
		want[m] = true
	}
	for _, m := range order {
		if !want[m] {
			return errors.New(errors.ErrCodeInternal, "module %s missing or repeated", m.ID())
		}
		delete(want, m)
	}
	return nil
}

// Report logs one line per string and the segment total.
func (r *Result) Report(logger *log.Logger) {
	for _, s := range r.Strings {
		logger.Info("string",
			"index", s.Index,
			"modules", len(s.Modules),
			"distance", roundTo(s.Distance, 3))
	}
	logger.Info("wiring total",
		"strategy", r.Strategy,
		"strings", len(r.Strings),
		"modules", r.Segment.Len(),
		"distance", roundTo(r.Total, 3))
}

// Longest returns the string with the greatest wiring distance, or false if
// there are no strings.
func (r *Result) Longest() (String, bool) {
	if len(r.Strings) == 0 {
		return String{}, false
	}
	best := r.Strings[0]
	for _, s := range r.Strings[1:] {
		if s.Distance > best.Distance {
			best = s
		}
	}
	return best, true
}
