// Package field holds the layout data model: module footprints, placed
// modules, banks and the segment that aggregates them.
//
// Values are written once by the layout builder and are read-only afterwards.
// Wiring is computed separately and never stored on the Segment.
package field

import (
	"fmt"

	"github.com/ChicagoDave/fieldplanner/pkg/geo"
)

// FieldModule is one placed instance of a module type.
type FieldModule struct {
	Position  geo.Vector  `json:"position"` // bottom-left corner, segment-local
	TypeID    TypeID      `json:"type_id"`
	Type      *ModuleType `json:"-"`
	BankIndex int         `json:"bank_index"`
	RowIndex  int         `json:"row_index"`
	ColIndex  int         `json:"col_index"`
}

// ID returns a stable identifier derived from the module's provenance.
func (m *FieldModule) ID() string {
	return fmt.Sprintf("b%d-r%d-c%d", m.BankIndex, m.RowIndex, m.ColIndex)
}

// Center returns the geometric center of the module's footprint.
func (m *FieldModule) Center() geo.Vector {
	return m.Position.Add(m.Type.Size.Scale(0.5))
}

// Footprint returns the module's rectangle in segment coordinates.
func (m *FieldModule) Footprint() geo.Polygon {
	return geo.Rect(m.Position, m.Type.Size)
}

// ModuleBank is a rectangular grid of modules forming one rack.
type ModuleBank struct {
	Index   int            `json:"index"`
	NumRows int            `json:"num_rows"`
	NumCols int            `json:"num_cols"`
	Modules []*FieldModule `json:"-"`
}

// Complete reports whether every grid cell holds a module.
func (b *ModuleBank) Complete() bool {
	return len(b.Modules) == b.NumRows*b.NumCols
}

// Footprint returns the bounding rectangle of the bank's modules.
func (b *ModuleBank) Footprint() geo.Polygon {
	return boundsPolygon(b.Modules)
}

// Segment is the full collection of banks and modules under layout.
//
// Modules is the union of every bank's modules in insertion order
// (bank, then row, then column), which is not necessarily geometric order.
type Segment struct {
	Modules []*FieldModule `json:"modules"`
	Banks   []*ModuleBank  `json:"banks"`
}

// Len returns the number of placed modules.
func (s *Segment) Len() int {
	return len(s.Modules)
}

// Bank returns the bank with the given index, or nil if not found.
func (s *Segment) Bank(index int) *ModuleBank {
	for _, b := range s.Banks {
		if b.Index == index {
			return b
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of all module footprints
// as (min, max).
func (s *Segment) Bounds() (geo.Vector, geo.Vector) {
	return boundsPolygon(s.Modules).BoundingBox()
}

func boundsPolygon(mods []*FieldModule) geo.Polygon {
	if len(mods) == 0 {
		return geo.Polygon{}
	}
	pts := make([]geo.Vector, 0, 2*len(mods))
	for _, m := range mods {
		pts = append(pts, m.Position, m.Position.Add(m.Type.Size))
	}
	mn, mx := geo.BoundsOf(pts)
	return geo.Rect(mn, mx.Sub(mn))
}
