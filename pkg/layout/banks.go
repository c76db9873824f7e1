package layout

import (
	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/field"
	"github.com/ChicagoDave/fieldplanner/pkg/geo"
)

// RowDirection selects whether successive rows (or stacked banks) advance
// along +Y or -Y.
type RowDirection string

const (
	RowsUp   RowDirection = "up"
	RowsDown RowDirection = "down"
)

// Sign returns +1 for up (and the zero value) and -1 for down.
func (d RowDirection) Sign() float64 {
	if d == RowsDown {
		return -1
	}
	return 1
}

// Valid reports whether d is a known direction. Empty means up.
func (d RowDirection) Valid() bool {
	return d == "" || d == RowsUp || d == RowsDown
}

// BankSpec describes one bank to place.
type BankSpec struct {
	Origin  geo.Vector
	Columns int
	Rows    int
	Index   *int // explicit bank index; nil means call order
}

// Stacking places banks automatically one after another along Y, separated
// by RowSpacing. When set, BankSpec.Origin is ignored.
type Stacking struct {
	Start      geo.Vector
	RowSpacing float64
	Direction  RowDirection
}

// Options configures BuildSegment.
type Options struct {
	RowDirection RowDirection
	Stack        *Stacking
}

// AddBank places a numCols x numRows grid of modules starting at origin and
// appends it to seg. Modules are appended row-major to the bank and to the
// segment's flat list. Banks are not checked for collisions with each other.
func AddBank(seg *field.Segment, mt *field.ModuleType, origin geo.Vector, bankIndex, numCols, numRows int, dir RowDirection) (*field.ModuleBank, error) {
	if seg == nil || mt == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "segment and module type are required")
	}
	if numCols <= 0 || numRows <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"bank %d dimensions must be positive, got %d columns x %d rows", bankIndex, numCols, numRows)
	}
	if !dir.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "unknown row direction %q", dir)
	}
	if !origin.IsFinite() {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "bank %d origin must be finite, got %v", bankIndex, origin)
	}

	bank := &field.ModuleBank{
		Index:   bankIndex,
		NumRows: numRows,
		NumCols: numCols,
		Modules: make([]*field.FieldModule, 0, numRows*numCols),
	}
	seg.Banks = append(seg.Banks, bank)

	pitchX, pitchY := mt.Size.X, mt.Size.Y*dir.Sign()
	for row := 0; row < numRows; row++ {
		for col := 0; col < numCols; col++ {
			m := &field.FieldModule{
				Position:  origin.Add(geo.Vec(pitchX*float64(col), pitchY*float64(row))),
				TypeID:    mt.ID,
				Type:      mt,
				BankIndex: bankIndex,
				RowIndex:  row,
				ColIndex:  col,
			}
			bank.Modules = append(bank.Modules, m)
			seg.Modules = append(seg.Modules, m)
		}
	}
	return bank, nil
}

// BuildSegment places every bank in specs order and returns the finished
// segment. Bank indices follow call order from 0 unless specs carry explicit
// indices, which must then be unique.
func BuildSegment(mt *field.ModuleType, specs []BankSpec, opts Options) (*field.Segment, error) {
	if mt == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "module type is required")
	}
	if st := opts.Stack; st != nil {
		if !st.Direction.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "unknown stack direction %q", st.Direction)
		}
		if !(st.RowSpacing >= 0) || !st.Start.Add(geo.Vec(0, st.RowSpacing)).IsFinite() {
			return nil, errors.New(errors.ErrCodeInvalidArgument,
				"stack start %v and row spacing %g must be finite, spacing not negative", st.Start, st.RowSpacing)
		}
	}

	origins := bankOrigins(mt, specs, opts.Stack)
	seg := &field.Segment{}
	seen := make(map[int]bool, len(specs))

	for i, bs := range specs {
		idx := i
		if bs.Index != nil {
			idx = *bs.Index
		}
		if seen[idx] {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "duplicate bank index %d", idx)
		}
		seen[idx] = true

		if _, err := AddBank(seg, mt, origins[i], idx, bs.Columns, bs.Rows, opts.RowDirection); err != nil {
			return nil, err
		}
	}
	return seg, nil
}

// bankOrigins resolves each bank's origin. Without stacking the caller's
// origins are used as-is. With stacking, bank k sits one bank height plus the
// row spacing beyond bank k-1.
func bankOrigins(mt *field.ModuleType, specs []BankSpec, stack *Stacking) []geo.Vector {
	origins := make([]geo.Vector, len(specs))
	if stack == nil {
		for i, bs := range specs {
			origins[i] = bs.Origin
		}
		return origins
	}

	sign := stack.Direction.Sign()
	offset := 0.0
	for i, bs := range specs {
		origins[i] = stack.Start.Add(geo.Vec(0, sign*offset))
		offset += mt.Size.Y*float64(bs.Rows) + stack.RowSpacing
	}
	return origins
}

// StackedSpecs returns count identical bank specs for use with Stacking.
func StackedSpecs(count, columns, rows int) []BankSpec {
	specs := make([]BankSpec, count)
	for i := range specs {
		specs[i] = BankSpec{Columns: columns, Rows: rows}
	}
	return specs
}
