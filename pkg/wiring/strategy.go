package wiring

import (
	"math"
	"sort"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/field"
)

// Strategy decides the order in which modules are chained before the order
// is cut into strings. Order must return every segment module exactly once.
type Strategy interface {
	Name() string
	Order(seg *field.Segment) []*field.FieldModule
}

// Strategy names accepted by StrategyByName.
const (
	StrategyInsertion = "insertion"
	StrategySnake     = "snake"
	StrategyNearest   = "nearest"
)

// StrategyByName returns the named strategy. The empty name selects
// InsertionOrder.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", StrategyInsertion:
		return InsertionOrder{}, nil
	case StrategySnake:
		return RowSnake{}, nil
	case StrategyNearest:
		return NearestNeighbor{}, nil
	default:
		return nil, errors.New(errors.ErrCodeNotFound, "unknown wiring strategy %q", name)
	}
}

// StrategyNames lists the available strategies.
func StrategyNames() []string {
	return []string{StrategyInsertion, StrategySnake, StrategyNearest}
}

// InsertionOrder keeps the segment's creation order: bank, row, column.
type InsertionOrder struct{}

func (InsertionOrder) Name() string { return StrategyInsertion }

func (InsertionOrder) Order(seg *field.Segment) []*field.FieldModule {
	out := make([]*field.FieldModule, len(seg.Modules))
	copy(out, seg.Modules)
	return out
}

// RowSnake walks each bank row by row, alternating direction so that the
// last module of one row sits above the first module of the next.
type RowSnake struct{}

func (RowSnake) Name() string { return StrategySnake }

func (RowSnake) Order(seg *field.Segment) []*field.FieldModule {
	out := make([]*field.FieldModule, 0, len(seg.Modules))
	for _, b := range seg.Banks {
		rows := make(map[int][]*field.FieldModule, b.NumRows)
		var rowIdx []int
		for _, m := range b.Modules {
			if _, ok := rows[m.RowIndex]; !ok {
				rowIdx = append(rowIdx, m.RowIndex)
			}
			rows[m.RowIndex] = append(rows[m.RowIndex], m)
		}
		sort.Ints(rowIdx)

		for i, r := range rowIdx {
			row := rows[r]
			sort.SliceStable(row, func(a, c int) bool {
				if i%2 == 1 {
					return row[a].ColIndex > row[c].ColIndex
				}
				return row[a].ColIndex < row[c].ColIndex
			})
			out = append(out, row...)
		}
	}
	return out
}

// NearestNeighbor greedily chains each module to the closest unvisited one,
// starting from the first module in insertion order. Ties go to the earlier
// module in insertion order.
type NearestNeighbor struct{}

func (NearestNeighbor) Name() string { return StrategyNearest }

func (NearestNeighbor) Order(seg *field.Segment) []*field.FieldModule {
	n := len(seg.Modules)
	if n == 0 {
		return []*field.FieldModule{}
	}
	visited := make([]bool, n)
	out := make([]*field.FieldModule, 0, n)

	cur := 0
	for {
		visited[cur] = true
		out = append(out, seg.Modules[cur])
		if len(out) == n {
			return out
		}
		from := seg.Modules[cur].Center()
		next, best := -1, math.MaxFloat64
		for j, m := range seg.Modules {
			if visited[j] {
				continue
			}
			// Always take the first candidate so NaN distances still advance.
			if d := from.Distance2D(m.Center()); next == -1 || d < best {
				next, best = j, d
			}
		}
		cur = next
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
