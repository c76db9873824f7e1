package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ChicagoDave/fieldplanner/pkg/field"
	"github.com/ChicagoDave/fieldplanner/pkg/geo"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

const (
	panelThickness = 0.04 // meters
	wireGauge      = 0.01 // meters, display only
)

// Assemble converts a wired segment into a scene graph: one panel entity per
// module and one wire entity per consecutive pair within a string.
func Assemble(res *wiring.Result) *Graph {
	g := NewGraph()

	stringOf := make(map[*field.FieldModule]int, res.Segment.Len())
	for _, s := range res.Strings {
		for _, m := range s.Modules {
			stringOf[m] = s.Index
		}
	}

	assemblePanels(res.Segment, stringOf, g)
	assembleWires(res.Strings, g)

	g.Metadata = Metadata{
		RunID:         uuid.NewString(),
		Strategy:      res.Strategy,
		MaxStringSize: res.MaxStringSize,
		TotalDistance: res.Total,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		FieldBounds:   computeBounds(g.Entities),
	}
	return g
}

func assemblePanels(seg *field.Segment, stringOf map[*field.FieldModule]int, g *Graph) {
	for _, m := range seg.Modules {
		place := geo.TranslationVec(m.Position)
		e := Entity{
			ID:         m.ID(),
			Type:       EntityPanel,
			Position:   m.Center(),
			Dimensions: geo.Vec3(m.Type.Size.X, m.Type.Size.Y, panelThickness),
			Rotation:   identityQuat(),
			Outline:    place.TransformSequence(m.Type.Outline()),
			Material:   "pv_glass",
			Bank:       bankName(m.BankIndex),
			Metadata: map[string]any{
				"module_type": m.Type.Name,
				"row":         m.RowIndex,
				"col":         m.ColIndex,
			},
		}
		if idx, ok := stringOf[m]; ok {
			e.String = stringName(idx)
		}
		addEntity(g, e)
	}
}

func assembleWires(strings []wiring.String, g *Graph) {
	for _, s := range strings {
		legs := s.Route().Legs()
		for i := 1; i < len(s.Modules); i++ {
			from, to := s.Modules[i-1], s.Modules[i]
			a, b := from.Center(), to.Center()
			length := legs[i-1]

			addEntity(g, Entity{
				ID:         fmt.Sprintf("s%d-w%d", s.Index, i-1),
				Type:       EntityWire,
				Position:   a.Lerp(b, 0.5).Add(geo.Vec3(0, 0, panelThickness)),
				Dimensions: geo.Vec3(length, wireGauge, wireGauge),
				Rotation:   zQuat(math.Atan2(b.Y-a.Y, b.X-a.X)),
				Material:   "copper",
				String:     stringName(s.Index),
				Metadata: map[string]any{
					"from":   from.ID(),
					"to":     to.ID(),
					"length": length,
				},
				Children: []string{from.ID(), to.ID()},
			})
		}
	}
}

// addEntity appends an entity and updates all group indices.
func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	id := e.ID

	if e.Bank != "" {
		g.Groups.Banks[e.Bank] = append(g.Groups.Banks[e.Bank], id)
	}
	if e.String != "" {
		g.Groups.Strings[e.String] = append(g.Groups.Strings[e.String], id)
	}
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], id)
}

// computeBounds returns the AABB of all panel outlines, from the ground to
// the panel surface.
func computeBounds(entities []Entity) BoundingBox {
	var pts []geo.Vector
	for _, e := range entities {
		if e.Type != EntityPanel {
			continue
		}
		for _, p := range e.Outline {
			pts = append(pts, p, p.Add(geo.Vec3(0, 0, e.Dimensions.Z)))
		}
	}
	if len(pts) == 0 {
		return BoundingBox{}
	}
	mn, mx := geo.BoundsOf(pts)
	return BoundingBox{Min: mn, Max: mx}
}

func bankName(index int) string {
	return fmt.Sprintf("bank-%d", index)
}

func stringName(index int) string {
	return fmt.Sprintf("string-%d", index)
}

func identityQuat() [4]float64 {
	return [4]float64{0, 0, 0, 1}
}

// zQuat is a rotation of angle radians about +Z.
func zQuat(angle float64) [4]float64 {
	half := angle / 2
	return [4]float64{0, 0, math.Sin(half), math.Cos(half)}
}
