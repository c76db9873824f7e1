package scene

import (
	"testing"

	"github.com/ChicagoDave/fieldplanner/pkg/geo"
)

func validGraph() *Graph {
	g := NewGraph()
	g.Entities = []Entity{
		{
			ID:         "b0-r0-c0",
			Type:       EntityPanel,
			Position:   geo.Vec(0.5, 0.25),
			Dimensions: geo.Vec3(1, 0.5, 0.04),
			Rotation:   [4]float64{0, 0, 0, 1},
			Outline:    geo.Rect(geo.Vec(0, 0), geo.Vec(1, 0.5)).Vertices,
			Material:   "pv_glass",
			Bank:       "bank-0",
			String:     "string-0",
		},
		{
			ID:         "b0-r0-c1",
			Type:       EntityPanel,
			Position:   geo.Vec(1.5, 0.25),
			Dimensions: geo.Vec3(1, 0.5, 0.04),
			Rotation:   [4]float64{0, 0, 0, 1},
			Outline:    geo.Rect(geo.Vec(1, 0), geo.Vec(1, 0.5)).Vertices,
			Material:   "pv_glass",
			Bank:       "bank-0",
			String:     "string-0",
		},
		{
			ID:         "s0-w0",
			Type:       EntityWire,
			Position:   geo.Vec3(1, 0.25, 0.04),
			Dimensions: geo.Vec3(1, 0.01, 0.01),
			Rotation:   [4]float64{0, 0, 0, 1},
			Material:   "copper",
			String:     "string-0",
			Children:   []string{"b0-r0-c0", "b0-r0-c1"},
		},
	}
	g.Groups.Banks["bank-0"] = []string{"b0-r0-c0", "b0-r0-c1"}
	g.Groups.Strings["string-0"] = []string{"b0-r0-c0", "b0-r0-c1", "s0-w0"}
	g.Groups.EntityTypes[EntityPanel] = []string{"b0-r0-c0", "b0-r0-c1"}
	g.Groups.EntityTypes[EntityWire] = []string{"s0-w0"}
	g.Metadata = Metadata{
		RunID: "test",
		FieldBounds: BoundingBox{
			Min: geo.Vec(0, 0),
			Max: geo.Vec3(2, 0.5, 0.04),
		},
	}
	return g
}

func TestValidateGraph_Valid(t *testing.T) {
	r := ValidateGraph(validGraph())
	if !r.Valid {
		t.Errorf("expected valid, got %d errors", len(r.Errors))
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", r.Warnings)
	}
}

func TestValidateGraph_Nil(t *testing.T) {
	r := ValidateGraph(nil)
	if r.Valid {
		t.Error("expected invalid for nil graph")
	}
}

func TestValidateGraph_DuplicateID(t *testing.T) {
	g := validGraph()
	dup := g.Entities[0]
	g.Entities = append(g.Entities, dup)
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for duplicate ID")
	}
}

func TestValidateGraph_OrphanedGroupReference(t *testing.T) {
	g := validGraph()
	g.Groups.Banks["bank-0"] = append(g.Groups.Banks["bank-0"], "nonexistent")
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for orphaned group reference")
	}
}

func TestValidateGraph_MissingGroupMembership(t *testing.T) {
	g := validGraph()
	g.Groups.Strings["string-0"] = []string{"s0-w0"}
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for missing group membership")
	}
}

func TestValidateGraph_EmptyID(t *testing.T) {
	g := validGraph()
	g.Entities = append(g.Entities, Entity{
		Type:       EntityPanel,
		Dimensions: geo.Vec3(1, 0.5, 0.04),
		Rotation:   [4]float64{0, 0, 0, 1},
	})
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for empty ID")
	}
}

func TestValidateGraph_WireEndpoints(t *testing.T) {
	g := validGraph()
	g.Entities[2].Children = []string{"b0-r0-c0", "b9-r9-c9"}
	if r := ValidateGraph(g); r.Valid {
		t.Error("expected invalid for unknown wire endpoint")
	}

	g = validGraph()
	g.Entities[1].String = "string-1"
	g.Groups.Strings["string-1"] = []string{"b0-r0-c1"}
	g.Groups.Strings["string-0"] = []string{"b0-r0-c0", "s0-w0"}
	r := ValidateGraph(g)
	if r.Valid {
		t.Error("expected invalid for wire crossing strings")
	}
}

func TestValidateGraph_OutOfBoundsWarning(t *testing.T) {
	g := validGraph()
	g.Metadata.FieldBounds.Max.X = 1.5
	r := ValidateGraph(g)
	if !r.Valid {
		t.Error("bounds are a warning, not an error")
	}
	if len(r.Warnings) == 0 {
		t.Error("expected bounds warning")
	}
}

func TestValidateGraph_ZeroDimensionWarning(t *testing.T) {
	g := validGraph()
	g.Entities[0].Dimensions.Y = 0
	r := ValidateGraph(g)
	if len(r.Warnings) == 0 {
		t.Error("expected warning for zero dimension")
	}
}

func TestValidateGraph_RealGraph(t *testing.T) {
	for _, name := range []string{"default", "legacy", "stacked"} {
		g := Assemble(buildResult(t, name))
		r := ValidateGraph(g)
		if !r.Valid || len(r.Warnings) != 0 {
			t.Errorf("%s: %s", name, r.Summary)
			for _, e := range r.Errors {
				t.Logf("  error: %s", e.Message)
			}
		}
		t.Logf("%s: validated %d entities: %s", name, len(g.Entities), r.Summary)
	}
}
