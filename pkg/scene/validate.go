package scene

import (
	"fmt"

	"github.com/ChicagoDave/fieldplanner/pkg/validation"
)

// boundsTolerance is the slack, in meters, allowed between an entity's
// extent and the field bounds.
const boundsTolerance = 1e-6

// ValidateGraph checks a scene graph before it is handed to the viewer:
// entity IDs are unique, every group lists real entities and agrees with the
// entities' own bank, string and type, and each wire joins two panels of its
// own string. Entities escaping the field bounds or with degenerate
// dimensions are reported as warnings.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()
	if g == nil {
		fail(r, "", nil, "scene graph is nil")
		return r
	}

	ids := validateEntityIDs(g, r)
	validateGroups(g, ids, r)
	validateWireEndpoints(g, r)
	validateBoundsEnclosure(g, r)
	validateEntityDimensions(g, r)
	return r
}

// fail records a scene-level error.
func fail(r *validation.Report, path string, actual any, format string, args ...any) {
	r.AddError(validation.Result{
		Level:       validation.LevelScene,
		Message:     fmt.Sprintf(format, args...),
		Path:        path,
		ActualValue: actual,
	})
}

// validateEntityIDs reports empty and repeated IDs and returns the set of
// IDs present.
func validateEntityIDs(g *Graph, r *validation.Report) map[string]bool {
	first := make(map[string]int, len(g.Entities))
	for i, e := range g.Entities {
		path := fmt.Sprintf("entities[%d].id", i)
		switch prev, dup := first[e.ID]; {
		case e.ID == "":
			fail(r, path, "", "entity %d has an empty ID", i)
		case dup:
			fail(r, path, e.ID, "entity ID %q used by entities %d and %d", e.ID, prev, i)
		default:
			first[e.ID] = i
		}
	}
	present := make(map[string]bool, len(first))
	for id := range first {
		present[id] = true
	}
	return present
}

// validateGroups checks the three group indices in both directions: each
// listed ID exists, and each entity appears in the group it names.
func validateGroups(g *Graph, present map[string]bool, r *validation.Report) {
	types := make(map[string][]string, len(g.Groups.EntityTypes))
	for et, ids := range g.Groups.EntityTypes {
		types[string(et)] = ids
	}
	axes := []struct {
		name   string
		groups map[string][]string
		key    func(Entity) string
	}{
		{"banks", g.Groups.Banks, func(e Entity) string { return e.Bank }},
		{"strings", g.Groups.Strings, func(e Entity) string { return e.String }},
		{"entity_types", types, func(e Entity) string { return string(e.Type) }},
	}

	for _, axis := range axes {
		members := make(map[string]map[string]bool, len(axis.groups))
		for name, ids := range axis.groups {
			set := make(map[string]bool, len(ids))
			for _, id := range ids {
				if !present[id] {
					fail(r, fmt.Sprintf("groups.%s.%s", axis.name, name), id,
						"group %s.%s lists unknown entity %q", axis.name, name, id)
				}
				set[id] = true
			}
			members[name] = set
		}

		for _, e := range g.Entities {
			key := axis.key(e)
			if e.ID == "" || key == "" {
				continue
			}
			set, ok := members[key]
			switch {
			case !ok:
				fail(r, "groups."+axis.name, key, "entity %q names %s group %q, which does not exist", e.ID, axis.name, key)
			case !set[e.ID]:
				fail(r, fmt.Sprintf("groups.%s.%s", axis.name, key), e.ID, "entity %q is missing from %s group %q", e.ID, axis.name, key)
			}
		}
	}
}

func validateWireEndpoints(g *Graph, r *validation.Report) {
	panels := make(map[string]*Entity)
	for i := range g.Entities {
		if g.Entities[i].Type == EntityPanel {
			panels[g.Entities[i].ID] = &g.Entities[i]
		}
	}

	for _, e := range g.Entities {
		if e.Type != EntityWire {
			continue
		}
		path := fmt.Sprintf("entities.%s.children", e.ID)
		if len(e.Children) != 2 {
			fail(r, path, len(e.Children), "wire %q has %d endpoints, want 2", e.ID, len(e.Children))
			continue
		}
		for _, id := range e.Children {
			p, ok := panels[id]
			switch {
			case !ok:
				fail(r, path, id, "wire %q connects unknown panel %q", e.ID, id)
			case p.String != e.String:
				fail(r, fmt.Sprintf("entities.%s.string", e.ID), p.String,
					"wire %q in %s connects panel %q in %s", e.ID, e.String, id, p.String)
			}
		}
	}
}

func validateBoundsEnclosure(g *Graph, r *validation.Report) {
	b := g.Metadata.FieldBounds

	for _, e := range g.Entities {
		for _, p := range e.Outline {
			if p.X < b.Min.X-boundsTolerance || p.X > b.Max.X+boundsTolerance ||
				p.Y < b.Min.Y-boundsTolerance || p.Y > b.Max.Y+boundsTolerance {
				r.AddWarning(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("entity %q vertex (%.3f, %.3f) outside field bounds", e.ID, p.X, p.Y),
					Path:        "metadata.field_bounds",
					ActualValue: e.ID,
				})
				return
			}
		}
	}
}

func validateEntityDimensions(g *Graph, r *validation.Report) {
	for _, e := range g.Entities {
		d := e.Dimensions
		// A wire between coincident centers is legitimately zero length.
		if (e.Type != EntityWire && d.X <= 0) || d.Y <= 0 || d.Z <= 0 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q has zero or negative dimension (%.2f, %.2f, %.2f)", e.ID, d.X, d.Y, d.Z),
				Path:        fmt.Sprintf("entities.%s.dimensions", e.ID),
				ActualValue: fmt.Sprintf("%.2f x %.2f x %.2f", d.X, d.Y, d.Z),
				Expected:    "all dimensions > 0",
			})
		}
	}
}
