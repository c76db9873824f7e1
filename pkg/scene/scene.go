package scene

import "github.com/ChicagoDave/fieldplanner/pkg/geo"

// EntityType identifies the kind of entity.
type EntityType string

const (
	EntityPanel EntityType = "panel"
	EntityWire  EntityType = "wire"
)

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min geo.Vector `json:"min"`
	Max geo.Vector `json:"max"`
}

// Entity is a single element in the scene graph. Coordinates are
// segment-local, Z up.
type Entity struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	Position   geo.Vector     `json:"position"`
	Dimensions geo.Vector     `json:"dimensions"`
	Rotation   [4]float64     `json:"rotation"` // quaternion [x, y, z, w]
	Outline    []geo.Vector   `json:"outline,omitempty"`
	Material   string         `json:"material"`
	Bank       string         `json:"bank,omitempty"`
	String     string         `json:"string,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Children   []string       `json:"children,omitempty"`
}

// Graph is the complete scene graph handed to the viewer.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	RunID         string      `json:"run_id"`
	Scenario      string      `json:"scenario,omitempty"`
	Strategy      string      `json:"strategy"`
	MaxStringSize int         `json:"max_string_size"`
	TotalDistance float64     `json:"total_distance"`
	GeneratedAt   string      `json:"generated_at"`
	FieldBounds   BoundingBox `json:"field_bounds"`
}

// Groups organizes entity IDs by various axes for fast filtering.
type Groups struct {
	Banks       map[string][]string     `json:"banks"`
	Strings     map[string][]string     `json:"strings"`
	EntityTypes map[EntityType][]string `json:"entity_types"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Banks:       make(map[string][]string),
			Strings:     make(map[string][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}

// Entity returns the entity with the given ID, or nil.
func (g *Graph) Entity(id string) *Entity {
	for i := range g.Entities {
		if g.Entities[i].ID == id {
			return &g.Entities[i]
		}
	}
	return nil
}
