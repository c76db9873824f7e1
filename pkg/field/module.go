package field

import (
	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/geo"
)

// TypeID is a handle into a Registry.
type TypeID int

// ModuleType is a module's physical footprint: width along X, height along Y.
// It is shared by reference across every placement of that type.
type ModuleType struct {
	ID   TypeID     `json:"id"`
	Name string     `json:"name"`
	Size geo.Vector `json:"size"`
}

// Outline returns the footprint as four line segments in module-local
// coordinates, as consecutive point pairs:
// (0,0)-(w,0), (w,0)-(w,h), (w,h)-(0,h), (0,h)-(0,0).
func (t *ModuleType) Outline() []geo.Vector {
	w, h := t.Size.X, t.Size.Y
	return []geo.Vector{
		geo.Vec(0, 0), geo.Vec(w, 0),
		geo.Vec(w, 0), geo.Vec(w, h),
		geo.Vec(w, h), geo.Vec(0, h),
		geo.Vec(0, h), geo.Vec(0, 0),
	}
}

// Registry owns the module types of one scenario.
type Registry struct {
	types []*ModuleType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a module type and returns it. Width and height must be
// positive and finite.
func (r *Registry) Register(name string, width, height float64) (*ModuleType, error) {
	size := geo.Vec(width, height)
	if !(width > 0 && height > 0) || !size.IsFinite() {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"module %q size must be positive and finite, got %gx%g", name, width, height)
	}
	t := &ModuleType{
		ID:   TypeID(len(r.types)),
		Name: name,
		Size: size,
	}
	r.types = append(r.types, t)
	return t, nil
}

// Get returns the module type for id.
func (r *Registry) Get(id TypeID) (*ModuleType, error) {
	if id < 0 || int(id) >= len(r.types) {
		return nil, errors.New(errors.ErrCodeNotFound, "module type %d", id)
	}
	return r.types[id], nil
}

// Types returns the registered types in registration order.
func (r *Registry) Types() []*ModuleType {
	out := make([]*ModuleType, len(r.types))
	copy(out, r.types)
	return out
}
