package spec

// Scenario is a field layout description: one module footprint, a set of
// banks and the wiring parameters.
type Scenario struct {
	Name          string    `yaml:"name" toml:"name" json:"name"`
	Description   string    `yaml:"description,omitempty" toml:"description" json:"description,omitempty"`
	Module        ModuleDef `yaml:"module" toml:"module" json:"module"`
	Banks         []BankDef `yaml:"banks,omitempty" toml:"banks" json:"banks,omitempty"`
	Stack         *StackDef `yaml:"stack,omitempty" toml:"stack" json:"stack,omitempty"`
	RowDirection  string    `yaml:"row_direction,omitempty" toml:"row_direction" json:"row_direction,omitempty"`
	MaxStringSize int       `yaml:"max_string_size" toml:"max_string_size" json:"max_string_size"`
	Strategy      string    `yaml:"strategy,omitempty" toml:"strategy" json:"strategy,omitempty"`
}

// ModuleDef is the physical footprint of the modules in the scenario.
type ModuleDef struct {
	Name   string  `yaml:"name,omitempty" toml:"name" json:"name,omitempty"`
	Width  float64 `yaml:"width" toml:"width" json:"width"`
	Height float64 `yaml:"height" toml:"height" json:"height"`
}

// Point is a planar coordinate in meters.
type Point struct {
	X float64 `yaml:"x" toml:"x" json:"x"`
	Y float64 `yaml:"y" toml:"y" json:"y"`
}

// BankDef places one bank. Index overrides the call-order bank index.
type BankDef struct {
	Origin  Point `yaml:"origin" toml:"origin" json:"origin"`
	Columns int   `yaml:"columns" toml:"columns" json:"columns"`
	Rows    int   `yaml:"rows" toml:"rows" json:"rows"`
	Index   *int  `yaml:"index,omitempty" toml:"index" json:"index,omitempty"`
}

// StackDef places banks one after another along Y. When Count is set and
// Banks is empty, Count banks of Columns x Rows are generated; otherwise the
// listed banks are stacked and their origins ignored.
type StackDef struct {
	Start      Point   `yaml:"start" toml:"start" json:"start"`
	RowSpacing float64 `yaml:"row_spacing" toml:"row_spacing" json:"row_spacing"`
	Direction  string  `yaml:"direction,omitempty" toml:"direction" json:"direction,omitempty"`
	Count      int     `yaml:"count,omitempty" toml:"count" json:"count,omitempty"`
	Columns    int     `yaml:"columns,omitempty" toml:"columns" json:"columns,omitempty"`
	Rows       int     `yaml:"rows,omitempty" toml:"rows" json:"rows,omitempty"`
}

// ModuleCount returns the number of modules the scenario will place.
func (s *Scenario) ModuleCount() int {
	n := 0
	for _, b := range s.BankDefs() {
		n += b.Columns * b.Rows
	}
	return n
}

// BankDefs returns the banks to place, generating them from Stack when the
// scenario lists none.
func (s *Scenario) BankDefs() []BankDef {
	if len(s.Banks) > 0 || s.Stack == nil || s.Stack.Count <= 0 {
		return s.Banks
	}
	defs := make([]BankDef, s.Stack.Count)
	for i := range defs {
		defs[i] = BankDef{Columns: s.Stack.Columns, Rows: s.Stack.Rows}
	}
	return defs
}
