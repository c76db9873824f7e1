package spec

import (
	"slices"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
)

// Reference panel footprint and bank shape used by the built-in scenarios.
const (
	panelWidth  = 1.0
	panelHeight = 0.5
	bankCols    = 12
	bankRows    = 3

	// defaultRowSpacing puts 3-row banks of 0.5m panels 5m apart.
	defaultRowSpacing = 5.0 - bankRows*panelHeight
)

var catalog = map[string]func() *Scenario{
	"default": func() *Scenario {
		return &Scenario{
			Name:          "default",
			Description:   "three 12x3 banks at y = 0, 5, 10",
			Module:        ModuleDef{Name: "panel", Width: panelWidth, Height: panelHeight},
			Banks:         referenceBanks(),
			MaxStringSize: 12,
		}
	},
	"legacy": func() *Scenario {
		return &Scenario{
			Name:          "legacy",
			Description:   "default layout wired in strings of 10",
			Module:        ModuleDef{Name: "panel", Width: panelWidth, Height: panelHeight},
			Banks:         referenceBanks(),
			MaxStringSize: 10,
		}
	},
	"stacked": func() *Scenario {
		return &Scenario{
			Name:        "stacked",
			Description: "three 12x3 banks stacked downward with 1m between banks",
			Module:      ModuleDef{Name: "panel", Width: panelWidth, Height: panelHeight},
			Stack: &StackDef{
				RowSpacing: 1.0,
				Direction:  "down",
				Count:      3,
				Columns:    bankCols,
				Rows:       bankRows,
			},
			RowDirection:  "down",
			MaxStringSize: 12,
			Strategy:      "snake",
		}
	},
}

func referenceBanks() []BankDef {
	return []BankDef{
		{Origin: Point{0, 0}, Columns: bankCols, Rows: bankRows},
		{Origin: Point{0, 5}, Columns: bankCols, Rows: bankRows},
		{Origin: Point{0, 10}, Columns: bankCols, Rows: bankRows},
	}
}

// Lookup returns a fresh copy of the named built-in scenario.
func Lookup(name string) (*Scenario, error) {
	mk, ok := catalog[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown scenario %q (available: %v)", name, Names())
	}
	return mk(), nil
}

// Names returns the built-in scenario names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Shape returns a scenario of banks identical banks of cols x rows reference
// panels, stacked upward with the default spacing and wired in strings of
// maxStringSize. Every dimension must be positive.
func Shape(cols, rows, banks, maxStringSize int) (*Scenario, error) {
	if cols <= 0 || rows <= 0 || banks <= 0 || maxStringSize <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"shape dimensions must be positive, got %d columns x %d rows x %d banks, string size %d",
			cols, rows, banks, maxStringSize)
	}
	return &Scenario{
		Name:   "shape",
		Module: ModuleDef{Name: "panel", Width: panelWidth, Height: panelHeight},
		Stack: &StackDef{
			RowSpacing: defaultRowSpacing,
			Direction:  "up",
			Count:      banks,
			Columns:    cols,
			Rows:       rows,
		},
		MaxStringSize: maxStringSize,
	}, nil
}
