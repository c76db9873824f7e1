package spec

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/field"
	"github.com/ChicagoDave/fieldplanner/pkg/geo"
	"github.com/ChicagoDave/fieldplanner/pkg/layout"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

// ProjectFiles are the file names LoadProject looks for, in order.
var ProjectFiles = []string{"field.yaml", "field.yml", "field.toml"}

// Load reads a scenario from a YAML or TOML file, chosen by extension.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "scenario file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading scenario file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scenario file type %q", filepath.Ext(path))
	}
}

// ParseYAML decodes a YAML scenario. Unknown fields are rejected so that a
// misspelled parameter is reported rather than silently defaulted.
func ParseYAML(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing scenario YAML")
	}
	return &s, nil
}

// ParseTOML decodes a TOML scenario. Unknown keys are rejected.
func ParseTOML(data []byte) (*Scenario, error) {
	var s Scenario
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing scenario TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scenario key %q", undecoded[0].String())
	}
	return &s, nil
}

// LoadProject loads the scenario in a project directory, trying each of
// ProjectFiles in turn.
func LoadProject(projectDir string) (*Scenario, error) {
	for _, name := range ProjectFiles {
		path := filepath.Join(projectDir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no %s in %s", strings.Join(ProjectFiles, " or "), projectDir)
}

// Layout builds the scenario's segment without wiring it.
func (s *Scenario) Layout() (*field.Segment, error) {
	reg := field.NewRegistry()
	name := s.Module.Name
	if name == "" {
		name = "module"
	}
	mt, err := reg.Register(name, s.Module.Width, s.Module.Height)
	if err != nil {
		return nil, err
	}

	if s.Stack != nil && s.Stack.Count < 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "stack.count must not be negative, got %d", s.Stack.Count)
	}
	defs := s.BankDefs()
	specs := make([]layout.BankSpec, len(defs))
	for i, b := range defs {
		specs[i] = layout.BankSpec{
			Origin:  geo.Vec(b.Origin.X, b.Origin.Y),
			Columns: b.Columns,
			Rows:    b.Rows,
			Index:   b.Index,
		}
	}

	opts := layout.Options{RowDirection: layout.RowDirection(s.RowDirection)}
	if s.Stack != nil {
		opts.Stack = &layout.Stacking{
			Start:      geo.Vec(s.Stack.Start.X, s.Stack.Start.Y),
			RowSpacing: s.Stack.RowSpacing,
			Direction:  layout.RowDirection(s.Stack.Direction),
		}
	}
	return layout.BuildSegment(mt, specs, opts)
}

// Build lays out the scenario and computes its wiring with the scenario's
// strategy and string size.
func (s *Scenario) Build() (*wiring.Result, error) {
	strategy, err := wiring.StrategyByName(s.Strategy)
	if err != nil {
		return nil, err
	}
	seg, err := s.Layout()
	if err != nil {
		return nil, err
	}
	return wiring.Compute(seg, s.MaxStringSize, strategy)
}
