package spec

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
)

func TestLoadProjectYAML(t *testing.T) {
	s, err := LoadProject("../../examples/default-field")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if s.Name != "default-field" {
		t.Errorf("name = %q, want default-field", s.Name)
	}
	if s.Module.Width != 1.0 || s.Module.Height != 0.5 {
		t.Errorf("module = %vx%v, want 1x0.5", s.Module.Width, s.Module.Height)
	}
	if len(s.Banks) != 3 {
		t.Fatalf("banks = %d, want 3", len(s.Banks))
	}
	if s.Banks[2].Origin.Y != 10 || s.Banks[2].Columns != 12 || s.Banks[2].Rows != 3 {
		t.Errorf("bank 2 = %+v", s.Banks[2])
	}
	if s.MaxStringSize != 12 {
		t.Errorf("max_string_size = %d, want 12", s.MaxStringSize)
	}
	if s.ModuleCount() != 108 {
		t.Errorf("ModuleCount = %d, want 108", s.ModuleCount())
	}
}

func TestLoadProjectTOML(t *testing.T) {
	s, err := LoadProject("../../examples/stacked-field")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if s.Stack == nil {
		t.Fatal("expected stack section")
	}
	if s.Stack.Count != 4 || s.Stack.Columns != 10 || s.Stack.Rows != 2 {
		t.Errorf("stack = %+v", *s.Stack)
	}
	if s.Stack.Start.Y != 20 || s.Stack.Direction != "down" {
		t.Errorf("stack start/direction = %v/%s", s.Stack.Start, s.Stack.Direction)
	}

	res, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Segment.Len() != 80 || len(res.Strings) != 8 {
		t.Errorf("got %d modules in %d strings, want 80 in 8", res.Segment.Len(), len(res.Strings))
	}
	if math.Abs(res.Total-72) > 1e-9 {
		t.Errorf("total = %f, want 72", res.Total)
	}
	// Banks step down by 2 rows * 0.5 + 1.0 spacing.
	if y := res.Segment.Banks[3].Modules[0].Position.Y; math.Abs(y-14) > 1e-9 {
		t.Errorf("bank 3 origin y = %f, want 14", y)
	}
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject("/nonexistent/path")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(yamlPath, []byte("name: x\nmax_strng_size: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(yamlPath); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("yaml: expected INVALID_FORMAT, got %v", err)
	}

	tomlPath := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(tomlPath, []byte("name = \"x\"\nmax_strng_size = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tomlPath); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("toml: expected INVALID_FORMAT, got %v", err)
	}

	jsonPath := filepath.Join(dir, "field.json")
	if err := os.WriteFile(jsonPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(jsonPath); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("json: expected INVALID_FORMAT, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		s, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		if s.Name != name {
			t.Errorf("Lookup(%s).Name = %s", name, s.Name)
		}
		if _, err := s.Build(); err != nil {
			t.Errorf("Build(%s): %v", name, err)
		}
	}

	if _, err := Lookup("does-not-exist"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	a, _ := Lookup("default")
	a.Banks[0].Columns = 1
	a.MaxStringSize = 1
	b, _ := Lookup("default")
	if b.Banks[0].Columns != 12 || b.MaxStringSize != 12 {
		t.Error("mutating a looked-up scenario changed the catalog")
	}
}

func TestDefaultScenarioEndToEnd(t *testing.T) {
	s, _ := Lookup("default")
	res, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Segment.Len() != 108 || len(res.Segment.Banks) != 3 {
		t.Fatalf("got %d modules in %d banks", res.Segment.Len(), len(res.Segment.Banks))
	}
	if len(res.Strings) != 9 {
		t.Errorf("strings = %d, want 9", len(res.Strings))
	}
	for _, str := range res.Strings {
		if math.Abs(str.Distance-11) > 1e-9 {
			t.Errorf("string %d distance = %f, want 11", str.Index, str.Distance)
		}
	}
}

func TestShapeMatchesDefaultLayout(t *testing.T) {
	shape, err := Shape(12, 3, 3, 12)
	if err != nil {
		t.Fatal(err)
	}
	def, _ := Lookup("default")

	a, err := shape.Layout()
	if err != nil {
		t.Fatalf("shape Layout: %v", err)
	}
	b, err := def.Layout()
	if err != nil {
		t.Fatalf("default Layout: %v", err)
	}
	if a.Len() != b.Len() {
		t.Fatalf("module counts differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Modules {
		if !a.Modules[i].Position.Equals(b.Modules[i].Position, 1e-9) {
			t.Fatalf("module %d at %v, default at %v", i, a.Modules[i].Position, b.Modules[i].Position)
		}
	}
}

func TestShapeRejectsNonPositive(t *testing.T) {
	for _, dims := range [][4]int{{0, 3, 3, 12}, {12, -1, 3, 12}, {12, 3, 0, 12}, {12, 3, 3, 0}} {
		s, err := Shape(dims[0], dims[1], dims[2], dims[3])
		if s != nil || !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("Shape%v: got %v, %v", dims, s, err)
		}
	}
}

func TestBuildInvalid(t *testing.T) {
	cases := map[string]*Scenario{
		"zero string size": {Module: ModuleDef{Width: 1, Height: 1}, Banks: []BankDef{{Columns: 1, Rows: 1}}},
		"zero width":       {Module: ModuleDef{Width: 0, Height: 1}, MaxStringSize: 2},
		"zero rows":        {Module: ModuleDef{Width: 1, Height: 1}, Banks: []BankDef{{Columns: 1}}, MaxStringSize: 2},
		"negative count":   {Module: ModuleDef{Width: 1, Height: 1}, Stack: &StackDef{Count: -1}, MaxStringSize: 2},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Build(); !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("expected INVALID_ARGUMENT, got %v", err)
			}
		})
	}

	bad := &Scenario{Module: ModuleDef{Width: 1, Height: 1}, MaxStringSize: 2, Strategy: "annealing"}
	if _, err := bad.Build(); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown strategy: expected NOT_FOUND, got %v", err)
	}
}
