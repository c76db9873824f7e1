package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ChicagoDave/fieldplanner/pkg/store"
)

func testServer(t *testing.T, projectPath string) *Server {
	t.Helper()
	return New(projectPath, 0, log.New(io.Discard))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestScenarios(t *testing.T) {
	h := testServer(t, "../../examples/default-field").Handler()
	rec := get(t, h, "/api/scenarios")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var out []scenarioSummary
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d scenarios, want project + 3 built-in", len(out))
	}
	if out[0].Name != ProjectScenario || out[0].Modules != 108 {
		t.Errorf("first entry = %+v", out[0])
	}
}

func TestScenarioDetail(t *testing.T) {
	h := testServer(t, "").Handler()
	rec := get(t, h, "/api/scenarios/stacked")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Scenario struct {
			Name     string `json:"name"`
			Strategy string `json:"strategy"`
		} `json:"scenario"`
		Validation struct {
			Valid bool `json:"valid"`
		} `json:"validation"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Scenario.Name != "stacked" || out.Scenario.Strategy != "snake" || !out.Validation.Valid {
		t.Errorf("got %+v", out)
	}
}

func TestWiring(t *testing.T) {
	h := testServer(t, "").Handler()
	rec := get(t, h, "/api/scenarios/default/wiring")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Strategy string `json:"strategy"`
		Strings  []struct {
			Index    int      `json:"index"`
			Modules  []string `json:"modules"`
			Distance float64  `json:"distance"`
		} `json:"strings"`
		Total float64 `json:"total_distance"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Strings) != 9 || out.Total != 99 {
		t.Errorf("got %d strings, total %f", len(out.Strings), out.Total)
	}
	if out.Strings[0].Modules[0] != "b0-r0-c0" || len(out.Strings[0].Modules) != 12 {
		t.Errorf("string 0 = %v", out.Strings[0].Modules)
	}
}

func TestWiringOverrides(t *testing.T) {
	h := testServer(t, "").Handler()

	rec := get(t, h, "/api/scenarios/default/wiring?k=36&strategy=snake")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Strategy string            `json:"strategy"`
		Strings  []json.RawMessage `json:"strings"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Strategy != "snake" || len(out.Strings) != 3 {
		t.Errorf("got strategy %s with %d strings", out.Strategy, len(out.Strings))
	}

	for _, path := range []string{
		"/api/scenarios/default/wiring?k=0",
		"/api/scenarios/default/wiring?k=abc",
		"/api/scenarios/default/wiring?strategy=annealing",
	} {
		if rec := get(t, h, path); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

func TestUnknownScenario(t *testing.T) {
	h := testServer(t, "").Handler()
	for _, path := range []string{
		"/api/scenarios/nope",
		"/api/scenarios/nope/wiring",
		"/api/scenarios/nope/scene",
		"/api/scenarios/project/wiring",
	} {
		rec := get(t, h, path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, rec.Code)
		}
		var body map[string]string
		json.NewDecoder(rec.Body).Decode(&body)
		if body["code"] != "NOT_FOUND" {
			t.Errorf("%s: code = %q", path, body["code"])
		}
	}
}

func TestScene(t *testing.T) {
	h := testServer(t, "../../examples/stacked-field").Handler()
	rec := get(t, h, "/api/scenarios/project/scene")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Metadata struct {
			RunID    string `json:"run_id"`
			Scenario string `json:"scenario"`
		} `json:"metadata"`
		Entities []json.RawMessage `json:"entities"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Metadata.Scenario != ProjectScenario || out.Metadata.RunID == "" {
		t.Errorf("metadata = %+v", out.Metadata)
	}
	// 80 panels, 8 strings of 10 with 9 wires each.
	if len(out.Entities) != 80+72 {
		t.Errorf("entities = %d, want 152", len(out.Entities))
	}
}

func TestCost(t *testing.T) {
	h := testServer(t, "").Handler()
	rec := get(t, h, "/api/scenarios/default/cost")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Quantities struct {
			CombinerInputs int `json:"combiner_inputs"`
		} `json:"quantities"`
		Estimate struct {
			Total float64 `json:"total"`
		} `json:"estimate"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Quantities.CombinerInputs != 9 || out.Estimate.Total <= 0 {
		t.Errorf("unexpected estimate: %+v", out)
	}
}

func TestDiagram(t *testing.T) {
	h := testServer(t, "").Handler()
	rec := get(t, h, "/api/scenarios/legacy/diagram.svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("body is not SVG")
	}
}

func TestRunsRecorded(t *testing.T) {
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	s := testServer(t, "")
	s.SetStore(st)
	h := s.Handler()

	rec := get(t, h, "/api/scenarios/legacy/wiring")
	id := rec.Header().Get("X-Run-ID")
	if id == "" {
		t.Fatal("expected X-Run-ID header")
	}

	rec = get(t, h, "/api/runs/"+id)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var run store.Run
	if err := json.NewDecoder(rec.Body).Decode(&run); err != nil {
		t.Fatal(err)
	}
	if run.Scenario != "legacy" || run.MaxStringSize != 10 || run.Strings != 11 {
		t.Errorf("run = %+v", run)
	}

	rec = get(t, h, "/api/runs?limit=5")
	var runs []store.Run
	if err := json.NewDecoder(rec.Body).Decode(&runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("runs = %d, want 1", len(runs))
	}

	if rec := get(t, h, "/api/runs/unknown"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown run status = %d", rec.Code)
	}
	if rec := get(t, h, "/api/runs?limit=x"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d", rec.Code)
	}
}

func TestRunsWithoutStore(t *testing.T) {
	h := testServer(t, "").Handler()
	rec := get(t, h, "/api/runs")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(t, h, "/api/runs/abc"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestIndex(t *testing.T) {
	rec := get(t, testServer(t, "").Handler(), "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "FieldPlanner") {
		t.Errorf("index: %d", rec.Code)
	}
}
