package cost

import (
	"math"
	"strings"
	"testing"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/spec"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func defaultResult(t *testing.T) *wiring.Result {
	t.Helper()
	s, err := spec.Lookup("default")
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Build()
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestEstimateDefaultField(t *testing.T) {
	report, err := Estimate(defaultResult(t), DefaultRates())
	if err != nil {
		t.Fatal(err)
	}

	q := report.Quantities
	if !approxEqual(q.PanelAreaM2, 54, 1e-9) {
		t.Errorf("panel area = %f, want 54", q.PanelAreaM2)
	}
	if !approxEqual(q.CableM, 99, 1e-9) {
		t.Errorf("cable = %f, want 99", q.CableM)
	}
	if q.Jumpers != 99 || q.CombinerInputs != 9 || q.ConnectorPairs != 117 {
		t.Errorf("jumpers=%d inputs=%d pairs=%d, want 99/9/117", q.Jumpers, q.CombinerInputs, q.ConnectorPairs)
	}

	b := report.Estimate
	checks := []struct {
		name      string
		got, want float64
	}{
		{"panels", b.Panels, 10800},
		{"cable", b.Cable, 148.5},
		{"connectors", b.Connectors, 585},
		{"combiners", b.Combiners, 360},
		{"total", b.Total, 11893.5},
		{"per module", report.Summary.PerModule, 110.125},
		{"per string", report.Summary.PerString, 1321.5},
		{"balance of system", report.Summary.BOS, 1093.5},
	}
	for _, c := range checks {
		if !approxEqual(c.got, c.want, 1e-6) {
			t.Errorf("%s = %f, want %f", c.name, c.got, c.want)
		}
	}
}

func TestEstimateBreakdownSums(t *testing.T) {
	s, err := spec.Shape(24, 4, 5, 20)
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Build()
	if err != nil {
		t.Fatal(err)
	}
	report, err := Estimate(res, DefaultRates())
	if err != nil {
		t.Fatal(err)
	}
	b := report.Estimate
	sum := b.Panels + b.Cable + b.Connectors + b.Combiners
	if !approxEqual(b.Total, sum, 1e-6) {
		t.Errorf("total %f != sum of parts %f", b.Total, sum)
	}
	if report.Quantities.Jumpers+report.Quantities.CombinerInputs != res.Segment.Len() {
		t.Errorf("jumpers + strings should equal module count %d", res.Segment.Len())
	}
}

func TestEstimateZeroRates(t *testing.T) {
	report, err := Estimate(defaultResult(t), Rates{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Estimate.Total != 0 || report.Summary.PerModule != 0 {
		t.Errorf("zero rates should price to zero, got %+v", report.Estimate)
	}
	if report.Quantities.Jumpers != 99 {
		t.Errorf("quantities should not depend on rates")
	}
}

func TestEstimateEmptyField(t *testing.T) {
	s := &spec.Scenario{Module: spec.ModuleDef{Width: 1, Height: 0.5}, MaxStringSize: 4}
	res, err := s.Build()
	if err != nil {
		t.Fatal(err)
	}
	report, err := Estimate(res, DefaultRates())
	if err != nil {
		t.Fatal(err)
	}
	if report.Estimate.Total != 0 || report.Summary.PerString != 0 {
		t.Errorf("empty field should cost nothing, got %+v", report.Estimate)
	}
}

func TestEstimateErrors(t *testing.T) {
	if _, err := Estimate(nil, DefaultRates()); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("nil result: got %v", err)
	}
	rates := DefaultRates()
	rates.CablePerM = -1
	if _, err := Estimate(defaultResult(t), rates); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("negative rate: got %v", err)
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1)} {
		rates := DefaultRates()
		rates.ConnectorPair = bad
		if _, err := Estimate(defaultResult(t), rates); !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("rate %g: got %v", bad, err)
		}
	}
}

func TestRatesValidateReportsFirstInOrder(t *testing.T) {
	rates := Rates{PanelPerM2: 1, CablePerM: -1, ConnectorPair: -2, CombinerInput: math.NaN()}
	for i := 0; i < 20; i++ {
		err := rates.Validate()
		if msg := errors.UserMessage(err); !strings.Contains(msg, "cable_per_m") {
			t.Fatalf("expected cable_per_m to be reported first, got %q", msg)
		}
	}
}
