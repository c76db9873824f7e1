// Package cost estimates the material cost of a wired field from its layout
// and string wiring.
package cost

import (
	"math"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

// Rates are the unit costs an estimate is priced with.
type Rates struct {
	PanelPerM2    float64 `json:"panel_per_m2"`
	CablePerM     float64 `json:"cable_per_m"`
	ConnectorPair float64 `json:"connector_pair"`
	CombinerInput float64 `json:"combiner_input"`
}

// DefaultRates returns the baseline unit costs.
func DefaultRates() Rates {
	return Rates{
		PanelPerM2:    PanelCostPerM2,
		CablePerM:     StringCableCostPerM,
		ConnectorPair: ConnectorPairCost,
		CombinerInput: CombinerInputCost,
	}
}

// Validate rejects negative and non-finite rates, reporting the first in
// field order.
func (r Rates) Validate() error {
	rates := []struct {
		name string
		v    float64
	}{
		{"panel_per_m2", r.PanelPerM2},
		{"cable_per_m", r.CablePerM},
		{"connector_pair", r.ConnectorPair},
		{"combiner_input", r.CombinerInput},
	}
	for _, rate := range rates {
		if !(rate.v >= 0) || math.IsInf(rate.v, 1) {
			return errors.New(errors.ErrCodeInvalidArgument,
				"rate %s must be a finite number, not negative, got %g", rate.name, rate.v)
		}
	}
	return nil
}

// Quantities are the material counts a wiring implies.
type Quantities struct {
	PanelAreaM2    float64 `json:"panel_area_m2"`
	CableM         float64 `json:"cable_m"`
	Jumpers        int     `json:"jumpers"`
	ConnectorPairs int     `json:"connector_pairs"`
	CombinerInputs int     `json:"combiner_inputs"`
}

// Breakdown is a cost split by category.
type Breakdown struct {
	Panels     float64 `json:"panels"`
	Cable      float64 `json:"cable"`
	Connectors float64 `json:"connectors"`
	Combiners  float64 `json:"combiners"`
	Total      float64 `json:"total"`
}

// Summary holds per-unit figures derived from the total.
type Summary struct {
	PerModule float64 `json:"per_module"`
	PerString float64 `json:"per_string"`
	// BOS excludes panels: cable, connectors and combiner inputs.
	BOS float64 `json:"balance_of_system"`
}

// Report is a priced estimate for one wiring result.
type Report struct {
	Rates      Rates      `json:"rates"`
	Quantities Quantities `json:"quantities"`
	Estimate   Breakdown  `json:"estimate"`
	Summary    Summary    `json:"summary"`
}

// Estimate prices res with rates. Each string needs one connector pair per
// jumper between consecutive modules plus its home-run terminations, and
// lands on one combiner input.
func Estimate(res *wiring.Result, rates Rates) (*Report, error) {
	if res == nil || res.Segment == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "estimate requires a wired segment")
	}
	if err := rates.Validate(); err != nil {
		return nil, err
	}

	var q Quantities
	for _, m := range res.Segment.Modules {
		q.PanelAreaM2 += m.Type.Size.X * m.Type.Size.Y
	}
	for _, s := range res.Strings {
		if len(s.Modules) == 0 {
			continue
		}
		q.Jumpers += len(s.Modules) - 1
		q.CombinerInputs++
	}
	q.CableM = res.Total
	q.ConnectorPairs = q.Jumpers + q.CombinerInputs*TerminationsPerString

	report := &Report{Rates: rates, Quantities: q}
	report.Estimate = makeBreakdown(
		q.PanelAreaM2*rates.PanelPerM2,
		q.CableM*rates.CablePerM,
		float64(q.ConnectorPairs)*rates.ConnectorPair,
		float64(q.CombinerInputs)*rates.CombinerInput,
	)

	b := report.Estimate
	report.Summary.BOS = b.Cable + b.Connectors + b.Combiners
	if n := res.Segment.Len(); n > 0 {
		report.Summary.PerModule = b.Total / float64(n)
	}
	if q.CombinerInputs > 0 {
		report.Summary.PerString = b.Total / float64(q.CombinerInputs)
	}
	return report, nil
}

func makeBreakdown(panels, cable, connectors, combiners float64) Breakdown {
	return Breakdown{
		Panels:     panels,
		Cable:      cable,
		Connectors: connectors,
		Combiners:  combiners,
		Total:      panels + cable + connectors + combiners,
	}
}
