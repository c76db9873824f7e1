package cost

// Baseline unit costs for a string wiring estimate.
const (
	PanelCostPerM2      = 200.0 // $/m² panel area
	StringCableCostPerM = 1.5   // $/m PV wire between modules
	ConnectorPairCost   = 5.0   // $ per mated connector pair
	CombinerInputCost   = 40.0  // $ per fused combiner input

	// Every string ends in a positive and a negative home-run termination.
	TerminationsPerString = 2
)
