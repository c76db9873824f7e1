package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/fieldplanner/pkg/cost"
	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/render"
	"github.com/ChicagoDave/fieldplanner/pkg/scene"
	"github.com/ChicagoDave/fieldplanner/pkg/spec"
	"github.com/ChicagoDave/fieldplanner/pkg/store"
	"github.com/ChicagoDave/fieldplanner/pkg/validation"
	"github.com/ChicagoDave/fieldplanner/pkg/wiring"
)

// loadScenario resolves the scenario from --file, a project directory
// argument or --scenario, in that order, and applies the overrides. The
// returned name identifies the scenario in reports and run history.
func loadScenario(sf scenarioFlags, args []string) (*spec.Scenario, string, error) {
	var (
		s    *spec.Scenario
		name string
		err  error
	)
	switch {
	case sf.file != "":
		s, err = spec.Load(sf.file)
		name = sf.file
	case len(args) == 1:
		s, err = spec.LoadProject(args[0])
		name = args[0]
	default:
		name = sf.scenario
		if name == "" {
			name = "default"
		}
		s, err = spec.Lookup(name)
	}
	if err != nil {
		return nil, "", fmt.Errorf("loading scenario: %w", err)
	}
	if s.Name != "" && (sf.file != "" || len(args) == 1) {
		name = s.Name
	}

	if sf.maxString != 0 {
		s.MaxStringSize = sf.maxString
	}
	if sf.strategy != "" {
		s.Strategy = sf.strategy
	}
	return s, name, nil
}

// loadAndBuild loads the scenario, rejects it if schema validation fails and
// computes the wiring.
func loadAndBuild(cmd *cobra.Command, sf scenarioFlags, args []string) (*wiring.Result, string, *validation.Report, error) {
	s, name, err := loadScenario(sf, args)
	if err != nil {
		return nil, "", nil, err
	}
	report := validation.ValidateScenario(s)
	if !report.Valid {
		printValidationReport(cmd.ErrOrStderr(), report)
		return nil, "", report, report.Err()
	}

	logger := loggerFromContext(cmd.Context())
	logger.Debug("building", "scenario", name, "modules", s.ModuleCount(), "max_string_size", s.MaxStringSize)
	res, err := s.Build()
	if err != nil {
		return nil, "", report, err
	}
	return res, name, report, nil
}

func runSolve(cmd *cobra.Command, sf scenarioFlags, args []string, format, dbPath string) error {
	if format != "text" && format != "json" {
		return errors.New(errors.ErrCodeInvalidArgument, "unknown format %q (want text or json)", format)
	}
	res, name, report, err := loadAndBuild(cmd, sf, args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	costReport, err := cost.Estimate(res, cost.DefaultRates())
	if err != nil {
		return err
	}

	var run *store.Run
	if dbPath != "" {
		st, err := store.Open(ctx, dbPath)
		if err != nil {
			return fmt.Errorf("opening run history: %w", err)
		}
		defer st.Close()
		run = store.NewRun(name, res)
		if err := st.Save(ctx, run); err != nil {
			return err
		}
		logger.Debug("recorded run", "id", run.ID, "db", dbPath)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		graph := scene.Assemble(res)
		graph.Metadata.Scenario = name
		if run != nil {
			graph.Metadata.RunID = run.ID
		}
		output := map[string]any{
			"scenario":    name,
			"validation":  report,
			"wiring":      res,
			"scene_graph": graph,
			"cost":        costReport,
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	res.Report(logger)
	printWiringReport(out, name, res)
	fmt.Fprintln(out)
	printCostReport(out, costReport)
	if run != nil {
		printDetail(out, "run %s", run.ID)
	}
	return nil
}

func runValidate(cmd *cobra.Command, sf scenarioFlags, args []string) error {
	s, _, err := loadScenario(sf, args)
	if err != nil {
		return err
	}
	report := validation.ValidateScenario(s)

	// Layout and wiring are only checked for a scenario that passes the schema.
	if report.Valid {
		res, err := s.Build()
		if err != nil {
			return err
		}
		report.Merge(validation.ValidateLayout(res.Segment))
		report.Merge(validation.ValidateWiring(res))
		report.Merge(scene.ValidateGraph(scene.Assemble(res)))
	}

	printValidationReport(cmd.OutOrStdout(), report)
	return report.Err()
}

func runScenarios(cmd *cobra.Command) error {
	var rows [][]string
	for _, name := range spec.Names() {
		s, err := spec.Lookup(name)
		if err != nil {
			return err
		}
		strategy := s.Strategy
		if strategy == "" {
			strategy = wiring.StrategyInsertion
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", s.ModuleCount()),
			fmt.Sprintf("%d", s.MaxStringSize),
			strategy,
			s.Description,
		})
	}
	printTable(cmd.OutOrStdout(), []string{"NAME", "MODULES", "K", "STRATEGY", "DESCRIPTION"}, rows)
	return nil
}

func runDiagram(cmd *cobra.Command, sf scenarioFlags, args []string, outPath string, dotOnly, detailed bool) error {
	res, _, _, err := loadAndBuild(cmd, sf, args)
	if err != nil {
		return err
	}

	data := []byte(render.ToDOT(res, render.Options{Detailed: detailed}))
	if !dotOnly {
		data, err = render.RenderSVG(cmd.Context(), string(data))
		if err != nil {
			return err
		}
	}

	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", outPath)
	}
	printSuccess(cmd.OutOrStdout(), "wrote %s", outPath)
	return nil
}

func runHistory(cmd *cobra.Command, dbPath string, limit int, args []string) error {
	ctx := cmd.Context()
	st, err := store.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		run, err := st.Get(ctx, args[0])
		if err != nil {
			return err
		}
		printRun(out, run)
		return nil
	}

	runs, err := st.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		printDetail(out, "no runs recorded in %s", dbPath)
		return nil
	}
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Scenario,
			r.Strategy,
			fmt.Sprintf("%d", r.Strings),
			fmt.Sprintf("%.3f", r.TotalDistance),
		}
	}
	printTable(out, []string{"ID", "CREATED", "SCENARIO", "STRATEGY", "STRINGS", "TOTAL (m)"}, rows)
	return nil
}
