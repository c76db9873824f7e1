package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ChicagoDave/fieldplanner/internal/server"
	"github.com/ChicagoDave/fieldplanner/pkg/errors"
	"github.com/ChicagoDave/fieldplanner/pkg/store"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err without its code prefix. The message is data, never
// a format string.
func reportError(w io.Writer, err error) {
	printError(w, "%s", errors.UserMessage(err))
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "fieldplanner",
		Short:         "Solar field layout and string wiring planner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(scenariosCmd())
	rootCmd.AddCommand(diagramCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

// scenarioFlags select a scenario and override its wiring parameters.
type scenarioFlags struct {
	scenario  string
	file      string
	maxString int
	strategy  string
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.scenario, "scenario", "s", "", "built-in scenario name (default \"default\")")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "scenario file (.yaml, .yml or .toml)")
	cmd.Flags().IntVarP(&f.maxString, "max-string", "k", 0, "override the maximum modules per string")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "override the wiring strategy (insertion, snake, nearest)")
}

func solveCmd() *cobra.Command {
	var (
		sf     scenarioFlags
		format string
		dbPath string
	)
	cmd := &cobra.Command{
		Use:   "solve [project-path]",
		Short: "Lay out a field and compute its string wiring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, sf, args, format, dbPath)
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().StringVar(&dbPath, "db", "", "record the run in this SQLite database")
	return cmd
}

func validateCmd() *cobra.Command {
	var sf scenarioFlags
	cmd := &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a scenario, its layout and its wiring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, sf, args)
		},
	}
	sf.register(cmd)
	return cmd
}

func scenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScenarios(cmd)
		},
	}
}

func diagramCmd() *cobra.Command {
	var (
		sf       scenarioFlags
		out      string
		dotOnly  bool
		detailed bool
	)
	cmd := &cobra.Command{
		Use:   "diagram [project-path]",
		Short: "Render the wiring as a Graphviz diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagram(cmd, sf, args, out, dotOnly, detailed)
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "emit DOT source instead of SVG")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label modules with positions and wires with lengths")
	return cmd
}

func historyCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, dbPath, limit, args)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database written by solve --db or serve --db")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list (0 for all)")
	cmd.MarkFlagRequired("db")
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		port   int
		dbPath string
	)
	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local server for the field viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			project := ""
			if len(args) == 1 {
				project = args[0]
			}
			srv := server.New(project, port, loggerFromContext(ctx))
			if dbPath != "" {
				st, err := store.Open(ctx, dbPath)
				if err != nil {
					return fmt.Errorf("opening run history: %w", err)
				}
				defer st.Close()
				srv.SetStore(st)
			}
			return srv.Start(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	cmd.Flags().StringVar(&dbPath, "db", "", "record wiring requests in this SQLite database")
	return cmd
}
