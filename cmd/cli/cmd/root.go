// Package cmd provides the CLI commands for cleaning-cost.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cleaning-cost/core/output"
	"cleaning-cost/core/pricing"
	"cleaning-cost/internal/config"
	"cleaning-cost/internal/errors"
	"cleaning-cost/internal/logging"
)

// Version is the CLI version
var Version = "1.0.0"

// runtimeKey stores the resolved runtime in the command context.
type runtimeKey struct{}

// runtime is what every subcommand needs after configuration is loaded.
type runtime struct {
	cfg       *config.Config
	engine    *pricing.Engine
	formatter output.Formatter
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "cleaning-cost",
		Short: "Estimate home cleaning prices",
		Long: `cleaning-cost prices residential cleaning jobs.

It looks up a base weekly rate for the property size, applies room,
add-on, basement and floor adjustments, and derives weekly, bi-weekly,
monthly and deep clean prices.

Examples:
  cleaning-cost estimate --sqft 1200 --bedrooms 3 --pets
  cleaning-cost estimate --profile house.hcl --format json
  cleaning-cost rooms --bedrooms 2 --offices 1 --floor "Office 1=tile"
  cleaning-cost rates --rate-table bracket`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}
			config.Set(cfg)

			if err := logging.Initialize(cfg.Logging); err != nil {
				return errors.Wrap(errors.TypeConfig, "failed to initialize logging", err)
			}

			table, err := pricing.NewRateTable(cfg.Pricing.RateTable)
			if err != nil {
				return err
			}
			formatter, ok := output.Get(output.Format(cfg.Output.DefaultFormat))
			if !ok {
				return errors.Config(fmt.Sprintf("unknown output format %q", cfg.Output.DefaultFormat))
			}

			rt := &runtime{
				cfg: cfg,
				engine: pricing.NewEngine(table,
					pricing.WithLogger(logging.Named("engine")),
					pricing.WithCurrency(cfg.Pricing.Currency)),
				formatter: formatter,
			}
			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey{}, rt))
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./cleaning-cost.yaml or $HOME/.cleaning-cost.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	pf.String("rate-table", defaults.Pricing.RateTable, "rate table (formula, bracket)")
	pf.String("currency", string(defaults.Pricing.Currency), "display currency")
	pf.StringP("format", "f", defaults.Output.DefaultFormat, "output format (cli, markdown, json, yaml)")
	pf.Bool("breakdown", defaults.Output.ShowBreakdown, "show the weekly adjustment breakdown")
	pf.Bool("preserve-floors", defaults.Rooms.PreserveFloors, "keep floor selections when room counts change")
	pf.String("log-level", defaults.Logging.Level, "log level (debug, info, warn, error)")
	pf.String("log-format", defaults.Logging.Format, "log format (console, json)")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("rate-table", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return pricing.TableNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newEstimateCmd())
	rootCmd.AddCommand(newRoomsCmd())
	rootCmd.AddCommand(newRatesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func runtimeFrom(cmd *cobra.Command) *runtime {
	if rt, ok := cmd.Context().Value(runtimeKey{}).(*runtime); ok {
		return rt
	}
	cfg := config.Get()
	f, _ := output.Get(output.FormatCLI)
	return &runtime{cfg: cfg, engine: pricing.NewEngine(nil), formatter: f}
}

// newVersionCmd prints version information
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cleaning-cost version %s\n", Version)
		},
	}
}
