// Package cmd - rates command
package cmd

import (
	"github.com/spf13/cobra"

	"cleaning-cost/core/output"
)

func newRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Print the rate table",
		Long: `Print every size bucket of the configured rate table with its
weekly, bi-weekly, monthly and deep clean base rates.

Examples:
  cleaning-cost rates
  cleaning-cost rates --rate-table bracket --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := runtimeFrom(cmd)
			table := rt.engine.Table()
			return rt.formatter.RenderRates(cmd.OutOrStdout(), &output.RateSheet{
				Table:    table.Name(),
				Currency: rt.engine.Currency(),
				Rows:     table.Rows(),
			})
		},
	}
}
