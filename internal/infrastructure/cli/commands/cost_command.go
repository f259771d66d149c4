package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dlwhyte/agentfoundry/internal/app"
	"github.com/dlwhyte/agentfoundry/internal/domain"
)

// NewCostCommand creates the cost command with all subcommands
func NewCostCommand(container *app.Container) *cobra.Command {
	costCmd := &cobra.Command{
		Use:   "cost",
		Short: "Estimate API spend per model",
	}

	costCmd.AddCommand(
		newCostEstimateCommand(container),
		newCostCompareCommand(container),
		newCostTableCommand(container),
	)

	return costCmd
}

// newCostEstimateCommand creates the 'cost estimate' subcommand
func newCostEstimateCommand(container *app.Container) *cobra.Command {
	var (
		model        string
		inputTokens  int
		outputTokens int
		text         string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost of one exchange",
		RunE: func(cmd *cobra.Command, args []string) error {
			return estimateCost(cmd.Context(), cmd.OutOrStdout(), container, model, text, inputTokens, outputTokens)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model to price (default from config)")
	cmd.Flags().IntVar(&inputTokens, "input-tokens", 1000, "Input token budget")
	cmd.Flags().IntVar(&outputTokens, "output-tokens", 500, "Expected output tokens")
	cmd.Flags().StringVar(&text, "text", "", "Estimate input tokens from this text instead of --input-tokens")

	return cmd
}

// newCostCompareCommand creates the 'cost compare' subcommand
func newCostCompareCommand(container *app.Container) *cobra.Command {
	var (
		inputTokens  int
		outputTokens int
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank every known model by cost, cheapest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareCosts(cmd.OutOrStdout(), container, inputTokens, outputTokens)
		},
	}

	cmd.Flags().IntVar(&inputTokens, "input-tokens", 1000, "Input token budget")
	cmd.Flags().IntVar(&outputTokens, "output-tokens", 500, "Expected output tokens")

	return cmd
}

// newCostTableCommand creates the 'cost table' subcommand
func newCostTableCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Show the merged per-MTok pricing table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPricingTable(cmd.OutOrStdout(), container)
		},
	}
}

// estimateCost prices one exchange on a single model
func estimateCost(ctx context.Context, out io.Writer, container *app.Container, model string, text string, inputTokens int, outputTokens int) error {
	if model == "" {
		cfg, err := container.ConfigProvider.Load(ctx)
		if err == nil {
			model = cfg.Preferences.DefaultModel
		}
	}

	var (
		estimate domain.CostEstimate
		err      error
	)
	if text != "" {
		estimate, err = container.PricingService.EstimateText(model, text, outputTokens)
	} else {
		estimate, err = container.PricingService.Estimate(model, inputTokens, outputTokens)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Model: %s (%s)\n", estimate.Model, estimate.Provider)
	fmt.Fprintf(out, "Input:  %s tokens -> $%.6f\n", humanize.Comma(int64(estimate.InputTokens)), estimate.InputUSD)
	fmt.Fprintf(out, "Output: %s tokens -> $%.6f\n", humanize.Comma(int64(estimate.OutputTokens)), estimate.OutputUSD)
	fmt.Fprintf(out, "Total: $%.6f\n", estimate.TotalUSD)
	return nil
}

// compareCosts ranks every priced model for the same token budget
func compareCosts(out io.Writer, container *app.Container, inputTokens int, outputTokens int) error {
	estimates := container.PricingService.Compare(inputTokens, outputTokens)

	fmt.Fprintf(out, "Cost for %s input / %s output tokens:\n",
		humanize.Comma(int64(inputTokens)),
		humanize.Comma(int64(outputTokens)))
	for _, estimate := range estimates {
		label := fmt.Sprintf("$%.6f", estimate.TotalUSD)
		if estimate.TotalUSD == 0 {
			label = "free (local)"
		}
		fmt.Fprintf(out, "  %-24s %-12s %s\n", estimate.Model, estimate.Provider, label)
	}
	return nil
}

// showPricingTable displays the merged pricing table
func showPricingTable(out io.Writer, container *app.Container) error {
	fmt.Fprintf(out, "%-24s %-12s %12s %12s\n", "MODEL", "PROVIDER", "IN $/MTok", "OUT $/MTok")
	for _, price := range container.PricingService.Table() {
		fmt.Fprintf(out, "%-24s %-12s %12.2f %12.2f\n",
			price.Model, price.Provider, price.InputPerMTok, price.OutputPerMTok)
	}
	return nil
}
