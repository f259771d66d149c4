package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dlwhyte/agentfoundry/internal/app"
)

// NewBreachCommand creates the breach impact calculator command
func NewBreachCommand(container *app.Container) *cobra.Command {
	breachCmd := &cobra.Command{
		Use:   "breach",
		Short: "Price the business impact of an AI agent breach",
	}

	breachCmd.AddCommand(
		newBreachIndustriesCommand(container),
		newBreachAssessCommand(container),
	)

	return breachCmd
}

// newBreachIndustriesCommand creates the 'breach industries' subcommand
func newBreachIndustriesCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "industries",
		Short: "List industry cost profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listIndustries(cmd.OutOrStdout(), container)
		},
	}
}

// newBreachAssessCommand creates the 'breach assess' subcommand
func newBreachAssessCommand(container *app.Container) *cobra.Command {
	var (
		industry    string
		records     int
		probability float64
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Compute expected loss and guardrail ROI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return assessBreach(cmd.OutOrStdout(), container, industry, records, probability)
		},
	}

	cmd.Flags().StringVar(&industry, "industry", "Technology / SaaS", "Industry profile name (prefix match)")
	cmd.Flags().IntVar(&records, "records", 0, "Customer records at risk (0 = industry average)")
	cmd.Flags().Float64Var(&probability, "probability", 10, "Annual breach probability percent")

	return cmd
}

// listIndustries displays the industry cost baselines
func listIndustries(out io.Writer, container *app.Container) error {
	for _, profile := range container.ImpactService.Profiles() {
		fmt.Fprintf(out, "%s\n", profile.Name)
		fmt.Fprintf(out, "  Average records exposed: %s\n", humanize.Comma(int64(profile.AvgRecords)))
		fmt.Fprintf(out, "  Cost per record: $%d\n", profile.CostPerBreachRecord)
		fmt.Fprintf(out, "  Regulatory fines: %s\n", profile.RegulatoryFineRange)
		fmt.Fprintf(out, "  Reputation: %s\n", profile.ReputationImpact)
		fmt.Fprintf(out, "  Annual guardrail cost: $%s\n", humanize.Comma(int64(profile.GuardrailCostAnnual)))
		fmt.Fprintf(out, "  Example: %s\n\n", profile.Example)
	}
	return nil
}

// assessBreach runs the ROI calculation for one industry
func assessBreach(out io.Writer, container *app.Container, industry string, records int, probability float64) error {
	assessment, err := container.ImpactService.Assess(industry, records, probability)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Industry: %s\n", assessment.Industry)
	fmt.Fprintf(out, "Records at risk: %s\n", humanize.Comma(int64(assessment.RecordsAtRisk)))
	fmt.Fprintf(out, "Breach probability: %.1f%% per year\n", assessment.BreachProbabilityPct)
	fmt.Fprintf(out, "Total breach cost: $%s\n", humanize.CommafWithDigits(assessment.TotalBreachCostUSD, 0))
	fmt.Fprintf(out, "Expected annual loss: $%s\n", humanize.CommafWithDigits(assessment.ExpectedAnnualLoss, 0))
	fmt.Fprintf(out, "Guardrail investment: $%s per year\n", humanize.CommafWithDigits(assessment.GuardrailCostUSD, 0))
	fmt.Fprintf(out, "Guardrail ROI: %.0f%%\n", assessment.ROIPercent)

	if assessment.ROIPercent > 0 {
		fmt.Fprintln(out, "Guardrails pay for themselves under these assumptions.")
	} else {
		fmt.Fprintln(out, "Expected losses do not cover the guardrail investment under these assumptions.")
	}
	return nil
}
