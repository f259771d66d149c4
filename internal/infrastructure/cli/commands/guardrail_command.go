package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dlwhyte/agentfoundry/internal/app"
	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/cli/helpers"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/guardrail"
)

// NewGuardrailCommand creates the guardrail command with all subcommands
func NewGuardrailCommand(container *app.Container) *cobra.Command {
	guardrailCmd := &cobra.Command{
		Use:   "guardrail",
		Short: "Inspect and toggle guardrail layers",
	}

	guardrailCmd.AddCommand(
		newGuardrailListCommand(container),
		newGuardrailStatusCommand(container),
		newGuardrailEnableCommand(container),
		newGuardrailDisableCommand(container),
		newGuardrailTestCommand(container),
	)

	return guardrailCmd
}

// newGuardrailListCommand creates the 'guardrail list' subcommand
func newGuardrailListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Describe every guardrail layer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listGuardrails(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newGuardrailStatusCommand creates the 'guardrail status' subcommand
func newGuardrailStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which layers are enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showGuardrailStatus(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newGuardrailEnableCommand creates the 'guardrail enable' subcommand
func newGuardrailEnableCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "enable <layer>",
		Short: "Enable a guardrail layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setGuardrailState(cmd.Context(), cmd.OutOrStdout(), container, args[0], true)
		},
	}
}

// newGuardrailDisableCommand creates the 'guardrail disable' subcommand
func newGuardrailDisableCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <layer>",
		Short: "Disable a guardrail layer (not recommended)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setGuardrailState(cmd.Context(), cmd.OutOrStdout(), container, args[0], false)
		},
	}
}

// newGuardrailTestCommand creates the 'guardrail test' subcommand
func newGuardrailTestCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "test <layer> <text>",
		Short: "Run one layer against arbitrary text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return testGuardrail(cmd.OutOrStdout(), container, args[0], strings.Join(args[1:], " "))
		},
	}
}

// listGuardrails describes every layer from the built-in catalog
func listGuardrails(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	enabled := make(map[domain.GuardrailKind]bool)
	for _, kind := range cfg.EnabledGuardrails() {
		enabled[kind] = true
	}

	for _, info := range guardrail.Catalog() {
		state := "disabled"
		if enabled[info.Kind] {
			state = "enabled"
		}
		fmt.Fprintf(out, "%s (%s) [%s]\n", info.Name, info.Kind, state)
		fmt.Fprintf(out, "  %s\n", info.Description)
		fmt.Fprintf(out, "  How it works: %s\n", info.HowItWorks)
		fmt.Fprintf(out, "  Catches: %s\n", strings.Join(info.Catches, ", "))
		fmt.Fprintf(out, "  Cost: %s\n", info.Cost)
		fmt.Fprintf(out, "  Limitations: %s\n\n", info.Limitations)
	}

	return nil
}

// showGuardrailStatus displays the active layers and rules file
func showGuardrailStatus(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	active := cfg.EnabledGuardrails()
	if len(active) == 0 {
		fmt.Fprintln(out, "No guardrail layers are enabled.")
	} else {
		fmt.Fprintln(out, "Enabled layers (pipeline order):")
		for _, kind := range active {
			fmt.Fprintf(out, "  %s\n", kind)
		}
	}
	fmt.Fprintf(out, "Rules file: %s\n", cfg.Security.RulesFile)

	return nil
}

// setGuardrailState enables or disables one layer and persists the config
func setGuardrailState(ctx context.Context, out io.Writer, container *app.Container, layer string, enabled bool) error {
	kind, err := parseGuardrailKind(layer)
	if err != nil {
		return err
	}

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.SetGuardrail(kind, enabled); err != nil {
		return err
	}

	if err := helpers.SaveConfigWithValidation(container, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	status := "disabled"
	if enabled {
		status = "enabled"
	}
	fmt.Fprintf(out, "Guardrail %s %s.\n", kind, status)
	return nil
}

// testGuardrail classifies text through a single layer
func testGuardrail(out io.Writer, container *app.Container, layer string, text string) error {
	kind, err := parseGuardrailKind(layer)
	if err != nil {
		return err
	}

	result, err := container.SecurityService.TestGuardrail(kind, text)
	if err != nil {
		return err
	}

	if !result.Triggered {
		fmt.Fprintf(out, "%s: no match (risk score 0.00)\n", kind)
		return nil
	}

	fmt.Fprintf(out, "%s: TRIGGERED (risk score %.2f)\n", kind, result.RiskScore)
	for _, match := range result.Matches {
		fmt.Fprintf(out, "  - %s\n", match.Label)
	}
	return nil
}

// parseGuardrailKind accepts both the canonical kind names and short
// aliases like "input" or "scope".
func parseGuardrailKind(value string) (domain.GuardrailKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "input", "input_filter", "input-filter":
		return domain.GuardrailInput, nil
	case "output", "output_filter", "output-filter":
		return domain.GuardrailOutput, nil
	case "scope", "scope_check", "scope-check":
		return domain.GuardrailScope, nil
	case "constitutional":
		return domain.GuardrailConstitutional, nil
	case "human", "human_in_loop", "human-review", "hitl":
		return domain.GuardrailHumanReview, nil
	default:
		return "", fmt.Errorf("unknown guardrail layer: %s", value)
	}
}
