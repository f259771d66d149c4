package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dlwhyte/agentfoundry/internal/app"
	"github.com/dlwhyte/agentfoundry/internal/application/security"
	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "foundry",
		Short: "Agent Foundry - AI agent security workbench",
		Long: "Agent Foundry demonstrates prompt injection attacks against a customer\n" +
			"service agent and the guardrail layers that stop them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAttackCommand(container))
	root.AddCommand(commands.NewGuardrailCommand(container))
	root.AddCommand(commands.NewCostCommand(container))
	root.AddCommand(commands.NewBreachCommand(container))
	root.AddCommand(commands.NewCrewCommand(container))
	root.AddCommand(commands.NewMCPCommand(container))
	root.AddCommand(commands.NewModelsCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewCacheCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

func newAttackCommand(container *app.Container) *cobra.Command {
	attackCmd := &cobra.Command{
		Use:   "attack",
		Short: "Run attack scenarios against the demo agent",
	}

	attackCmd.AddCommand(
		newAttackScenariosCommand(container),
		newAttackDemoCommand(container),
		newAttackLiveCommand(container),
	)

	return attackCmd
}

func newAttackScenariosCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List pre-built attack scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			RenderScenarioList(container.SecurityService.Scenarios())
			return nil
		},
	}
}

func newAttackDemoCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "demo <scenario>",
		Short: "Walk through a scenario without any API call",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := container.SecurityService.Demo(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			RenderDemo(result)
			return nil
		},
	}
}

func newAttackLiveCommand(container *app.Container) *cobra.Command {
	var (
		model          string
		noGuardrails   bool
		inputFilter    bool
		outputFilter   bool
		scopeCheck     bool
		constitutional bool
		humanReview    bool
		timeout        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "live <prompt>",
		Short: "Send a prompt through the live guardrail pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			req := security.LiveRequest{
				Context:       ctx,
				Prompt:        strings.Join(args, " "),
				ModelOverride: model,
				Layers:        layerOverride(cmd, noGuardrails, inputFilter, outputFilter, scopeCheck, constitutional, humanReview),
			}
			spinner := NewSpinner(cmd.ErrOrStderr(), "running guardrail pipeline")
			spinner.Start()
			result, err := container.SecurityService.Live(req)
			spinner.Stop()
			if err != nil {
				return err
			}
			RenderLiveResult(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVar(&noGuardrails, "no-guardrails", false, "Disable every layer for this run")
	cmd.Flags().BoolVar(&inputFilter, "input-filter", false, "Enable the input filter for this run")
	cmd.Flags().BoolVar(&outputFilter, "output-filter", false, "Enable the output filter for this run")
	cmd.Flags().BoolVar(&scopeCheck, "scope-check", false, "Enable the scope limiter for this run")
	cmd.Flags().BoolVar(&constitutional, "constitutional", false, "Enable the constitutional reviewer for this run")
	cmd.Flags().BoolVar(&humanReview, "human-review", false, "Enable the human-in-the-loop check for this run")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Override request timeout")

	return cmd
}

// layerOverride builds the per-run layer toggles. Nil means the
// configured layers apply unchanged.
func layerOverride(cmd *cobra.Command, noGuardrails, input, output, scope, constitutional, human bool) *domain.GuardrailLayers {
	if noGuardrails {
		return &domain.GuardrailLayers{}
	}
	anySet := false
	for _, name := range []string{"input-filter", "output-filter", "scope-check", "constitutional", "human-review"} {
		if cmd.Flags().Changed(name) {
			anySet = true
			break
		}
	}
	if !anySet {
		return nil
	}
	return &domain.GuardrailLayers{
		InputFilter:    input,
		OutputFilter:   output,
		ScopeCheck:     scope,
		Constitutional: constitutional,
		HumanReview:    human,
	}
}
