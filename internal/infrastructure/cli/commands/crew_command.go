package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dlwhyte/agentfoundry/internal/app"
	"github.com/dlwhyte/agentfoundry/internal/application/crew"
	"github.com/dlwhyte/agentfoundry/internal/domain"
)

// NewCrewCommand creates the crew command
func NewCrewCommand(container *app.Container) *cobra.Command {
	var (
		model   string
		verbose bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "crew <topic>",
		Short: "Run the Researcher-Writer-Editor crew on a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return runCrew(ctx, cmd.OutOrStdout(), container, strings.Join(args, " "), model, verbose)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print each agent's full output")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Overall crew timeout")

	return cmd
}

// runCrew drives the crew and renders progress plus the final rollup
func runCrew(ctx context.Context, out io.Writer, container *app.Container, topic string, model string, verbose bool) error {
	req := crew.RunRequest{
		Context:       ctx,
		Topic:         topic,
		ModelOverride: model,
		OnAgent: func(agent domain.AgentTelemetry) {
			switch agent.Status {
			case domain.AgentRunning:
				fmt.Fprintf(out, "[%s] %s working...\n", agent.AgentName, agent.Role)
			case domain.AgentComplete:
				fmt.Fprintf(out, "[%s] done in %s (%s tokens)\n",
					agent.AgentName,
					agent.Duration.Round(time.Millisecond),
					humanize.Comma(int64(agent.TotalTokens)))
				if verbose {
					fmt.Fprintf(out, "%s\n\n", agent.Output)
				}
			case domain.AgentError:
				fmt.Fprintf(out, "[%s] failed: %s\n", agent.AgentName, agent.Err)
			}
		},
	}

	result, err := container.CrewService.Run(req)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nFinal brief:")
	fmt.Fprintln(out, result.Output)

	tel := result.Telemetry
	fmt.Fprintf(out, "\nCrew telemetry (%s on %s):\n", tel.Provider, tel.Model)
	fmt.Fprintf(out, "  Duration: %s\n", tel.TotalDuration.Round(time.Millisecond))
	fmt.Fprintf(out, "  API calls: %d\n", tel.TotalAPICalls)
	fmt.Fprintf(out, "  Tokens: %s in / %s out\n",
		humanize.Comma(int64(tel.TotalInputTokens)),
		humanize.Comma(int64(tel.TotalOutputTokens)))
	fmt.Fprintf(out, "  Estimated cost: $%.6f\n", tel.EstimatedCostUSD)

	return nil
}
