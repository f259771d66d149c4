package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dlwhyte/agentfoundry/internal/app"
	"github.com/dlwhyte/agentfoundry/internal/domain"
)

// NewMCPCommand creates the mcp command with all subcommands
func NewMCPCommand(container *app.Container) *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Walk through Model Context Protocol tool-use flows",
	}

	mcpCmd.AddCommand(
		newMCPListCommand(container),
		newMCPShowCommand(container),
	)

	return mcpCmd
}

// newMCPListCommand creates the 'mcp list' subcommand
func newMCPListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the MCP walkthrough scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMCPScenarios(cmd.OutOrStdout(), container)
		},
	}
}

// newMCPShowCommand creates the 'mcp show' subcommand
func newMCPShowCommand(container *app.Container) *cobra.Command {
	var wire bool

	cmd := &cobra.Command{
		Use:   "show <scenario>",
		Short: "Render one scenario step by step",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showMCPScenario(cmd.OutOrStdout(), container, strings.Join(args, " "), wire)
		},
	}

	cmd.Flags().BoolVar(&wire, "wire", false, "Include the JSON-RPC payloads")
	return cmd
}

// listMCPScenarios lists scenario names and user requests
func listMCPScenarios(out io.Writer, container *app.Container) error {
	for _, scenario := range container.MCPCatalog.Scenarios() {
		fmt.Fprintf(out, "%-28s %s\n", scenario.Name, scenario.UserRequest)
	}
	return nil
}

// showMCPScenario renders the steps of one scenario, optionally with
// the raw JSON-RPC traffic
func showMCPScenario(out io.Writer, container *app.Container, name string, wire bool) error {
	scenario, ok := container.MCPCatalog.Scenario(name)
	if !ok {
		return fmt.Errorf("unknown MCP scenario %q", name)
	}

	fmt.Fprintf(out, "%s\n", scenario.Name)
	fmt.Fprintf(out, "User request: %s\n\n", scenario.UserRequest)

	for i, step := range scenario.Steps {
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, step.Component, step.Action)
		if step.Detail != "" {
			fmt.Fprintf(out, "   %s\n", step.Detail)
		}
		if wire {
			if err := renderPayload(out, "->", step.Request); err != nil {
				return err
			}
			if err := renderPayload(out, "<-", step.Response); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderPayload pretty-prints one JSON-RPC message
func renderPayload(out io.Writer, direction string, payload interface{}) error {
	switch v := payload.(type) {
	case *domain.JSONRPCRequest:
		if v == nil {
			return nil
		}
	case *domain.JSONRPCResponse:
		if v == nil {
			return nil
		}
	}

	data, err := json.MarshalIndent(payload, "   ", "  ")
	if err != nil {
		return fmt.Errorf("failed to render JSON-RPC payload: %w", err)
	}

	fmt.Fprintf(out, "   %s %s\n", direction, string(data))
	return nil
}
