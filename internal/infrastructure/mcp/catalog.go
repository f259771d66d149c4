// Package mcp holds canned walkthroughs of Model Context Protocol
// tool-use flows. The scenarios replay real JSON-RPC traffic shapes
// without connecting to any server.
package mcp

import (
	"strings"

	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

// Catalog implements the MCPCatalog port over a fixed scenario list.
type Catalog struct {
	scenarios []domain.MCPScenario
}

// NewCatalog returns the built-in walkthroughs.
func NewCatalog() *Catalog {
	return &Catalog{scenarios: builtinScenarios()}
}

// Scenarios lists every walkthrough.
func (c *Catalog) Scenarios() []domain.MCPScenario {
	return c.scenarios
}

// Scenario looks up a walkthrough by exact or case-insensitive prefix match.
func (c *Catalog) Scenario(name string) (domain.MCPScenario, bool) {
	for _, s := range c.scenarios {
		if s.Name == name {
			return s, true
		}
	}
	needle := strings.ToLower(name)
	for _, s := range c.scenarios {
		if strings.HasPrefix(strings.ToLower(s.Name), needle) {
			return s, true
		}
	}
	return domain.MCPScenario{}, false
}

func builtinScenarios() []domain.MCPScenario {
	return []domain.MCPScenario{
		{
			Name:        "Schedule a Meeting",
			UserRequest: "Schedule a meeting with Sarah for next Tuesday at 2pm",
			Steps: []domain.MCPStep{
				{
					Component: "User",
					Action:    "Sends natural language request",
					Detail:    `"Schedule a meeting with Sarah for next Tuesday at 2pm"`,
				},
				{
					Component: "AI Model",
					Action:    "Parses intent and extracts parameters",
					Detail:    "Identifies: action=schedule_meeting, contact=Sarah, date=next_tuesday, time=14:00",
				},
				{
					Component: "MCP Client",
					Action:    "Discovers available MCP servers",
					Detail:    "Queries registry, finds 'google_calendar' and 'outlook_calendar' servers",
					Request: &domain.JSONRPCRequest{
						Version: domain.JSONRPCVersion,
						Method:  "tools/list",
						ID:      1,
					},
					Response: &domain.JSONRPCResponse{
						Version: domain.JSONRPCVersion,
						ID:      1,
						Result: &domain.ToolResult{
							Tools: []domain.ToolDescriptor{
								{Name: "create_event", Description: "Create a calendar event"},
								{Name: "check_availability", Description: "Check calendar availability"},
								{Name: "list_events", Description: "List upcoming events"},
							},
						},
					},
				},
				{
					Component: "MCP Protocol",
					Action:    "Sends standardized JSON-RPC request to calendar server",
					Detail:    "Uses tools/call with create_event tool and structured parameters",
					Request: &domain.JSONRPCRequest{
						Version: domain.JSONRPCVersion,
						Method:  "tools/call",
						Params: &domain.ToolCallParams{
							Name: "create_event",
							Arguments: map[string]interface{}{
								"title":            "Meeting with Sarah",
								"date":             "2026-02-17",
								"time":             "14:00",
								"duration_minutes": 30,
								"attendees":        []string{"sarah@company.com"},
							},
						},
						ID: 2,
					},
				},
				{
					Component: "Calendar Server",
					Action:    "Checks availability and creates the event",
					Detail:    "Verifies Sarah is free at 2pm, creates event, sends calendar invite",
					Response: &domain.JSONRPCResponse{
						Version: domain.JSONRPCVersion,
						ID:      2,
						Result: &domain.ToolResult{
							Content: []domain.ContentBlock{{
								Type: "text",
								Text: "Event created: 'Meeting with Sarah' on Tue Feb 17 at 2:00 PM. Calendar invite sent.",
							}},
						},
					},
				},
				{
					Component: "AI Model",
					Action:    "Formats confirmation for user",
					Detail:    "Translates structured response back to natural language",
				},
				{
					Component: "User",
					Action:    "Receives confirmation",
					Detail:    `"Done — meeting with Sarah scheduled for Tuesday at 2pm. Calendar invite sent."`,
				},
			},
		},
		{
			Name:        "Spotify Playlist",
			UserRequest: "Make me a birthday playlist with #1 Billboard hits from every year since 1985",
			Steps: []domain.MCPStep{
				{
					Component: "User",
					Action:    "Sends natural language request",
					Detail:    `"Make me a birthday playlist with #1 hits from every year since 1985"`,
				},
				{
					Component: "AI Model",
					Action:    "Decomposes into multi-step plan",
					Detail:    "Plan: (1) search Billboard data, (2) match to Spotify catalog, (3) create playlist, (4) add tracks",
				},
				{
					Component: "MCP Client",
					Action:    "Discovers required MCP servers",
					Detail:    "Finds 'web_search' server for Billboard data and 'spotify' server for playlist management",
					Request: &domain.JSONRPCRequest{
						Version: domain.JSONRPCVersion,
						Method:  "tools/list",
						ID:      1,
					},
				},
				{
					Component: "MCP Protocol / Web Search",
					Action:    "Retrieves Billboard #1 hits for each year",
					Detail:    "Queries web search MCP server for chart data (1985-2025)",
					Request: &domain.JSONRPCRequest{
						Version: domain.JSONRPCVersion,
						Method:  "tools/call",
						Params: &domain.ToolCallParams{
							Name: "web_search",
							Arguments: map[string]interface{}{
								"query": "Billboard Hot 100 #1 songs by year 1985-2025",
							},
						},
						ID: 2,
					},
				},
				{
					Component: "MCP Protocol / Spotify",
					Action:    "Creates playlist and searches for tracks",
					Detail:    "Creates empty playlist, then searches Spotify catalog for each song",
					Request: &domain.JSONRPCRequest{
						Version: domain.JSONRPCVersion,
						Method:  "tools/call",
						Params: &domain.ToolCallParams{
							Name: "create_playlist",
							Arguments: map[string]interface{}{
								"name":        "Birthday Hits 1985-2025",
								"description": "#1 Billboard hits from every year",
								"public":      false,
							},
						},
						ID: 3,
					},
				},
				{
					Component: "Spotify Server",
					Action:    "Matches songs, creates playlist, adds tracks",
					Detail:    "40 tracks matched and added. 2 songs not found in catalog, flagged for user.",
					Response: &domain.JSONRPCResponse{
						Version: domain.JSONRPCVersion,
						ID:      3,
						Result: &domain.ToolResult{
							Content: []domain.ContentBlock{{
								Type: "text",
								Text: "Playlist 'Birthday Hits 1985-2025' created with 38/40 tracks. 2 songs unavailable in your region.",
							}},
						},
					},
				},
				{
					Component: "AI Model",
					Action:    "Summarizes and reports",
					Detail:    "Provides link, track count, and notes which songs couldn't be found",
				},
				{
					Component: "User",
					Action:    "Receives result",
					Detail:    `"Your playlist 'Birthday Hits 1985-2025' is ready! 38 songs added. 2 tracks weren't available in your region — would you like alternatives?"`,
				},
			},
		},
		{
			Name:        "Salesforce CRM Lookup",
			UserRequest: "What's the status of the Acme Corp deal and when did we last contact them?",
			Steps: []domain.MCPStep{
				{
					Component: "User",
					Action:    "Asks about a customer account",
					Detail:    `"What's the status of the Acme Corp deal and when did we last contact them?"`,
				},
				{
					Component: "AI Model",
					Action:    "Identifies two data needs",
					Detail:    "Need: (1) opportunity/deal status for Acme Corp, (2) last activity/contact date",
				},
				{
					Component: "MCP Client",
					Action:    "Routes to Salesforce MCP server",
					Detail:    "Discovers 'salesforce' MCP server with CRM query capabilities",
				},
				{
					Component: "MCP Protocol",
					Action:    "Queries opportunity and activity records",
					Detail:    "Two sequential tool calls: search_opportunity + get_activities",
					Request: &domain.JSONRPCRequest{
						Version: domain.JSONRPCVersion,
						Method:  "tools/call",
						Params: &domain.ToolCallParams{
							Name: "search_opportunities",
							Arguments: map[string]interface{}{
								"account_name": "Acme Corp",
								"fields":       []string{"StageName", "Amount", "CloseDate", "LastActivityDate"},
							},
						},
						ID: 2,
					},
				},
				{
					Component: "Salesforce Server",
					Action:    "Returns structured CRM data",
					Detail:    "Opportunity found: Negotiation stage, $450K, expected close March 15",
					Response: &domain.JSONRPCResponse{
						Version: domain.JSONRPCVersion,
						ID:      2,
						Result: &domain.ToolResult{
							Content: []domain.ContentBlock{{
								Type: "text",
								Text: "Opportunity: 'Acme Corp Enterprise License' | Stage: Negotiation/Review | Amount: $450,000 | Expected Close: 2026-03-15 | Last Activity: Email from Sarah Chen on 2026-02-05",
							}},
						},
					},
				},
				{
					Component: "AI Model",
					Action:    "Synthesizes and presents findings",
					Detail:    "Combines deal status + last contact into a clear summary",
				},
				{
					Component: "User",
					Action:    "Gets actionable summary",
					Detail:    `"The Acme Corp deal ($450K) is in Negotiation. Sarah Chen last emailed them on Feb 5. Expected close: March 15. Want me to draft a follow-up?"`,
				},
			},
		},
		{
			Name:        "DevOps Alert Triage",
			UserRequest: "We're getting alerts on the payment service — what's going on?",
			Steps: []domain.MCPStep{
				{
					Component: "User",
					Action:    "Reports an alert in Slack",
					Detail:    `"We're getting alerts on the payment service — what's going on?"`,
				},
				{
					Component: "AI Model",
					Action:    "Plans diagnostic sequence",
					Detail:    "Plan: (1) check monitoring dashboard, (2) read recent logs, (3) check deployment history",
				},
				{
					Component: "MCP Client",
					Action:    "Discovers monitoring and logging servers",
					Detail:    "Finds 'datadog' MCP server for metrics and 'github' server for deployment history",
				},
				{
					Component: "MCP Protocol / Datadog",
					Action:    "Queries service metrics and alerts",
					Detail:    "Fetches error rate, latency, and active alerts for payment-service",
					Request: &domain.JSONRPCRequest{
						Version: domain.JSONRPCVersion,
						Method:  "tools/call",
						Params: &domain.ToolCallParams{
							Name: "get_service_metrics",
							Arguments: map[string]interface{}{
								"service":   "payment-service",
								"metrics":   []string{"error_rate", "p99_latency", "request_count"},
								"timeframe": "last_1h",
							},
						},
						ID: 2,
					},
					Response: &domain.JSONRPCResponse{
						Version: domain.JSONRPCVersion,
						ID:      2,
						Result: &domain.ToolResult{
							Content: []domain.ContentBlock{{
								Type: "text",
								Text: "payment-service: error_rate=12.4% (normal: <1%), p99_latency=3200ms (normal: 200ms), request_count=stable. Alert: 'High Error Rate' triggered 18 min ago.",
							}},
						},
					},
				},
				{
					Component: "MCP Protocol / GitHub",
					Action:    "Checks recent deployments",
					Detail:    "Queries deployment history to correlate with alert timing",
					Request: &domain.JSONRPCRequest{
						Version: domain.JSONRPCVersion,
						Method:  "tools/call",
						Params: &domain.ToolCallParams{
							Name: "list_deployments",
							Arguments: map[string]interface{}{
								"repo":      "company/payment-service",
								"timeframe": "last_2h",
							},
						},
						ID: 3,
					},
					Response: &domain.JSONRPCResponse{
						Version: domain.JSONRPCVersion,
						ID:      3,
						Result: &domain.ToolResult{
							Content: []domain.ContentBlock{{
								Type: "text",
								Text: "Deployment: v2.14.3 deployed 22 min ago by @mike. Changes: updated Stripe SDK, modified retry logic.",
							}},
						},
					},
				},
				{
					Component: "AI Model",
					Action:    "Correlates data and diagnoses",
					Detail:    "Deployment 22 min ago, alerts 18 min ago. Stripe SDK update likely cause.",
				},
				{
					Component: "User",
					Action:    "Gets diagnosis and recommendation",
					Detail:    `"Error rate spiked to 12.4% starting ~18 min ago, right after v2.14.3 was deployed (Stripe SDK update by @mike). Recommend: rollback to v2.14.2. Want me to trigger it?"`,
				},
			},
		},
	}
}

var _ ports.MCPCatalog = (*Catalog)(nil)
