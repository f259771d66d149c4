package domain

// JSONRPCVersion is the protocol version MCP messages carry.
const JSONRPCVersion = "2.0"

// MCPScenario is a canned walkthrough of an MCP tool-use flow,
// rendered step by step with the JSON-RPC traffic between components.
type MCPScenario struct {
	Name        string
	UserRequest string
	Steps       []MCPStep
}

// MCPStep attributes one action to a component in the flow. Request
// and Response are optional; most user-facing steps carry neither.
type MCPStep struct {
	Component string
	Action    string
	Detail    string
	Request   *JSONRPCRequest
	Response  *JSONRPCResponse
}

// JSONRPCRequest is an MCP request envelope (tools/list, tools/call).
type JSONRPCRequest struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  *ToolCallParams `json:"params,omitempty"`
	ID      int             `json:"id"`
}

// ToolCallParams names the tool and its arguments for tools/call.
type ToolCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// JSONRPCResponse is an MCP response envelope.
type JSONRPCResponse struct {
	Version string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Result  *ToolResult `json:"result,omitempty"`
}

// ToolResult carries either a tool listing or call content.
type ToolResult struct {
	Tools   []ToolDescriptor `json:"tools,omitempty"`
	Content []ContentBlock   `json:"content,omitempty"`
	IsError bool             `json:"isError,omitempty"`
}

// ToolDescriptor advertises one tool a server exposes.
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ContentBlock is one typed chunk of a tool call result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
