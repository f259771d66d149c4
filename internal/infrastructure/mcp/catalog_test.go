package mcp

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dlwhyte/agentfoundry/internal/domain"
)

func TestCatalogLookup(t *testing.T) {
	catalog := NewCatalog()

	if got := len(catalog.Scenarios()); got != 4 {
		t.Fatalf("expected 4 scenarios, got %d", got)
	}

	s, ok := catalog.Scenario("DevOps Alert Triage")
	if !ok {
		t.Fatal("exact lookup failed")
	}
	if s.UserRequest == "" || len(s.Steps) == 0 {
		t.Fatalf("scenario incomplete: %+v", s)
	}

	if _, ok := catalog.Scenario("devops"); !ok {
		t.Fatal("prefix lookup failed")
	}
	if _, ok := catalog.Scenario("nonexistent"); ok {
		t.Fatal("lookup should miss for unknown scenarios")
	}
}

func TestEveryScenarioCarriesProtocolTraffic(t *testing.T) {
	for _, s := range NewCatalog().Scenarios() {
		var requests, responses int
		for _, step := range s.Steps {
			if step.Request != nil {
				requests++
				if step.Request.Version != domain.JSONRPCVersion {
					t.Fatalf("%s: request version %q", s.Name, step.Request.Version)
				}
				if step.Request.Method != "tools/list" && step.Request.Method != "tools/call" {
					t.Fatalf("%s: unexpected method %q", s.Name, step.Request.Method)
				}
				if step.Request.Method == "tools/call" && step.Request.Params == nil {
					t.Fatalf("%s: tools/call without params", s.Name)
				}
			}
			if step.Response != nil {
				responses++
				if step.Response.Version != domain.JSONRPCVersion {
					t.Fatalf("%s: response version %q", s.Name, step.Response.Version)
				}
			}
		}
		if requests == 0 || responses == 0 {
			t.Fatalf("%s: expected both requests and responses, got %d/%d", s.Name, requests, responses)
		}
	}
}

func TestRequestEnvelopeWireFormat(t *testing.T) {
	s, ok := NewCatalog().Scenario("Schedule a Meeting")
	if !ok {
		t.Fatal("scenario missing")
	}
	var req *domain.JSONRPCRequest
	for _, step := range s.Steps {
		if step.Request != nil && step.Request.Method == "tools/call" {
			req = step.Request
			break
		}
	}
	if req == nil {
		t.Fatal("no tools/call request found")
	}

	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	encoded := string(raw)
	for _, want := range []string{`"jsonrpc":"2.0"`, `"method":"tools/call"`, `"name":"create_event"`} {
		if !strings.Contains(encoded, want) {
			t.Fatalf("envelope missing %s:\n%s", want, encoded)
		}
	}
}
