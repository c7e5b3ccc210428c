package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/arundhs/travelagent/audit"
	reqcontext "github.com/arundhs/travelagent/context"
	"github.com/arundhs/travelagent/log"
	"github.com/arundhs/travelagent/tools"
)

// maxToolTurns caps the tool-calling loop for a single user request.
const maxToolTurns = 10

// ToolResult captures one tool invocation the model made while answering.
type ToolResult struct {
	Function  string                 `json:"function"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
	Result    interface{}            `json:"result,omitempty"`
}

// Response is the agent's answer to a single user request.
type Response struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// TravelAgent is a conversational travel assistant. It forwards each user
// request to the model together with the registered tools and keeps the
// conversation history across requests.
type TravelAgent struct {
	gk       *genkit.Genkit
	registry *tools.Registry
	model    ai.Model
	audit    *audit.Logger
	dryRun   bool

	history []*ai.Message
}

// NewTravelAgent creates a TravelAgent bound to a model and tool registry.
func NewTravelAgent(gk *genkit.Genkit, registry *tools.Registry, model ai.Model, auditLog *audit.Logger, dryRun bool) *TravelAgent {
	return &TravelAgent{
		gk:       gk,
		registry: registry,
		model:    model,
		audit:    auditLog,
		dryRun:   dryRun,
	}
}

// ProcessRequest sends the user query to the model, lets it call tools for
// up to maxToolTurns rounds and returns the final answer together with every
// tool result produced along the way.
func (a *TravelAgent) ProcessRequest(ctx context.Context, query string) (*Response, error) {
	ctx, reqID := reqcontext.EnsureRequestID(ctx)
	log.Infof(ctx, "Processing request %s: %q", reqID, query)

	var toolRefs []ai.ToolRef
	for _, tool := range a.registry.GetTools() {
		toolRefs = append(toolRefs, tool)
	}

	opts := []ai.GenerateOption{
		ai.WithModel(a.model),
		ai.WithSystem(a.systemPrompt()),
		ai.WithTools(toolRefs...),
		ai.WithMaxTurns(maxToolTurns),
	}
	if len(a.history) > 0 {
		opts = append(opts, ai.WithMessages(a.history...))
	}
	opts = append(opts, ai.WithPrompt(query))

	response, err := genkit.Generate(ctx, a.gk, opts...)
	if err != nil {
		log.Errorf(ctx, "Generate failed: %v", err)
		a.audit.LogFailure(ctx, "_agent_decision", map[string]interface{}{"query": query}, err)
		return &Response{
			Success: false,
			Error:   fmt.Sprintf("request failed: %v", err),
		}, err
	}

	message := strings.TrimSpace(response.Text())
	toolResults := extractToolResults(response.History())

	// Retain the full exchange, tool turns included, for follow-up requests.
	a.history = response.History()

	toolNames := make([]string, len(toolResults))
	for i, tr := range toolResults {
		toolNames[i] = tr.Function
	}
	a.audit.LogDecision(ctx, query, message, toolNames)

	log.Debugf(ctx, "Request %s complete: %d tool calls", reqID, len(toolResults))

	return &Response{
		Success:     true,
		Message:     message,
		ToolResults: toolResults,
	}, nil
}

// Reset clears the conversation history.
func (a *TravelAgent) Reset() {
	a.history = nil
}

// HistoryLength reports the number of retained conversation messages.
func (a *TravelAgent) HistoryLength() int {
	return len(a.history)
}

// extractToolResults pairs tool requests with their responses across the
// conversation history. Requests and responses are matched by ref when the
// model supplies one, otherwise by name in call order.
func extractToolResults(history []*ai.Message) []ToolResult {
	type pendingRequest struct {
		ref  string
		name string
		args map[string]interface{}
	}

	var pending []pendingRequest
	var results []ToolResult

	for _, msg := range history {
		for _, part := range msg.Content {
			switch {
			case part.IsToolRequest():
				req := part.ToolRequest
				args, _ := req.Input.(map[string]interface{})
				pending = append(pending, pendingRequest{ref: req.Ref, name: req.Name, args: args})
			case part.IsToolResponse():
				resp := part.ToolResponse
				idx := -1
				for i, p := range pending {
					if resp.Ref != "" && p.ref == resp.Ref {
						idx = i
						break
					}
					if resp.Ref == "" && p.name == resp.Name {
						idx = i
						break
					}
				}
				tr := ToolResult{Function: resp.Name, Result: resp.Output}
				if idx >= 0 {
					tr.Arguments = pending[idx].args
					pending = append(pending[:idx], pending[idx+1:]...)
				}
				results = append(results, tr)
			}
		}
	}

	return results
}

func (a *TravelAgent) systemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an expert travel agent assistant. You help users search flights, ")
	b.WriteString("find hotels, plan itineraries and estimate trip costs.\n\n")

	names := a.registry.Names()
	if len(names) > 0 {
		b.WriteString("Available functions:\n")
		for _, name := range names {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Today is %s.\n\n", time.Now().Format("2006-01-02"))

	b.WriteString("RULES:\n")
	b.WriteString("1. Always use actual dates in YYYY-MM-DD format. Use resolve_date to turn relative terms like 'next Friday' into dates. Never pass dates in the past.\n")
	b.WriteString("2. Airports and cities are identified by 3-letter IATA codes (e.g. MAA for Chennai, SIN for Singapore). Convert city names before calling flight or hotel functions.\n")
	b.WriteString("3. Call functions to get real data. Never invent flight numbers, prices or hotel names.\n")
	b.WriteString("4. When the user asks for a total or a budget, call estimate_total_cost with the prices you found.\n")
	if a.dryRun {
		b.WriteString("5. DRY RUN MODE is active: bookings are previews only. Tell the user no real booking is made.\n")
	} else {
		b.WriteString("5. Before booking anything, confirm the details with the user. Use dry_run=true to preview a booking first.\n")
	}
	b.WriteString("\nBe concise and helpful. Summarize options clearly with prices and timings.")

	return b.String()
}
