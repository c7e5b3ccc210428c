package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/arundhs/travelagent/audit"
	"github.com/arundhs/travelagent/tools"
)

const itineraryDisclaimer = "This is an AI-generated itinerary. Please verify opening hours and availability before visiting."

// PlanInput is the schema for the plan_destination tool.
type PlanInput struct {
	Destination string   `json:"destination" description:"The destination city or country to plan for"`
	Days        int      `json:"days,omitempty" description:"Number of days for the trip (default 3)"`
	Interests   []string `json:"interests,omitempty" description:"Traveler interests (e.g. 'history', 'food', 'nature')"`
	TravelStyle string   `json:"travel_style,omitempty" description:"Style preference: budget, luxury, adventure or relaxed"`
	Budget      string   `json:"budget,omitempty" description:"Budget level: budget, moderate or luxury"`
}

// PlanResult is the plan_destination tool output. Upstream failures come
// back as a structured result rather than a tool error so the model can
// relay them to the user.
type PlanResult struct {
	Success     bool     `json:"success"`
	Destination string   `json:"destination"`
	Days        int      `json:"days,omitempty"`
	TravelStyle string   `json:"travel_style,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	Itinerary   string   `json:"itinerary,omitempty"`
	GeneratedBy string   `json:"generated_by,omitempty"`
	Disclaimer  string   `json:"disclaimer,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// PlanTool implements plan_destination.
type PlanTool struct {
	Client *Client
	Audit  *audit.Logger
}

// NewPlanTool initializes and registers the plan_destination tool.
func NewPlanTool(c *Client, auditLog *audit.Logger, gk *genkit.Genkit, registry *tools.Registry) *PlanTool {
	t := &PlanTool{Client: c, Audit: auditLog}
	if gk == nil || registry == nil {
		return t
	}
	registry.Register(genkit.DefineTool[*PlanInput, *PlanResult](
		gk,
		"plan_destination",
		"Generate a day-by-day itinerary for a destination with places to visit, timings and local tips.",
		func(ctx *ai.ToolContext, input *PlanInput) (*PlanResult, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		in := &PlanInput{}
		b, _ := json.Marshal(args)
		if err := json.Unmarshal(b, in); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, in)
	})
	return t
}

// Execute generates an itinerary for the destination.
func (t *PlanTool) Execute(ctx context.Context, input *PlanInput) (*PlanResult, error) {
	if input == nil || input.Destination == "" {
		return nil, fmt.Errorf("destination is required")
	}

	days := input.Days
	if days < 1 {
		days = 3
	}
	style := input.TravelStyle
	if style == "" {
		style = "balanced"
	}
	interests := input.Interests
	if len(interests) == 0 {
		interests = []string{"general sightseeing"}
	}

	prompt := buildItineraryPrompt(input.Destination, days, interests, style)

	text, err := t.Client.TextGeneration(ctx, prompt, 1500)
	if err != nil {
		result := &PlanResult{
			Success:     false,
			Destination: input.Destination,
			Error:       fmt.Sprintf("Failed to generate itinerary: %v", err),
		}
		t.Audit.Log(ctx, "plan_destination", input, result, false, err.Error())
		return result, nil
	}

	result := &PlanResult{
		Success:     true,
		Destination: input.Destination,
		Days:        days,
		TravelStyle: style,
		Interests:   interests,
		Itinerary:   text,
		GeneratedBy: t.Client.Model,
		Disclaimer:  itineraryDisclaimer,
	}
	t.Audit.LogSuccess(ctx, "plan_destination", input,
		map[string]interface{}{"success": true, "destination": input.Destination})
	return result, nil
}

func buildItineraryPrompt(destination string, days int, interests []string, style string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<s>[INST] You are a travel planning expert. Create a detailed day-by-day itinerary for visiting %s.\n\n", destination)
	fmt.Fprintf(&b, "Trip Details:\n- Duration: %d days\n- Interests: %s\n- Travel Style: %s\n\n", days, strings.Join(interests, ", "), style)
	b.WriteString("Provide a structured itinerary with:\n")
	b.WriteString("1. Day-by-day plan with specific places to visit\n")
	b.WriteString("2. Best time to visit each place\n")
	b.WriteString("3. Estimated time at each location\n")
	b.WriteString("4. Local tips and recommendations\n")
	b.WriteString("5. Must-try local food/restaurants\n\n")
	b.WriteString("Format your response as a clear, structured plan. Be specific with place names and timings. [/INST]</s>")
	return b.String()
}

// AttractionsInput is the schema for the get_attractions tool.
type AttractionsInput struct {
	Destination string `json:"destination" description:"The destination to get attractions for"`
	Category    string `json:"category,omitempty" description:"Category filter (e.g. 'museums', 'nature', 'food')"`
	Limit       int    `json:"limit,omitempty" description:"Maximum number of attractions (default 10)"`
}

// AttractionsResult is the get_attractions tool output.
type AttractionsResult struct {
	Success     bool   `json:"success"`
	Destination string `json:"destination"`
	Category    string `json:"category,omitempty"`
	Attractions string `json:"attractions,omitempty"`
	GeneratedBy string `json:"generated_by,omitempty"`
	Error       string `json:"error,omitempty"`
}

// AttractionsTool implements get_attractions.
type AttractionsTool struct {
	Client *Client
	Audit  *audit.Logger
}

// NewAttractionsTool initializes and registers the get_attractions tool.
func NewAttractionsTool(c *Client, auditLog *audit.Logger, gk *genkit.Genkit, registry *tools.Registry) *AttractionsTool {
	t := &AttractionsTool{Client: c, Audit: auditLog}
	if gk == nil || registry == nil {
		return t
	}
	registry.Register(genkit.DefineTool[*AttractionsInput, *AttractionsResult](
		gk,
		"get_attractions",
		"Get the top must-visit attractions for a destination, optionally filtered by category.",
		func(ctx *ai.ToolContext, input *AttractionsInput) (*AttractionsResult, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		in := &AttractionsInput{}
		b, _ := json.Marshal(args)
		if err := json.Unmarshal(b, in); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, in)
	})
	return t
}

// Execute lists attractions for the destination.
func (t *AttractionsTool) Execute(ctx context.Context, input *AttractionsInput) (*AttractionsResult, error) {
	if input == nil || input.Destination == "" {
		return nil, fmt.Errorf("destination is required")
	}

	limit := input.Limit
	if limit < 1 {
		limit = 10
	}

	categoryStr := ""
	if input.Category != "" {
		categoryStr = fmt.Sprintf(" in the %s category", input.Category)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<s>[INST] List the top %d must-visit attractions in %s%s.\n\n", limit, input.Destination, categoryStr)
	b.WriteString("For each attraction, provide:\n")
	b.WriteString("- Name\n- Type (museum, park, landmark, etc.)\n")
	b.WriteString("- Brief description (1-2 sentences)\n")
	b.WriteString("- Typical visit duration\n- Best time to visit\n\n")
	b.WriteString("Format as a numbered list. Be specific and accurate. [/INST]</s>")

	text, err := t.Client.TextGeneration(ctx, b.String(), 1000)
	if err != nil {
		result := &AttractionsResult{
			Success:     false,
			Destination: input.Destination,
			Error:       fmt.Sprintf("Failed to get attractions: %v", err),
		}
		t.Audit.Log(ctx, "get_attractions", input, result, false, err.Error())
		return result, nil
	}

	result := &AttractionsResult{
		Success:     true,
		Destination: input.Destination,
		Category:    input.Category,
		Attractions: text,
		GeneratedBy: t.Client.Model,
	}
	t.Audit.LogSuccess(ctx, "get_attractions", input,
		map[string]interface{}{"success": true, "destination": input.Destination})
	return result, nil
}
