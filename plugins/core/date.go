package core

import (
	"context"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/arundhs/travelagent/log"
	"github.com/arundhs/travelagent/tools"
)

// DateInput defines the input for the resolve_date tool
type DateInput struct {
	Expression string `json:"expression" description:"JavaScript expression to calculate a date. Variable 'now' is available as current timestamp in milliseconds."`
}

// DateTool lets the model turn relative phrasing ("next weekend") into a
// concrete date before calling the search tools.
type DateTool struct {
	Now func() time.Time
}

// NewDateTool creates a new DateTool and registers it
func NewDateTool(gk *genkit.Genkit, registry *tools.Registry) *DateTool {
	t := &DateTool{
		Now: time.Now,
	}

	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool[*DateInput, string](
		gk,
		"resolve_date",
		t.Description(),
		func(ctx *ai.ToolContext, input *DateInput) (string, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		expression, ok := args["expression"].(string)
		if !ok {
			return nil, fmt.Errorf("missing expression")
		}
		return t.Execute(ctx, &DateInput{Expression: expression})
	})

	return t
}

func (t *DateTool) Name() string {
	return "resolve_date"
}

func (t *DateTool) Description() string {
	return `Evaluates a JavaScript expression to resolve a date. Variable 'now' holds the current timestamp in milliseconds.
Return a Date object or ISO string; the last expression is the return value. The result is formatted as YYYY-MM-DD.
Examples:
- Tomorrow: "new Date(now + 86400000)"
- Next Friday: "var d = new Date(now); d.setDate(d.getDate() + (12 - d.getDay()) % 7); if(d.getDay() !== 5 || d <= now) d.setDate(d.getDate() + 7); d"`
}

// Execute evaluates the expression and returns the resolved date in
// YYYY-MM-DD form.
func (t *DateTool) Execute(ctx context.Context, input *DateInput) (string, error) {
	if input == nil || input.Expression == "" {
		return "", fmt.Errorf("expression is required")
	}
	log.Debugf(ctx, "resolve_date: evaluating %q", input.Expression)

	vm := goja.New()
	if err := vm.Set("now", t.Now().UnixMilli()); err != nil {
		return "", fmt.Errorf("failed to set 'now': %w", err)
	}

	val, err := vm.RunString(input.Expression)
	if err != nil {
		return "", fmt.Errorf("js execution failed: %w", err)
	}

	exported := val.Export()
	if exported == nil {
		return "", fmt.Errorf("expression result is null or undefined")
	}

	// Goja converts JS Date objects to time.Time.
	if date, ok := exported.(time.Time); ok {
		return date.Format("2006-01-02"), nil
	}

	if str, ok := exported.(string); ok {
		if date, err := time.Parse(time.RFC3339, str); err == nil {
			return date.Format("2006-01-02"), nil
		}
		if date, err := time.Parse("2006-01-02", str); err == nil {
			return date.Format("2006-01-02"), nil
		}
	}

	return "", fmt.Errorf("expression result is not a valid Date object or ISO string")
}
