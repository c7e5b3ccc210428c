package tools_test

import (
	"context"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"

	"github.com/arundhs/travelagent/tools"
)

type echoInput struct {
	Text string `json:"text"`
}

func defineEchoTool(t *testing.T, gk *genkit.Genkit, name string) ai.Tool {
	t.Helper()
	return genkit.DefineTool[*echoInput, string](
		gk,
		name,
		"echoes its input back",
		func(ctx *ai.ToolContext, input *echoInput) (string, error) {
			return input.Text, nil
		},
	)
}

func TestNewRegistry(t *testing.T) {
	reg := tools.NewRegistry()
	assert.NotNil(t, reg)
	assert.Empty(t, reg.GetTools())
	assert.Empty(t, reg.Names())
}

func TestRegistry_Register(t *testing.T) {
	ctx := context.Background()
	gk := genkit.Init(ctx)
	reg := tools.NewRegistry()

	reg.Register(defineEchoTool(t, gk, "echo"), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return args["text"], nil
	})

	registered := reg.GetTools()
	assert.Len(t, registered, 1)
	assert.Equal(t, "echo", registered[0].Definition().Name)
}

func TestRegistry_NamesSorted(t *testing.T) {
	ctx := context.Background()
	gk := genkit.Init(ctx)
	reg := tools.NewRegistry()

	noop := func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return nil, nil
	}
	reg.Register(defineEchoTool(t, gk, "search_hotels"), noop)
	reg.Register(defineEchoTool(t, gk, "resolve_date"), noop)
	reg.Register(defineEchoTool(t, gk, "book_flight"), noop)

	assert.Equal(t, []string{"book_flight", "resolve_date", "search_hotels"}, reg.Names())
}

func TestRegistry_ExecuteTool(t *testing.T) {
	ctx := context.Background()
	gk := genkit.Init(ctx)
	reg := tools.NewRegistry()

	reg.Register(defineEchoTool(t, gk, "echo"), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return args["text"], nil
	})

	result, err := reg.ExecuteTool(ctx, "echo", map[string]interface{}{"text": "hello"})
	assert.NoError(t, err)
	assert.Equal(t, "hello", result)

	_, err = reg.ExecuteTool(ctx, "does_not_exist", nil)
	assert.ErrorContains(t, err, "tool not found: does_not_exist")
}
