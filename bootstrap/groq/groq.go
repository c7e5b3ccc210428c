// Package groq is a Genkit plugin for Groq's OpenAI-compatible API.
package groq

import (
	"context"
	"os"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/openai/openai-go/option"
)

const provider = "groq"

// DefaultBaseURL is the Groq OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1/"

// Groq is a plugin that provides integration with Groq-hosted models.
type Groq struct {
	// APIKey is the API key for the Groq API. If empty, the environment
	// variable "GROQ_API_KEY" is consulted.
	// Request a key at https://console.groq.com
	APIKey string
	// BaseURL is the base URL for the Groq API. Defaults to DefaultBaseURL.
	BaseURL string

	openAICompatible *compat_oai.OpenAICompatible
}

// Name implements genkit.Plugin.
func (g *Groq) Name() string {
	return provider
}

// Init implements genkit.Plugin.
func (g *Groq) Init(ctx context.Context) []api.Action {
	apiKey := g.APIKey
	baseURL := g.BaseURL

	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if apiKey == "" {
		panic("groq plugin initialization failed: apiKey is required (set GROQ_API_KEY or pass APIKey)")
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if g.openAICompatible == nil {
		g.openAICompatible = &compat_oai.OpenAICompatible{}
	}

	g.openAICompatible.Opts = []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}

	g.openAICompatible.Provider = provider
	compatActions := g.openAICompatible.Init(ctx)

	var actions []api.Action
	actions = append(actions, compatActions...)

	// Models commonly used for function calling on Groq.
	supportedModels := map[string]ai.ModelOptions{
		"meta-llama/llama-4-scout-17b-16e-instruct": {
			Label:    "Groq Llama 4 Scout 17B",
			Supports: &compat_oai.Multimodal,
			Versions: []string{"meta-llama/llama-4-scout-17b-16e-instruct"},
		},
		"llama-3.3-70b-versatile": {
			Label:    "Groq Llama 3.3 70B Versatile",
			Supports: &compat_oai.Multimodal,
			Versions: []string{"llama-3.3-70b-versatile"},
		},
		"llama-3.1-8b-instant": {
			Label:    "Groq Llama 3.1 8B Instant",
			Supports: &compat_oai.Multimodal,
			Versions: []string{"llama-3.1-8b-instant"},
		},
	}

	for model, opts := range supportedModels {
		actions = append(actions, g.DefineModel(model, opts).(api.Action))
	}

	return actions
}

// Model returns a model by name.
func (g *Groq) Model(gk *genkit.Genkit, name string) ai.Model {
	return g.openAICompatible.Model(gk, api.NewName(provider, name))
}

// DefineModel defines a model with the given ID and options.
func (g *Groq) DefineModel(id string, opts ai.ModelOptions) ai.Model {
	return g.openAICompatible.DefineModel(provider, id, opts)
}

// DefineModelWithDefaults defines a model with tool-calling support enabled,
// used for model ids overridden at the command line.
func (g *Groq) DefineModelWithDefaults(id string) ai.Model {
	return g.DefineModel(id, ai.ModelOptions{
		Label:    "Groq " + id,
		Supports: &compat_oai.Multimodal,
	})
}

// ListActions returns a list of actions provided by this plugin.
func (g *Groq) ListActions(ctx context.Context) []api.ActionDesc {
	return g.openAICompatible.ListActions(ctx)
}

// ResolveAction resolves an action by type and name.
func (g *Groq) ResolveAction(atype api.ActionType, name string) api.Action {
	return g.openAICompatible.ResolveAction(atype, name)
}
