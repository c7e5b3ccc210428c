package bootstrap

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"gorm.io/gorm"

	"github.com/arundhs/travelagent/agents"
	"github.com/arundhs/travelagent/audit"
	"github.com/arundhs/travelagent/bootstrap/groq"
	"github.com/arundhs/travelagent/config"
	"github.com/arundhs/travelagent/log"
	"github.com/arundhs/travelagent/orm"
	"github.com/arundhs/travelagent/plugins/core"
	"github.com/arundhs/travelagent/plugins/flights"
	"github.com/arundhs/travelagent/plugins/hotels"
	"github.com/arundhs/travelagent/plugins/planner"
	"github.com/arundhs/travelagent/plugins/pricing"
	"github.com/arundhs/travelagent/tools"
)

// App holds the initialized components of the application
type App struct {
	TravelAgent *agents.TravelAgent
	Genkit      *genkit.Genkit
	Registry    *tools.Registry
	Model       ai.Model
	Audit       *audit.Logger
	DB          *gorm.DB
	DryRun      bool
}

// Setup initializes the application components based on the configuration
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	// 1. Setup Genkit with the Groq plugin
	if cfg.Groq.APIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY must be set")
	}

	groqPlugin := &groq.Groq{
		APIKey:  cfg.Groq.APIKey,
		BaseURL: cfg.Groq.BaseURL,
	}
	gk := genkit.Init(ctx, genkit.WithPlugins(groqPlugin))

	model := groqPlugin.Model(gk, cfg.Groq.Model)
	if model == nil {
		model = groqPlugin.DefineModelWithDefaults(cfg.Groq.Model)
	}
	log.Infof(ctx, "Using Groq model %s", cfg.Groq.Model)

	// 2. Audit log and response cache
	auditLog, err := audit.NewLogger(cfg.AuditFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	db, err := orm.Setup(cfg.CachePath)
	if err != nil {
		// The cache is an optimization; searches work without it.
		log.Warnf(ctx, "Response cache unavailable: %v", err)
		db = nil
	}

	// 3. Tool registry and plugins
	registry := tools.NewRegistry()

	core.NewClient(gk, registry)

	flightClient := flights.NewClient(cfg.FlightAPI.APIKey, db, cfg.FlightAPI.Timeout)
	flights.NewSearchTool(flightClient, auditLog, gk, registry)
	flights.NewPricingTool(auditLog, gk, registry)
	flights.NewBookingTool(auditLog, cfg.DryRun, gk, registry)

	hotelClient := hotels.NewClient(cfg.SearchAPI.APIKey, db, cfg.SearchAPI.Timeout)
	hotels.NewSearchTool(hotelClient, auditLog, gk, registry)
	hotels.NewAvailabilityTool(auditLog, gk, registry)
	hotels.NewBookingTool(auditLog, cfg.DryRun, gk, registry)

	plannerClient := planner.NewClient(cfg.HuggingFace.Token)
	if cfg.HuggingFace.Model != "" {
		plannerClient.Model = cfg.HuggingFace.Model
	}
	planner.NewPlanTool(plannerClient, auditLog, gk, registry)
	planner.NewAttractionsTool(plannerClient, auditLog, gk, registry)

	pricing.NewEstimateTool(auditLog, gk, registry)

	log.Infof(ctx, "Registered %d tools", len(registry.GetTools()))

	// 4. Agent
	travelAgent := agents.NewTravelAgent(gk, registry, model, auditLog, cfg.DryRun)

	return &App{
		TravelAgent: travelAgent,
		Genkit:      gk,
		Registry:    registry,
		Model:       model,
		Audit:       auditLog,
		DB:          db,
		DryRun:      cfg.DryRun,
	}, nil
}
