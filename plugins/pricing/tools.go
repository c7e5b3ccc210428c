// Package pricing provides trip cost estimation.
package pricing

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/google/uuid"

	"github.com/arundhs/travelagent/audit"
	"github.com/arundhs/travelagent/plugins/core"
	"github.com/arundhs/travelagent/tools"
)

const (
	taxRate        = 0.12
	serviceFeeRate = 0.02

	estimateDisclaimer = "This is an estimate. Final prices may vary based on availability and exchange rates."
)

// EstimateInput is the schema for the estimate_total_cost tool.
type EstimateInput struct {
	FlightPrice     float64            `json:"flight_price" description:"Total flight cost"`
	HotelPrice      float64            `json:"hotel_price" description:"Total hotel cost"`
	Currency        string             `json:"currency" description:"Currency code (e.g. 'INR', 'USD')"`
	IncludeTaxes    *bool              `json:"include_taxes,omitempty" description:"Whether the prices already include taxes (default true)"`
	AdditionalCosts map[string]float64 `json:"additional_costs,omitempty" description:"Extra costs by name (transfers, activities, visas)"`
}

// Amount is a priced line item.
type Amount struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Breakdown itemizes the estimate.
type Breakdown struct {
	Flights         Amount             `json:"flights"`
	Hotels          Amount             `json:"hotels"`
	Additional      map[string]float64 `json:"additional,omitempty"`
	AdditionalTotal float64            `json:"additional_total,omitempty"`
}

// EstimateResult is the estimate_total_cost tool output.
type EstimateResult struct {
	Success        bool      `json:"success"`
	EstimateID     string    `json:"estimate_id"`
	Breakdown      Breakdown `json:"breakdown"`
	Subtotal       float64   `json:"subtotal"`
	TaxesIncluded  bool      `json:"taxes_included"`
	EstimatedTaxes float64   `json:"estimated_taxes"`
	ServiceFee     float64   `json:"service_fee"`
	GrandTotal     float64   `json:"grand_total"`
	Currency       string    `json:"currency"`
	Disclaimer     string    `json:"disclaimer"`
}

// EstimateTool implements estimate_total_cost.
type EstimateTool struct {
	Audit *audit.Logger
}

// NewEstimateTool initializes and registers the estimate_total_cost tool.
func NewEstimateTool(auditLog *audit.Logger, gk *genkit.Genkit, registry *tools.Registry) *EstimateTool {
	t := &EstimateTool{Audit: auditLog}
	if gk == nil || registry == nil {
		return t
	}
	registry.Register(genkit.DefineTool[*EstimateInput, *EstimateResult](
		gk,
		"estimate_total_cost",
		"Calculate the total estimated trip cost from flight and hotel prices, with taxes, service fee and any additional costs.",
		func(ctx *ai.ToolContext, input *EstimateInput) (*EstimateResult, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		in := &EstimateInput{}
		b, _ := json.Marshal(args)
		if err := json.Unmarshal(b, in); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, in)
	})
	return t
}

// Execute computes the cost breakdown. Taxes are estimated at 12% of the
// flight+hotel subtotal when not already included; a 2% service fee always
// applies to the subtotal.
func (t *EstimateTool) Execute(ctx context.Context, input *EstimateInput) (*EstimateResult, error) {
	if input == nil {
		return nil, fmt.Errorf("input required")
	}
	if input.FlightPrice < 0 || input.HotelPrice < 0 {
		return nil, fmt.Errorf("prices must be non-negative")
	}

	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}
	currency, err := core.ValidateCurrency(currency)
	if err != nil {
		return nil, err
	}

	// Omitted include_taxes means the quoted prices already carry taxes.
	includeTaxes := input.IncludeTaxes == nil || *input.IncludeTaxes

	subtotal := input.FlightPrice + input.HotelPrice

	additionalTotal := 0.0
	for _, amount := range input.AdditionalCosts {
		additionalTotal += amount
	}

	estimatedTaxes := 0.0
	if !includeTaxes {
		estimatedTaxes = subtotal * taxRate
	}
	serviceFee := subtotal * serviceFeeRate
	grandTotal := subtotal + additionalTotal + estimatedTaxes + serviceFee

	result := &EstimateResult{
		Success:    true,
		EstimateID: NewEstimateID(),
		Breakdown: Breakdown{
			Flights:         Amount{Amount: input.FlightPrice, Currency: currency},
			Hotels:          Amount{Amount: input.HotelPrice, Currency: currency},
			Additional:      input.AdditionalCosts,
			AdditionalTotal: round2(additionalTotal),
		},
		Subtotal:       round2(subtotal),
		TaxesIncluded:  includeTaxes,
		EstimatedTaxes: round2(estimatedTaxes),
		ServiceFee:     round2(serviceFee),
		GrandTotal:     round2(grandTotal),
		Currency:       currency,
		Disclaimer:     estimateDisclaimer,
	}

	t.Audit.LogSuccess(ctx, "estimate_total_cost", input, result)
	return result, nil
}

// NewEstimateID returns an EST- prefixed identifier.
func NewEstimateID() string {
	id := uuid.New()
	return "EST-" + strings.ToUpper(hex.EncodeToString(id[:]))[:8]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
