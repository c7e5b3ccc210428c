package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/arundhs/travelagent/audit"
	"github.com/arundhs/travelagent/log"
	"github.com/arundhs/travelagent/plugins/core"
	"github.com/arundhs/travelagent/tools"
)

// SearchInput is the schema for the search_flights tool.
type SearchInput struct {
	Origin        string `json:"origin" description:"Origin airport IATA code (3 letters, e.g. 'MAA' for Chennai)"`
	Destination   string `json:"destination" description:"Destination airport IATA code (3 letters, e.g. 'SIN' for Singapore)"`
	DepartureDate string `json:"departure_date" description:"Departure date in ISO-8601 format (YYYY-MM-DD)"`
	ReturnDate    string `json:"return_date,omitempty" description:"Return date for round trips (YYYY-MM-DD). Omit for one-way."`
	Adults        int    `json:"adults" description:"Number of adult passengers (1-9)"`
	CabinClass    string `json:"cabin_class,omitempty" description:"Cabin class: ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST"`
}

// SearchTool implements search_flights.
type SearchTool struct {
	Client *Client
	Audit  *audit.Logger
}

// NewSearchTool initializes and registers the search_flights tool.
func NewSearchTool(c *Client, auditLog *audit.Logger, gk *genkit.Genkit, registry *tools.Registry) *SearchTool {
	t := &SearchTool{Client: c, Audit: auditLog}
	if gk == nil || registry == nil {
		return t
	}
	registry.Register(genkit.DefineTool[*SearchInput, *SearchResult](
		gk,
		"search_flights",
		"Search for available flights between two airports. Returns a list of flight options with pricing.",
		func(ctx *ai.ToolContext, input *SearchInput) (*SearchResult, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		in := &SearchInput{}
		b, _ := json.Marshal(args)
		if err := json.Unmarshal(b, in); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, in)
	})
	return t
}

// Execute validates the query, hits FlightAPI when configured, and falls
// back to generated offers on any failure.
func (t *SearchTool) Execute(ctx context.Context, input *SearchInput) (*SearchResult, error) {
	if input == nil {
		return nil, fmt.Errorf("input required")
	}

	origin, err := core.ValidateIATACode(input.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := core.ValidateIATACode(input.Destination)
	if err != nil {
		return nil, err
	}
	if _, err := core.ValidateDate(input.DepartureDate); err != nil {
		return nil, err
	}
	if input.ReturnDate != "" {
		if _, err := core.ValidateDate(input.ReturnDate); err != nil {
			return nil, err
		}
	}
	if err := core.ValidatePassengerCount(input.Adults); err != nil {
		return nil, err
	}

	cabinClass := input.CabinClass
	if cabinClass == "" {
		cabinClass = "ECONOMY"
	}
	cabinClass, err = core.ValidateCabinClass(cabinClass)
	if err != nil {
		return nil, err
	}

	params := SearchParams{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: input.DepartureDate,
		ReturnDate:    input.ReturnDate,
		Adults:        input.Adults,
		CabinClass:    cabinClass,
	}

	source := "mock"
	var offers []Offer

	if t.Client != nil && t.Client.Configured() {
		offers, err = t.Client.Search(ctx, params)
		if err != nil || len(offers) == 0 {
			reason := "no offers returned"
			if err != nil {
				reason = err.Error()
			}
			log.Warnf(ctx, "search_flights: falling back to mock data: %s", reason)
			t.Audit.Log(ctx, "search_flights", params,
				map[string]interface{}{"fallback": "mock", "reason": reason}, true, "")
			offers = nil
		} else {
			source = "flightapi.io"
		}
	}

	if offers == nil {
		offers, err = GenerateMockOffers(params, nil)
		if err != nil {
			t.Audit.LogFailure(ctx, "search_flights", params, err)
			return nil, err
		}
	}

	result := &SearchResult{
		Success:      true,
		Source:       source,
		SearchID:     NewSearchID(),
		Query:        params,
		ResultsCount: len(offers),
		Flights:      offers,
	}

	t.Audit.LogSuccess(ctx, "search_flights", params,
		map[string]interface{}{"success": true, "source": source, "count": len(offers)})
	return result, nil
}

// PricingInput is the schema for the get_flight_pricing tool.
type PricingInput struct {
	FlightOfferID string `json:"flight_offer_id" description:"The flight offer ID from search results"`
	Currency      string `json:"currency,omitempty" description:"Currency code for pricing (e.g. 'INR', 'USD')"`
}

// Fees itemizes surcharges on a confirmed fare.
type Fees struct {
	FuelSurcharge int `json:"fuel_surcharge"`
	BookingFee    int `json:"booking_fee"`
}

// ConfirmedPrice is the priced fare with fees.
type ConfirmedPrice struct {
	Base     int    `json:"base"`
	Taxes    int    `json:"taxes"`
	Fees     Fees   `json:"fees"`
	Total    int    `json:"total"`
	Currency string `json:"currency"`
}

// FareRules describes change/cancel conditions.
type FareRules struct {
	Cancellation string `json:"cancellation"`
	Changes      string `json:"changes"`
	Refundable   bool   `json:"refundable"`
}

// PricingResult is the get_flight_pricing tool output.
type PricingResult struct {
	Success          bool           `json:"success"`
	OfferID          string         `json:"offer_id"`
	PricingConfirmed bool           `json:"pricing_confirmed"`
	Price            ConfirmedPrice `json:"price"`
	ValidUntil       string         `json:"valid_until"`
	FareRules        FareRules      `json:"fare_rules"`
}

const bookingFee = 500

// PricingTool implements get_flight_pricing.
type PricingTool struct {
	Audit *audit.Logger
	rng   *rand.Rand
}

// NewPricingTool initializes and registers the get_flight_pricing tool.
func NewPricingTool(auditLog *audit.Logger, gk *genkit.Genkit, registry *tools.Registry) *PricingTool {
	t := &PricingTool{
		Audit: auditLog,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if gk == nil || registry == nil {
		return t
	}
	registry.Register(genkit.DefineTool[*PricingInput, *PricingResult](
		gk,
		"get_flight_pricing",
		"Get confirmed pricing for a specific flight offer including taxes and fees.",
		func(ctx *ai.ToolContext, input *PricingInput) (*PricingResult, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		in := &PricingInput{}
		b, _ := json.Marshal(args)
		if err := json.Unmarshal(b, in); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, in)
	})
	return t
}

// Execute returns confirmed pricing for an offer. There is no pricing
// confirmation endpoint upstream, so the quote is generated: 12% taxes,
// 5% fuel surcharge and a flat booking fee on a base fare.
func (t *PricingTool) Execute(ctx context.Context, input *PricingInput) (*PricingResult, error) {
	if input == nil || input.FlightOfferID == "" {
		return nil, fmt.Errorf("flight_offer_id is required")
	}

	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}
	currency, err := core.ValidateCurrency(currency)
	if err != nil {
		return nil, err
	}

	basePrice := 25000 + t.rng.Intn(55001)

	result := &PricingResult{
		Success:          true,
		OfferID:          input.FlightOfferID,
		PricingConfirmed: true,
		Price: ConfirmedPrice{
			Base:  basePrice,
			Taxes: int(float64(basePrice) * 0.12),
			Fees: Fees{
				FuelSurcharge: int(float64(basePrice) * 0.05),
				BookingFee:    bookingFee,
			},
			Total:    int(float64(basePrice)*1.17) + bookingFee,
			Currency: currency,
		},
		ValidUntil: time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		FareRules: FareRules{
			Cancellation: "Cancellation allowed with fee",
			Changes:      "Changes allowed with fee",
			Refundable:   false,
		},
	}

	t.Audit.LogSuccess(ctx, "get_flight_pricing", input, result)
	return result, nil
}

// Passenger identifies a traveler on a booking.
type Passenger struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// BookingInput is the schema for the book_flight tool.
type BookingInput struct {
	FlightOfferID string      `json:"flight_offer_id" description:"The flight offer ID to book"`
	Passengers    []Passenger `json:"passengers" description:"Passenger details (first_name, last_name)"`
	DryRun        bool        `json:"dry_run,omitempty" description:"If true, simulate the booking without side effects"`
}

// BookingPreview is the dry-run payload.
type BookingPreview struct {
	BookingReference string   `json:"booking_reference"`
	FlightOfferID    string   `json:"flight_offer_id"`
	Passengers       int      `json:"passengers"`
	PassengerNames   []string `json:"passenger_names"`
}

// TicketedPassenger is a confirmed passenger with a ticket number.
type TicketedPassenger struct {
	Name         string `json:"name"`
	TicketNumber string `json:"ticket_number"`
}

// BookingResult is the book_flight tool output.
type BookingResult struct {
	Success               bool                `json:"success"`
	Status                string              `json:"status"`
	Message               string              `json:"message,omitempty"`
	Preview               *BookingPreview     `json:"preview,omitempty"`
	BookingReference      string              `json:"booking_reference,omitempty"`
	FlightOfferID         string              `json:"flight_offer_id,omitempty"`
	Passengers            []TicketedPassenger `json:"passengers,omitempty"`
	ConfirmationEmailSent bool                `json:"confirmation_email_sent,omitempty"`
	CreatedAt             string              `json:"created_at,omitempty"`
	AuditLogID            string              `json:"audit_log_id,omitempty"`
}

// BookingTool implements book_flight. When ForceDryRun is set (global
// dry-run mode) every booking becomes a preview regardless of arguments.
type BookingTool struct {
	Audit       *audit.Logger
	ForceDryRun bool
}

// NewBookingTool initializes and registers the book_flight tool.
func NewBookingTool(auditLog *audit.Logger, forceDryRun bool, gk *genkit.Genkit, registry *tools.Registry) *BookingTool {
	t := &BookingTool{Audit: auditLog, ForceDryRun: forceDryRun}
	if gk == nil || registry == nil {
		return t
	}
	registry.Register(genkit.DefineTool[*BookingInput, *BookingResult](
		gk,
		"book_flight",
		"Book a flight reservation. Use dry_run=true to preview without booking.",
		func(ctx *ai.ToolContext, input *BookingInput) (*BookingResult, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		in := &BookingInput{}
		b, _ := json.Marshal(args)
		if err := json.Unmarshal(b, in); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, in)
	})
	return t
}

// Execute books (or previews) a flight reservation.
func (t *BookingTool) Execute(ctx context.Context, input *BookingInput) (*BookingResult, error) {
	if input == nil || input.FlightOfferID == "" {
		return nil, fmt.Errorf("flight_offer_id is required")
	}
	if len(input.Passengers) == 0 {
		return nil, fmt.Errorf("at least one passenger is required")
	}
	if err := core.ValidatePassengerCount(len(input.Passengers)); err != nil {
		return nil, err
	}

	dryRun := input.DryRun || t.ForceDryRun
	bookingRef := "BK-" + shortID()[:6]

	var result *BookingResult
	if dryRun {
		names := make([]string, len(input.Passengers))
		for i, p := range input.Passengers {
			names[i] = fmt.Sprintf("%s %s", p.FirstName, p.LastName)
		}
		result = &BookingResult{
			Success: true,
			Status:  "DRY_RUN",
			Message: "This is a preview. No actual booking was made.",
			Preview: &BookingPreview{
				BookingReference: bookingRef,
				FlightOfferID:    input.FlightOfferID,
				Passengers:       len(input.Passengers),
				PassengerNames:   names,
			},
		}
	} else {
		ticketed := make([]TicketedPassenger, len(input.Passengers))
		for i, p := range input.Passengers {
			ticketed[i] = TicketedPassenger{
				Name:         fmt.Sprintf("%s %s", p.FirstName, p.LastName),
				TicketNumber: "098-" + shortID() + shortID()[:2],
			}
		}
		result = &BookingResult{
			Success:               true,
			Status:                "CONFIRMED",
			BookingReference:      bookingRef,
			FlightOfferID:         input.FlightOfferID,
			Passengers:            ticketed,
			ConfirmationEmailSent: true,
			CreatedAt:             time.Now().Format(time.RFC3339),
		}
	}

	params := map[string]interface{}{
		"flight_offer_id": input.FlightOfferID,
		"passengers":      input.Passengers,
		"dry_run":         dryRun,
	}
	result.AuditLogID = t.Audit.LogSuccess(ctx, "book_flight", params, result)
	return result, nil
}
