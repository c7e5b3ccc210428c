package hotels

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

// SearchInput is the schema for the search_hotels tool.
type SearchInput struct {
	CityCode  string   `json:"city_code,omitempty" description:"City or airport code (e.g. 'SIN' for Singapore)"`
	Location  string   `json:"location,omitempty" description:"Free-text location or landmark (e.g. 'Marina Bay')"`
	CheckIn   string   `json:"check_in" description:"Check-in date in ISO-8601 format (YYYY-MM-DD)"`
	CheckOut  string   `json:"check_out" description:"Check-out date in ISO-8601 format (YYYY-MM-DD)"`
	Adults    int      `json:"adults" description:"Number of adult guests"`
	Rooms     int      `json:"rooms,omitempty" description:"Number of rooms (default 1)"`
	Amenities []string `json:"amenities,omitempty" description:"Desired amenities (e.g. WIFI, POOL, GYM)"`
}

// SearchTool implements search_hotels.
type SearchTool struct {
	Client *Client
	Audit  *audit.Logger
}

// NewSearchTool initializes and registers the search_hotels tool.
func NewSearchTool(c *Client, auditLog *audit.Logger, gk *genkit.Genkit, registry *tools.Registry) *SearchTool {
	t := &SearchTool{Client: c, Audit: auditLog}
	if gk == nil || registry == nil {
		return t
	}
	registry.Register(genkit.DefineTool[*SearchInput, *SearchResult](
		gk,
		"search_hotels",
		"Search for hotels in a city for given dates. Returns hotel options with room types and pricing.",
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

// Execute validates the stay, hits SearchAPI when configured, and falls
// back to the catalog on any failure.
func (t *SearchTool) Execute(ctx context.Context, input *SearchInput) (*SearchResult, error) {
	if input == nil {
		return nil, fmt.Errorf("input required")
	}
	if input.CityCode == "" && input.Location == "" {
		return nil, fmt.Errorf("city_code or location is required")
	}

	if _, err := core.ValidateDate(input.CheckIn); err != nil {
		return nil, err
	}
	if _, err := core.ValidateDate(input.CheckOut); err != nil {
		return nil, err
	}
	nights, err := core.CalculateNights(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}

	adults := input.Adults
	if adults < 1 {
		adults = 1
	}
	rooms := input.Rooms
	if rooms < 1 {
		rooms = 1
	}

	params := SearchParams{
		CityCode:  input.CityCode,
		Location:  input.Location,
		CheckIn:   input.CheckIn,
		CheckOut:  input.CheckOut,
		Adults:    adults,
		Rooms:     rooms,
		Amenities: input.Amenities,
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
			log.Warnf(ctx, "search_hotels: falling back to mock data: %s", reason)
			t.Audit.Log(ctx, "search_hotels", params,
				map[string]interface{}{"fallback": "mock", "reason": reason}, true, "")
			offers = nil
		} else {
			source = "searchapi.io"
		}
	}

	if offers == nil {
		offers = GenerateMockOffers(params, nights, nil)
	}

	result := &SearchResult{
		Success:      true,
		Source:       source,
		SearchID:     NewSearchID(),
		Query:        params,
		ResultsCount: len(offers),
		Hotels:       offers,
	}

	t.Audit.LogSuccess(ctx, "search_hotels", params,
		map[string]interface{}{"success": true, "source": source, "count": len(offers)})
	return result, nil
}

// AvailabilityInput is the schema for the check_hotel_availability tool.
type AvailabilityInput struct {
	HotelID  string `json:"hotel_id" description:"The hotel ID from search results"`
	CheckIn  string `json:"check_in" description:"Check-in date (YYYY-MM-DD)"`
	CheckOut string `json:"check_out" description:"Check-out date (YYYY-MM-DD)"`
	Rooms    int    `json:"rooms,omitempty" description:"Number of rooms needed (default 1)"`
}

// AvailabilityTool implements check_hotel_availability.
type AvailabilityTool struct {
	Audit *audit.Logger
	rng   *rand.Rand
}

// NewAvailabilityTool initializes and registers the check_hotel_availability tool.
func NewAvailabilityTool(auditLog *audit.Logger, gk *genkit.Genkit, registry *tools.Registry) *AvailabilityTool {
	t := &AvailabilityTool{
		Audit: auditLog,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if gk == nil || registry == nil {
		return t
	}
	registry.Register(genkit.DefineTool[*AvailabilityInput, *AvailabilityResult](
		gk,
		"check_hotel_availability",
		"Check room availability for a specific hotel and dates.",
		func(ctx *ai.ToolContext, input *AvailabilityInput) (*AvailabilityResult, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		in := &AvailabilityInput{}
		b, _ := json.Marshal(args)
		if err := json.Unmarshal(b, in); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, in)
	})
	return t
}

// Execute checks availability. There is no availability endpoint upstream,
// so the answer is generated from the hotel ID and dates.
func (t *AvailabilityTool) Execute(ctx context.Context, input *AvailabilityInput) (*AvailabilityResult, error) {
	if input == nil || input.HotelID == "" {
		return nil, fmt.Errorf("hotel_id is required")
	}

	if _, err := core.ValidateDate(input.CheckIn); err != nil {
		return nil, err
	}
	if _, err := core.ValidateDate(input.CheckOut); err != nil {
		return nil, err
	}
	nights, err := core.CalculateNights(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}

	rooms := input.Rooms
	if rooms < 1 {
		rooms = 1
	}

	result := GenerateMockAvailability(input.HotelID, input.CheckIn, input.CheckOut, rooms, nights, t.rng)

	t.Audit.LogSuccess(ctx, "check_hotel_availability", input,
		map[string]interface{}{"hotel_id": input.HotelID, "available": result.Available})
	return result, nil
}

// Guest identifies a person on a hotel booking.
type Guest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// BookingInput is the schema for the book_hotel tool.
type BookingInput struct {
	HotelID  string  `json:"hotel_id" description:"The hotel ID to book"`
	RoomType string  `json:"room_type,omitempty" description:"Room type: Standard, Deluxe or Suite (default Standard)"`
	CheckIn  string  `json:"check_in" description:"Check-in date (YYYY-MM-DD)"`
	CheckOut string  `json:"check_out" description:"Check-out date (YYYY-MM-DD)"`
	Guests   []Guest `json:"guests" description:"Guest details (first_name, last_name)"`
	Rooms    int     `json:"rooms,omitempty" description:"Number of rooms (default 1)"`
	DryRun   bool    `json:"dry_run,omitempty" description:"If true, simulate the booking without side effects"`
}

// BookingPreview is the dry-run payload.
type BookingPreview struct {
	BookingReference string   `json:"booking_reference"`
	HotelID          string   `json:"hotel_id"`
	RoomType         string   `json:"room_type"`
	CheckIn          string   `json:"check_in"`
	CheckOut         string   `json:"check_out"`
	Nights           int      `json:"nights"`
	Rooms            int      `json:"rooms"`
	GuestNames       []string `json:"guest_names"`
}

// BookedGuest is a confirmed guest on the reservation.
type BookedGuest struct {
	Name         string `json:"name"`
	PrimaryGuest bool   `json:"primary_guest"`
}

// BookingResult is the book_hotel tool output.
type BookingResult struct {
	Success               bool            `json:"success"`
	Status                string          `json:"status"`
	Message               string          `json:"message,omitempty"`
	Preview               *BookingPreview `json:"preview,omitempty"`
	BookingReference      string          `json:"booking_reference,omitempty"`
	ConfirmationNumber    string          `json:"confirmation_number,omitempty"`
	HotelID               string          `json:"hotel_id,omitempty"`
	RoomType              string          `json:"room_type,omitempty"`
	CheckIn               string          `json:"check_in,omitempty"`
	CheckOut              string          `json:"check_out,omitempty"`
	Nights                int             `json:"nights,omitempty"`
	Rooms                 int             `json:"rooms,omitempty"`
	Guests                []BookedGuest   `json:"guests,omitempty"`
	ConfirmationEmailSent bool            `json:"confirmation_email_sent,omitempty"`
	CreatedAt             string          `json:"created_at,omitempty"`
	AuditLogID            string          `json:"audit_log_id,omitempty"`
}

// BookingTool implements book_hotel. When ForceDryRun is set every booking
// becomes a preview regardless of arguments.
type BookingTool struct {
	Audit       *audit.Logger
	ForceDryRun bool
}

// NewBookingTool initializes and registers the book_hotel tool.
func NewBookingTool(auditLog *audit.Logger, forceDryRun bool, gk *genkit.Genkit, registry *tools.Registry) *BookingTool {
	t := &BookingTool{Audit: auditLog, ForceDryRun: forceDryRun}
	if gk == nil || registry == nil {
		return t
	}
	registry.Register(genkit.DefineTool[*BookingInput, *BookingResult](
		gk,
		"book_hotel",
		"Book a hotel reservation. Use dry_run=true to preview without booking.",
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

// Execute books (or previews) a hotel reservation.
func (t *BookingTool) Execute(ctx context.Context, input *BookingInput) (*BookingResult, error) {
	if input == nil || input.HotelID == "" {
		return nil, fmt.Errorf("hotel_id is required")
	}
	if len(input.Guests) == 0 {
		return nil, fmt.Errorf("at least one guest is required")
	}

	if _, err := core.ValidateDate(input.CheckIn); err != nil {
		return nil, err
	}
	if _, err := core.ValidateDate(input.CheckOut); err != nil {
		return nil, err
	}
	nights, err := core.CalculateNights(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}

	roomType := input.RoomType
	if roomType == "" {
		roomType = "Standard"
	}
	rooms := input.Rooms
	if rooms < 1 {
		rooms = 1
	}

	dryRun := input.DryRun || t.ForceDryRun
	bookingRef := "HBK-" + shortID()[:6]

	var result *BookingResult
	if dryRun {
		names := make([]string, len(input.Guests))
		for i, g := range input.Guests {
			names[i] = fmt.Sprintf("%s %s", g.FirstName, g.LastName)
		}
		result = &BookingResult{
			Success: true,
			Status:  "DRY_RUN",
			Message: "This is a preview. No actual booking was made.",
			Preview: &BookingPreview{
				BookingReference: bookingRef,
				HotelID:          input.HotelID,
				RoomType:         roomType,
				CheckIn:          input.CheckIn,
				CheckOut:         input.CheckOut,
				Nights:           nights,
				Rooms:            rooms,
				GuestNames:       names,
			},
		}
	} else {
		booked := make([]BookedGuest, len(input.Guests))
		for i, g := range input.Guests {
			booked[i] = BookedGuest{
				Name:         fmt.Sprintf("%s %s", g.FirstName, g.LastName),
				PrimaryGuest: i == 0,
			}
		}
		result = &BookingResult{
			Success:               true,
			Status:                "CONFIRMED",
			BookingReference:      bookingRef,
			ConfirmationNumber:    "CONF-" + shortID(),
			HotelID:               input.HotelID,
			RoomType:              roomType,
			CheckIn:               input.CheckIn,
			CheckOut:              input.CheckOut,
			Nights:                nights,
			Rooms:                 rooms,
			Guests:                booked,
			ConfirmationEmailSent: true,
			CreatedAt:             time.Now().Format(time.RFC3339),
		}
	}

	params := map[string]interface{}{
		"hotel_id":  input.HotelID,
		"room_type": roomType,
		"check_in":  input.CheckIn,
		"check_out": input.CheckOut,
		"guests":    input.Guests,
		"dry_run":   dryRun,
	}
	result.AuditLogID = t.Audit.LogSuccess(ctx, "book_hotel", params, result)
	return result, nil
}
