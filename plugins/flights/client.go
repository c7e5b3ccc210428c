// Package flights provides flight search, pricing and booking tools backed
// by FlightAPI.io, falling back to generated offers when the API is
// unavailable or unconfigured.
package flights

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arundhs/travelagent/log"
	"github.com/arundhs/travelagent/orm"
)

const BaseURL = "https://api.flightapi.io"

// Cabin class names differ between our enum and FlightAPI's path segments.
var apiCabinNames = map[string]string{
	"ECONOMY":         "Economy",
	"PREMIUM_ECONOMY": "Premium_Economy",
	"BUSINESS":        "Business",
	"FIRST":           "First",
}

const (
	maxResults = 15
	cacheTTL   = 30 * time.Minute
)

// Client is the FlightAPI.io client.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	DB         *gorm.DB // optional response cache
}

// NewClient creates a FlightAPI client. An empty API key is allowed: tools
// using the client skip the network entirely and serve mock data.
func NewClient(apiKey string, db *gorm.DB, timeout int) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    BaseURL,
		HTTPClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		DB:         db,
	}
}

// Configured reports whether the client can reach the real API.
func (c *Client) Configured() bool {
	return c.APIKey != ""
}

// Search queries FlightAPI.io and returns offers sorted by total price.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Offer, error) {
	cacheKey := fmt.Sprintf("flights:%s:%s:%s:%s:%d:%s",
		params.Origin, params.Destination, params.DepartureDate, params.ReturnDate, params.Adults, params.CabinClass)

	if c.DB != nil {
		if entry, err := orm.GetCacheEntry(c.DB, cacheKey); err == nil {
			var cached []Offer
			if err := json.Unmarshal(entry.Value, &cached); err == nil {
				log.Debugf(ctx, "flights: cache hit for %s", cacheKey)
				return cached, nil
			}
		}
	}

	cabin := apiCabinNames[params.CabinClass]
	if cabin == "" {
		cabin = "Economy"
	}

	// FlightAPI encodes the whole query in the path.
	var endpoint string
	if params.ReturnDate != "" {
		endpoint = fmt.Sprintf("%s/roundtrip/%s/%s/%s/%s/%s/%d/0/0/%s/INR",
			c.BaseURL, c.APIKey, params.Origin, params.Destination,
			params.DepartureDate, params.ReturnDate, params.Adults, cabin)
	} else {
		endpoint = fmt.Sprintf("%s/onewaytrip/%s/%s/%s/%s/%d/0/0/%s/INR",
			c.BaseURL, c.APIKey, params.Origin, params.Destination,
			params.DepartureDate, params.Adults, cabin)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flight search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight search failed: %s", resp.Status)
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode flight search response: %w", err)
	}

	offers := c.buildOffers(&raw, params)

	if c.DB != nil && len(offers) > 0 {
		if b, err := json.Marshal(offers); err == nil {
			if err := orm.SetCacheEntry(c.DB, cacheKey, b, cacheTTL); err != nil {
				log.Warnf(ctx, "flights: failed to cache results: %v", err)
			}
		}
	}

	return offers, nil
}

// buildOffers joins the normalized FlightAPI tables into offers.
func (c *Client) buildOffers(raw *apiResponse, params SearchParams) []Offer {
	legs := make(map[string]apiLeg, len(raw.Legs))
	for _, l := range raw.Legs {
		legs[l.ID] = l
	}
	carriers := make(map[int]apiCarrier, len(raw.Carriers))
	for _, cr := range raw.Carriers {
		carriers[cr.ID] = cr
	}
	places := make(map[int]apiPlace, len(raw.Places))
	for _, p := range raw.Places {
		places[p.ID] = p
	}

	var offers []Offer
	for _, itin := range raw.Itineraries {
		if len(offers) >= maxResults {
			break
		}
		if len(itin.PricingOptions) == 0 {
			continue
		}

		best := itin.PricingOptions[0]
		amount := int(best.Price.Amount)

		var segments []*Segment
		airline := Airline{Code: "??", Name: "Unknown"}
		for i, legID := range itin.LegIDs {
			leg, ok := legs[legID]
			if !ok {
				continue
			}

			origin := params.Origin
			if p, ok := places[leg.OriginPlaceID]; ok && p.IATA != "" {
				origin = p.IATA
			}
			dest := params.Destination
			if p, ok := places[leg.DestinationPlaceID]; ok && p.IATA != "" {
				dest = p.IATA
			}

			segments = append(segments, &Segment{
				Departure:       FlightPoint{Airport: origin, DateTime: leg.Departure},
				Arrival:         FlightPoint{Airport: dest, DateTime: leg.Arrival},
				DurationMinutes: leg.Duration,
				Stops:           leg.StopCount,
			})

			if i == 0 && len(leg.MarketingCarrierIDs) > 0 {
				if cr, ok := carriers[leg.MarketingCarrierIDs[0]]; ok {
					airline = Airline{Code: cr.IATA, Name: cr.Name}
				}
			}
		}
		if len(segments) == 0 {
			continue
		}

		itinerary := Itinerary{Outbound: segments[0]}
		if len(segments) > 1 {
			itinerary.Return = segments[1]
		}

		bookingURL := ""
		if len(best.Items) > 0 {
			bookingURL = best.Items[0].URL
		}

		offerID := itin.ID
		if offerID == "" {
			offerID = NewOfferID()
		}

		offers = append(offers, Offer{
			OfferID:    offerID,
			Airline:    airline,
			Itinerary:  itinerary,
			CabinClass: params.CabinClass,
			Passengers: params.Adults,
			Price: Price{
				Base:     int(float64(amount) * 0.88),
				Taxes:    int(float64(amount) * 0.12),
				Total:    amount,
				Currency: "INR",
			},
			BookingURL:     bookingURL,
			SeatsAvailable: 9,
		})
	}

	sort.Slice(offers, func(i, j int) bool {
		return offers[i].Price.Total < offers[j].Price.Total
	})

	return offers
}

// NewOfferID generates a flight offer id.
func NewOfferID() string {
	return "FLT-" + shortID()
}

// NewSearchID generates a flight search id.
func NewSearchID() string {
	return "SRCH-" + shortID()
}

func shortID() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:])[:8])
}
