// Package hotels provides hotel search, availability and booking tools
// backed by SearchAPI.io's Google Hotels engine, falling back to a mock
// catalog when the API is unavailable or unconfigured.
package hotels

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arundhs/travelagent/log"
	"github.com/arundhs/travelagent/orm"
)

const BaseURL = "https://www.searchapi.io/api/v1/search"

const (
	maxResults = 10
	cacheTTL   = 30 * time.Minute
)

// Client is the SearchAPI.io client.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	DB         *gorm.DB // optional response cache
}

// NewClient creates a SearchAPI client. An empty API key is allowed: tools
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

// Search queries the Google Hotels engine and returns up to maxResults offers.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Offer, error) {
	location := params.Location
	if location == "" {
		location = params.CityCode
	}

	cacheKey := fmt.Sprintf("hotels:%s:%s:%s:%d:%d",
		location, params.CheckIn, params.CheckOut, params.Adults, params.Rooms)

	if c.DB != nil {
		if entry, err := orm.GetCacheEntry(c.DB, cacheKey); err == nil {
			var cached []Offer
			if err := json.Unmarshal(entry.Value, &cached); err == nil {
				log.Debugf(ctx, "hotels: cache hit for %s", cacheKey)
				return cached, nil
			}
		}
	}

	query := location
	if !strings.HasPrefix(strings.ToLower(query), "hotels") {
		query = "Hotels in " + query
	}

	values := url.Values{}
	values.Set("engine", "google_hotels")
	values.Set("q", query)
	values.Set("check_in_date", params.CheckIn)
	values.Set("check_out_date", params.CheckOut)
	values.Set("adults", strconv.Itoa(params.Adults))
	values.Set("currency", "USD")
	values.Set("hl", "en")
	values.Set("gl", "us")
	values.Set("api_key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hotel search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hotel search failed: %s", resp.Status)
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode hotel search response: %w", err)
	}

	offers := buildOffers(&raw, params)

	if c.DB != nil && len(offers) > 0 {
		if b, err := json.Marshal(offers); err == nil {
			if err := orm.SetCacheEntry(c.DB, cacheKey, b, cacheTTL); err != nil {
				log.Warnf(ctx, "hotels: failed to cache results: %v", err)
			}
		}
	}

	return offers, nil
}

func buildOffers(raw *apiResponse, params SearchParams) []Offer {
	nights := nightCount(params.CheckIn, params.CheckOut)

	var offers []Offer
	for _, prop := range raw.Properties {
		if len(offers) >= maxResults {
			break
		}

		hotelID := prop.PropertyToken
		offerID := hotelID
		if offerID == "" {
			offerID = NewOfferID()
		}

		name := prop.Name
		if name == "" {
			name = "Unknown Hotel"
		}

		var images []string
		for i, img := range prop.Images {
			if i >= 3 {
				break
			}
			images = append(images, img.Thumbnail)
		}

		var nearby []NearbyPlace
		for i, place := range prop.NearbyPlaces {
			if i >= 3 {
				break
			}
			distance := ""
			if len(place.Transportations) > 0 {
				distance = place.Transportations[0].Duration
			}
			nearby = append(nearby, NearbyPlace{Name: place.Name, Distance: distance})
		}

		offers = append(offers, Offer{
			OfferID:    offerID,
			HotelID:    hotelID,
			Name:       name,
			Rating:     prop.Rating,
			HotelClass: prop.ExtractedHotelClass,
			Location: Location{
				City:        prop.City,
				Country:     prop.Country,
				Coordinates: prop.GPSCoordinates,
			},
			CheckIn:  params.CheckIn,
			CheckOut: params.CheckOut,
			Nights:   nights,
			Amenities: append([]string(nil), prop.Amenities...),
			Price: Price{
				PerNightFrom: int(prop.PricePerNight.ExtractedPrice),
				TotalFrom:    int(prop.TotalPrice.ExtractedPrice),
				Currency:     "USD",
			},
			Deal:         prop.Deal,
			NearbyPlaces: nearby,
			Images:       images,
		})
	}

	return offers
}

func nightCount(checkIn, checkOut string) int {
	in, err1 := time.Parse("2006-01-02", checkIn)
	out, err2 := time.Parse("2006-01-02", checkOut)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// NewOfferID generates a hotel offer id.
func NewOfferID() string {
	return "HOFFER-" + shortID()
}

// NewSearchID generates a hotel search id.
func NewSearchID() string {
	return "HSRCH-" + shortID()
}

func shortID() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:])[:8])
}
