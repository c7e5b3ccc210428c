package flights

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arundhs/travelagent/orm"
)

const flightAPIResponse = `{
	"itineraries": [
		{
			"id": "itin-1",
			"leg_ids": ["leg-1"],
			"pricing_options": [
				{"price": {"amount": 20000}, "items": [{"url": "/book/itin-1"}]}
			]
		},
		{
			"id": "itin-2",
			"leg_ids": ["leg-2"],
			"pricing_options": [
				{"price": {"amount": 15000}, "items": [{"url": "/book/itin-2"}]}
			]
		}
	],
	"legs": [
		{
			"id": "leg-1",
			"departure": "2026-09-15T08:30:00",
			"arrival": "2026-09-15T15:00:00",
			"duration": 270,
			"stop_count": 0,
			"marketing_carrier_ids": [101],
			"origin_place_id": 1,
			"destination_place_id": 2
		},
		{
			"id": "leg-2",
			"departure": "2026-09-15T22:00:00",
			"arrival": "2026-09-16T06:30:00",
			"duration": 390,
			"stop_count": 1,
			"marketing_carrier_ids": [102],
			"origin_place_id": 1,
			"destination_place_id": 2
		}
	],
	"carriers": [
		{"id": 101, "name": "Singapore Airlines", "iata": "SQ"},
		{"id": 102, "name": "IndiGo", "iata": "6E"}
	],
	"places": [
		{"id": 1, "iata": "MAA"},
		{"id": 2, "iata": "SIN"}
	]
}`

func testClient(t *testing.T, handler http.HandlerFunc, db *gorm.DB) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", db, 5)
	c.BaseURL = srv.URL
	return c
}

func TestNewClient(t *testing.T) {
	c := NewClient("key", nil, 60)
	assert.Equal(t, "https://api.flightapi.io", c.BaseURL)
	assert.True(t, c.Configured())
	assert.Equal(t, 60*time.Second, c.HTTPClient.Timeout)

	assert.False(t, NewClient("", nil, 60).Configured())
}

func TestClient_Search(t *testing.T) {
	var requestPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestPath = r.URL.Path
		w.Write([]byte(flightAPIResponse))
	}, nil)

	offers, err := c.Search(context.Background(), SearchParams{
		Origin:        "MAA",
		Destination:   "SIN",
		DepartureDate: "2026-09-15",
		Adults:        2,
		CabinClass:    "ECONOMY",
	})
	require.NoError(t, err)
	require.Len(t, offers, 2)

	// One-way requests hit the onewaytrip path with the key embedded.
	assert.True(t, strings.HasPrefix(requestPath, "/onewaytrip/test-key/MAA/SIN/2026-09-15/2/0/0/Economy"), requestPath)

	// Sorted by total price, cheapest first.
	assert.Equal(t, "itin-2", offers[0].OfferID)
	assert.Equal(t, 15000, offers[0].Price.Total)
	assert.Equal(t, int(15000*0.88), offers[0].Price.Base)
	assert.Equal(t, int(15000*0.12), offers[0].Price.Taxes)
	assert.Equal(t, "6E", offers[0].Airline.Code)
	assert.Equal(t, 1, offers[0].Itinerary.Outbound.Stops)

	assert.Equal(t, "SQ", offers[1].Airline.Code)
	assert.Equal(t, "MAA", offers[1].Itinerary.Outbound.Departure.Airport)
	assert.Equal(t, "SIN", offers[1].Itinerary.Outbound.Arrival.Airport)
	assert.Equal(t, "/book/itin-1", offers[1].BookingURL)
}

func TestClient_Search_RoundTripPath(t *testing.T) {
	var requestPath string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestPath = r.URL.Path
		w.Write([]byte(`{"itineraries":[],"legs":[],"carriers":[],"places":[]}`))
	}, nil)

	_, err := c.Search(context.Background(), SearchParams{
		Origin:        "MAA",
		Destination:   "SIN",
		DepartureDate: "2026-09-15",
		ReturnDate:    "2026-09-20",
		Adults:        1,
		CabinClass:    "BUSINESS",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(requestPath, "/roundtrip/test-key/MAA/SIN/2026-09-15/2026-09-20/1/0/0/Business"), requestPath)
}

func TestClient_Search_HTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	_, err := c.Search(context.Background(), SearchParams{
		Origin:        "MAA",
		Destination:   "SIN",
		DepartureDate: "2026-09-15",
		Adults:        1,
	})
	assert.Error(t, err)
}

func TestClient_Search_UsesCache(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orm.APICache{}))

	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(flightAPIResponse))
	}, db)

	params := SearchParams{
		Origin:        "MAA",
		Destination:   "SIN",
		DepartureDate: "2026-09-15",
		Adults:        1,
		CabinClass:    "ECONOMY",
	}

	first, err := c.Search(context.Background(), params)
	require.NoError(t, err)
	second, err := c.Search(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second search should be served from cache")
	assert.Equal(t, first, second)
}
