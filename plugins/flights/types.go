package flights

// SearchParams are the inputs to a flight search.
type SearchParams struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Adults        int    `json:"adults"`
	CabinClass    string `json:"cabin_class"`
}

// Airline identifies a carrier.
type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// FlightPoint is one end of a flight segment.
type FlightPoint struct {
	Airport  string `json:"airport"`
	DateTime string `json:"datetime"`
}

// Segment is a single direction of travel.
type Segment struct {
	Departure       FlightPoint `json:"departure"`
	Arrival         FlightPoint `json:"arrival"`
	Duration        string      `json:"duration,omitempty"`
	DurationMinutes int         `json:"duration_minutes,omitempty"`
	Stops           int         `json:"stops"`
}

// Itinerary groups the outbound segment and, for round trips, the return.
type Itinerary struct {
	Outbound *Segment `json:"outbound"`
	Return   *Segment `json:"return,omitempty"`
}

// Price is the fare breakdown for an offer.
type Price struct {
	Base     int    `json:"base"`
	Taxes    int    `json:"taxes"`
	Total    int    `json:"total"`
	Currency string `json:"currency"`
}

// Offer is a bookable flight option.
type Offer struct {
	OfferID        string    `json:"offer_id"`
	Airline        Airline   `json:"airline"`
	Itinerary      Itinerary `json:"itinerary"`
	CabinClass     string    `json:"cabin_class"`
	Passengers     int       `json:"passengers"`
	Price          Price     `json:"price"`
	BookingURL     string    `json:"booking_url,omitempty"`
	SeatsAvailable int       `json:"seats_available"`
}

// SearchResult is the search_flights tool output.
type SearchResult struct {
	Success      bool         `json:"success"`
	Source       string       `json:"source"`
	SearchID     string       `json:"search_id"`
	Query        SearchParams `json:"query"`
	ResultsCount int          `json:"results_count"`
	Flights      []Offer      `json:"flights"`
}

// FlightAPI.io raw response types. The API returns normalized tables keyed
// by id which are joined back together when building offers.

type apiResponse struct {
	Itineraries []apiItinerary `json:"itineraries"`
	Legs        []apiLeg       `json:"legs"`
	Carriers    []apiCarrier   `json:"carriers"`
	Places      []apiPlace     `json:"places"`
}

type apiItinerary struct {
	ID             string             `json:"id"`
	LegIDs         []string           `json:"leg_ids"`
	PricingOptions []apiPricingOption `json:"pricing_options"`
}

type apiPricingOption struct {
	Price apiPrice  `json:"price"`
	Items []apiItem `json:"items"`
}

type apiPrice struct {
	Amount float64 `json:"amount"`
}

type apiItem struct {
	URL string `json:"url"`
}

type apiLeg struct {
	ID                  string `json:"id"`
	Departure           string `json:"departure"`
	Arrival             string `json:"arrival"`
	Duration            int    `json:"duration"`
	StopCount           int    `json:"stop_count"`
	MarketingCarrierIDs []int  `json:"marketing_carrier_ids"`
	OriginPlaceID       int    `json:"origin_place_id"`
	DestinationPlaceID  int    `json:"destination_place_id"`
}

type apiCarrier struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	IATA string `json:"iata"`
}

type apiPlace struct {
	ID   int    `json:"id"`
	IATA string `json:"iata"`
}
