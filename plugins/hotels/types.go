package hotels

// SearchParams are the inputs to a hotel search.
type SearchParams struct {
	CityCode  string   `json:"city_code,omitempty"`
	Location  string   `json:"location,omitempty"`
	CheckIn   string   `json:"check_in"`
	CheckOut  string   `json:"check_out"`
	Adults    int      `json:"adults"`
	Rooms     int      `json:"rooms"`
	Amenities []string `json:"amenities,omitempty"`
}

// Location places a hotel.
type Location struct {
	Area        string                 `json:"area,omitempty"`
	City        string                 `json:"city,omitempty"`
	Country     string                 `json:"country,omitempty"`
	Coordinates map[string]interface{} `json:"coordinates,omitempty"`
}

// RoomOption is a bookable room type within an offer.
type RoomOption struct {
	Type           string `json:"type"`
	PricePerNight  int    `json:"price_per_night"`
	TotalPrice     int    `json:"total_price"`
	AvailableRooms int    `json:"available_rooms"`
}

// Price is the hotel price summary.
type Price struct {
	PerNightFrom int    `json:"per_night_from"`
	TotalFrom    int    `json:"total_from"`
	Currency     string `json:"currency"`
}

// NearbyPlace is a point of interest close to the hotel.
type NearbyPlace struct {
	Name     string `json:"name"`
	Distance string `json:"distance,omitempty"`
}

// Offer is a hotel search result entry.
type Offer struct {
	OfferID            string        `json:"offer_id"`
	HotelID            string        `json:"hotel_id"`
	Name               string        `json:"name"`
	Rating             float64       `json:"rating"`
	HotelClass         int           `json:"hotel_class,omitempty"`
	Location           Location      `json:"location"`
	CheckIn            string        `json:"check_in"`
	CheckOut           string        `json:"check_out"`
	Nights             int           `json:"nights"`
	RoomOptions        []RoomOption  `json:"room_options,omitempty"`
	Amenities          []string      `json:"amenities"`
	Price              Price         `json:"price"`
	CancellationPolicy string        `json:"cancellation_policy,omitempty"`
	Deal               string        `json:"deal,omitempty"`
	NearbyPlaces       []NearbyPlace `json:"nearby_places,omitempty"`
	Images             []string      `json:"images,omitempty"`
}

// SearchResult is the search_hotels tool output.
type SearchResult struct {
	Success      bool         `json:"success"`
	Source       string       `json:"source"`
	SearchID     string       `json:"search_id"`
	Query        SearchParams `json:"query"`
	ResultsCount int          `json:"results_count"`
	Hotels       []Offer      `json:"hotels"`
}

// AvailableRoom is one room type returned by the availability check.
type AvailableRoom struct {
	RoomType       string `json:"room_type"`
	AvailableCount int    `json:"available_count"`
	PricePerNight  int    `json:"price_per_night"`
	TotalPrice     int    `json:"total_price"`
	MaxOccupancy   int    `json:"max_occupancy"`
	BedType        string `json:"bed_type"`
}

// AvailabilityResult is the check_hotel_availability tool output.
type AvailabilityResult struct {
	Success        bool            `json:"success"`
	HotelID        string          `json:"hotel_id"`
	Available      bool            `json:"available"`
	CheckIn        string          `json:"check_in"`
	CheckOut       string          `json:"check_out"`
	Nights         int             `json:"nights,omitempty"`
	RoomsRequested int             `json:"rooms_requested,omitempty"`
	AvailableRooms []AvailableRoom `json:"available_rooms,omitempty"`
	Currency       string          `json:"currency,omitempty"`
	Message        string          `json:"message,omitempty"`
}

// SearchAPI.io google_hotels engine raw response types.

type apiResponse struct {
	SearchInformation apiSearchInformation `json:"search_information"`
	Properties        []apiProperty        `json:"properties"`
}

type apiSearchInformation struct {
	TotalResults int `json:"total_results"`
}

type apiProperty struct {
	PropertyToken       string                 `json:"property_token"`
	Name                string                 `json:"name"`
	Description         string                 `json:"description"`
	Rating              float64                `json:"rating"`
	Reviews             int                    `json:"reviews"`
	ExtractedHotelClass int                    `json:"extracted_hotel_class"`
	City                string                 `json:"city"`
	Country             string                 `json:"country"`
	GPSCoordinates      map[string]interface{} `json:"gps_coordinates"`
	CheckInTime         string                 `json:"check_in_time"`
	CheckOutTime        string                 `json:"check_out_time"`
	PricePerNight       apiExtractedPrice      `json:"price_per_night"`
	TotalPrice          apiExtractedPrice      `json:"total_price"`
	Amenities           []string               `json:"amenities"`
	Images              []apiImage             `json:"images"`
	Deal                string                 `json:"deal"`
	NearbyPlaces        []apiNearbyPlace       `json:"nearby_places"`
}

type apiExtractedPrice struct {
	ExtractedPrice float64 `json:"extracted_price"`
}

type apiImage struct {
	Thumbnail string `json:"thumbnail"`
}

type apiNearbyPlace struct {
	Name            string              `json:"name"`
	Transportations []apiTransportation `json:"transportations"`
}

type apiTransportation struct {
	Duration string `json:"duration"`
}
