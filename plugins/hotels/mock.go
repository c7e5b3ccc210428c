package hotels

import (
	"math/rand"
	"sort"
	"strings"
	"time"
)

type catalogEntry struct {
	id        string
	name      string
	rating    float64
	area      string
	basePrice int
}

// mockCatalog is the fallback hotel inventory keyed by city code.
var mockCatalog = map[string][]catalogEntry{
	"SIN": {
		{"HTL-MBS001", "Marina Bay Sands", 5, "Marina Bay", 25000},
		{"HTL-FUL002", "Fullerton Hotel", 5, "Marina Bay", 22000},
		{"HTL-RWS003", "Resorts World Sentosa", 5, "Sentosa", 18000},
		{"HTL-HII004", "Holiday Inn Express", 3, "Orchard", 8000},
		{"HTL-NOV005", "Novotel Singapore", 4, "Clarke Quay", 12000},
	},
	"DXB": {
		{"HTL-BJA001", "Burj Al Arab", 5, "Jumeirah", 85000},
		{"HTL-ATL002", "Atlantis The Palm", 5, "Palm Jumeirah", 35000},
		{"HTL-JWM003", "JW Marriott Marquis", 5, "Downtown", 18000},
	},
	"BKK": {
		{"HTL-MND001", "Mandarin Oriental", 5, "Riverside", 15000},
		{"HTL-SHT002", "Shangri-La Hotel", 5, "Silom", 12000},
		{"HTL-IBB003", "ibis Bangkok", 3, "Sukhumvit", 3500},
	},
	"DEFAULT": {
		{"HTL-GEN001", "Grand Hotel", 4, "City Center", 10000},
		{"HTL-GEN002", "Business Hotel", 3, "City Center", 6000},
		{"HTL-GEN003", "Budget Inn", 2, "Suburb", 3000},
	},
}

var amenityPool = []string{
	"WIFI", "POOL", "GYM", "SPA", "RESTAURANT", "BAR",
	"PARKING", "AIRPORT_SHUTTLE", "ROOM_SERVICE",
}

var roomTypeMultipliers = []struct {
	name       string
	multiplier float64
}{
	{"Standard", 1.0},
	{"Deluxe", 1.3},
	{"Suite", 1.8},
}

var cancellationPolicies = []string{
	"Free cancellation until 24h before",
	"Free cancellation until 48h before",
	"Non-refundable",
}

// GenerateMockOffers builds offers from the fallback catalog for the given
// search, sorted by total price.
func GenerateMockOffers(params SearchParams, nights int, rng *rand.Rand) []Offer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cityKey := strings.ToUpper(params.CityCode)
	catalog, ok := mockCatalog[cityKey]
	if !ok {
		catalog = mockCatalog["DEFAULT"]
	}

	rooms := params.Rooms
	if rooms < 1 {
		rooms = 1
	}

	var offers []Offer
	for _, entry := range catalog {
		// Locations not matching the requested landmark are mostly skipped.
		if params.Location != "" && !strings.Contains(strings.ToLower(entry.area), strings.ToLower(params.Location)) {
			if rng.Float64() > 0.3 {
				continue
			}
		}

		perNight := int(float64(entry.basePrice) * (0.9 + rng.Float64()*0.3))
		total := perNight * nights * rooms

		roomOptions := make([]RoomOption, 0, len(roomTypeMultipliers))
		for _, rt := range roomTypeMultipliers {
			roomOptions = append(roomOptions, RoomOption{
				Type:           rt.name,
				PricePerNight:  int(float64(perNight) * rt.multiplier),
				TotalPrice:     int(float64(total) * rt.multiplier),
				AvailableRooms: 1 + rng.Intn(5),
			})
		}

		amenities := sampleAmenities(rng, 4+rng.Intn(5))

		offers = append(offers, Offer{
			OfferID: NewOfferID(),
			HotelID: entry.id,
			Name:    entry.name,
			Rating:  entry.rating,
			Location: Location{
				Area: entry.area,
				City: cityOrUnknown(params.CityCode),
			},
			CheckIn:            params.CheckIn,
			CheckOut:           params.CheckOut,
			Nights:             nights,
			RoomOptions:        roomOptions,
			Amenities:          amenities,
			Price:              Price{PerNightFrom: perNight, TotalFrom: total, Currency: "INR"},
			CancellationPolicy: cancellationPolicies[rng.Intn(len(cancellationPolicies))],
		})
	}

	sort.Slice(offers, func(i, j int) bool {
		return offers[i].Price.TotalFrom < offers[j].Price.TotalFrom
	})

	return offers
}

// GenerateMockAvailability builds an availability response for a hotel.
// Roughly one search in ten comes back with no rooms.
func GenerateMockAvailability(hotelID, checkIn, checkOut string, rooms, nights int, rng *rand.Rand) *AvailabilityResult {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if rng.Float64() <= 0.1 {
		return &AvailabilityResult{
			Success:   true,
			HotelID:   hotelID,
			Available: false,
			CheckIn:   checkIn,
			CheckOut:  checkOut,
			Message:   "No rooms available for selected dates",
		}
	}

	roomBases := []struct {
		name  string
		price int
	}{
		{"Standard", 8000},
		{"Deluxe", 12000},
		{"Suite", 20000},
	}
	bedTypes := []string{"King", "Twin", "Queen"}

	var available []AvailableRoom
	for _, rb := range roomBases {
		qty := rng.Intn(6)
		if qty == 0 {
			continue
		}
		occupancy := 2
		if rb.name != "Standard" {
			occupancy = 3
		}
		available = append(available, AvailableRoom{
			RoomType:       rb.name,
			AvailableCount: qty,
			PricePerNight:  rb.price,
			TotalPrice:     rb.price * nights,
			MaxOccupancy:   occupancy,
			BedType:        bedTypes[rng.Intn(len(bedTypes))],
		})
	}

	return &AvailabilityResult{
		Success:        true,
		HotelID:        hotelID,
		Available:      true,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Nights:         nights,
		RoomsRequested: rooms,
		AvailableRooms: available,
		Currency:       "INR",
	}
}

func sampleAmenities(rng *rand.Rand, n int) []string {
	shuffled := append([]string(nil), amenityPool...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func cityOrUnknown(cityCode string) string {
	if cityCode == "" {
		return "Unknown"
	}
	return cityCode
}
