package flights

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// mockAirlines is the carrier pool for generated offers.
var mockAirlines = []Airline{
	{Code: "SQ", Name: "Singapore Airlines"},
	{Code: "AI", Name: "Air India"},
	{Code: "6E", Name: "IndiGo"},
	{Code: "UK", Name: "Vistara"},
	{Code: "EK", Name: "Emirates"},
	{Code: "QR", Name: "Qatar Airways"},
}

// basePriceRanges holds per-passenger fare bands in INR by cabin class.
var basePriceRanges = map[string][2]int{
	"ECONOMY":         {15000, 35000},
	"PREMIUM_ECONOMY": {35000, 55000},
	"BUSINESS":        {80000, 150000},
	"FIRST":           {200000, 400000},
}

var minuteMarks = []int{0, 15, 30, 45}

// GenerateMockOffers builds 3-6 plausible offers for the given search,
// sorted by total price. Used whenever the real API is unavailable.
func GenerateMockOffers(params SearchParams, rng *rand.Rand) ([]Offer, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	depDate, err := time.Parse("2006-01-02", params.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("invalid departure date %q: %w", params.DepartureDate, err)
	}

	priceRange, ok := basePriceRanges[params.CabinClass]
	if !ok {
		priceRange = basePriceRanges["ECONOMY"]
	}

	numOptions := 3 + rng.Intn(4)
	offers := make([]Offer, 0, numOptions)

	for i := 0; i < numOptions; i++ {
		airline := mockAirlines[rng.Intn(len(mockAirlines))]
		basePrice := priceRange[0] + rng.Intn(priceRange[1]-priceRange[0]+1)
		durationHours := 4 + rng.Intn(5)

		outbound := mockSegment(rng, params.Origin, params.Destination, depDate, durationHours)

		offer := Offer{
			OfferID:    NewOfferID(),
			Airline:    airline,
			Itinerary:  Itinerary{Outbound: outbound},
			CabinClass: params.CabinClass,
			Passengers: params.Adults,
			Price: Price{
				Base:     basePrice * params.Adults,
				Taxes:    int(float64(basePrice*params.Adults) * 0.12),
				Total:    int(float64(basePrice*params.Adults) * 1.12),
				Currency: "INR",
			},
			SeatsAvailable: 2 + rng.Intn(14),
		}

		if params.ReturnDate != "" {
			retDate, err := time.Parse("2006-01-02", params.ReturnDate)
			if err != nil {
				return nil, fmt.Errorf("invalid return date %q: %w", params.ReturnDate, err)
			}
			offer.Itinerary.Return = mockSegment(rng, params.Destination, params.Origin, retDate, durationHours)
			offer.Price.Base *= 2
			offer.Price.Taxes *= 2
			offer.Price.Total *= 2
		}

		offers = append(offers, offer)
	}

	sort.Slice(offers, func(i, j int) bool {
		return offers[i].Price.Total < offers[j].Price.Total
	})

	return offers, nil
}

func mockSegment(rng *rand.Rand, origin, destination string, date time.Time, durationHours int) *Segment {
	depHour := 6 + rng.Intn(17)
	depTime := time.Date(date.Year(), date.Month(), date.Day(),
		depHour, minuteMarks[rng.Intn(len(minuteMarks))], 0, 0, time.UTC)
	extraMinutes := rng.Intn(46)
	arrTime := depTime.Add(time.Duration(durationHours)*time.Hour + time.Duration(extraMinutes)*time.Minute)

	// Mostly direct flights.
	stops := 0
	if rng.Intn(4) == 3 {
		stops = 1
	}

	return &Segment{
		Departure: FlightPoint{Airport: origin, DateTime: depTime.Format("2006-01-02T15:04:05")},
		Arrival:   FlightPoint{Airport: destination, DateTime: arrTime.Format("2006-01-02T15:04:05")},
		Duration:  fmt.Sprintf("PT%dH%dM", durationHours, extraMinutes),
		Stops:     stops,
	}
}
