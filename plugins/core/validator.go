package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// KnownIATACodes is a sample set of airport codes used for validation.
// Well-formed codes outside this set are still accepted, since the full
// IATA registry is much larger.
var KnownIATACodes = map[string]bool{
	"MAA": true, "SIN": true, "BOM": true, "DEL": true, "BLR": true,
	"HYD": true, "CCU": true, "PNQ": true, "COK": true, "GOI": true,
	"DXB": true, "DOH": true, "AUH": true, "BAH": true, "KWI": true,
	"MCT": true, "RUH": true, "JED": true,
	"LHR": true, "CDG": true, "FRA": true, "AMS": true, "FCO": true,
	"BCN": true, "MAD": true, "MUC": true, "ZRH": true, "VIE": true,
	"JFK": true, "LAX": true, "SFO": true, "ORD": true, "MIA": true,
	"BOS": true, "SEA": true, "ATL": true, "DFW": true, "DEN": true,
	"HKG": true, "NRT": true, "ICN": true, "BKK": true, "KUL": true,
	"CGK": true, "MNL": true, "SGN": true, "HAN": true, "PEK": true,
	"SYD": true, "MEL": true, "AKL": true, "PER": true, "BNE": true,
}

// SupportedCurrencies lists the currency codes the pricing tools accept.
var SupportedCurrencies = map[string]bool{
	"INR": true, "USD": true, "EUR": true, "GBP": true, "SGD": true,
	"AED": true, "JPY": true, "AUD": true, "THB": true, "MYR": true,
}

// CabinClasses lists the accepted cabin class values.
var CabinClasses = map[string]bool{
	"ECONOMY":         true,
	"PREMIUM_ECONOMY": true,
	"BUSINESS":        true,
	"FIRST":           true,
}

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateDate checks that a date is YYYY-MM-DD and not in the past,
// returning the parsed form.
func ValidateDate(dateStr string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: expected YYYY-MM-DD (ISO-8601)", dateStr)
	}
	// Compare calendar dates in the caller's timezone, not UTC midnight,
	// so "today" is accepted for the whole local day.
	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if parsed.Before(today) {
		return time.Time{}, fmt.Errorf("date %s is in the past", dateStr)
	}
	return parsed, nil
}

// ValidateIATACode normalizes and checks a 3-letter airport/city code.
func ValidateIATACode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !iataPattern.MatchString(code) {
		return "", fmt.Errorf("invalid IATA code format %q: expected 3 letters", code)
	}
	// Codes outside the sample set are accepted as-is.
	return code, nil
}

// ValidateCurrency normalizes and checks a currency code.
func ValidateCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !SupportedCurrencies[currency] {
		return "", fmt.Errorf("unsupported currency %q", currency)
	}
	return currency, nil
}

// ValidatePassengerCount checks the per-booking passenger limit.
func ValidatePassengerCount(count int) error {
	if count < 1 || count > 9 {
		return fmt.Errorf("invalid passenger count %d: must be 1-9", count)
	}
	return nil
}

// ValidateCabinClass normalizes and checks a cabin class.
func ValidateCabinClass(cabinClass string) (string, error) {
	cabinClass = strings.ToUpper(strings.TrimSpace(cabinClass))
	if !CabinClasses[cabinClass] {
		return "", fmt.Errorf("invalid cabin class %q", cabinClass)
	}
	return cabinClass, nil
}

// CalculateNights returns the number of nights between two YYYY-MM-DD dates.
func CalculateNights(checkIn, checkOut string) (int, error) {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return 0, fmt.Errorf("invalid check-in date %q: %w", checkIn, err)
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return 0, fmt.Errorf("invalid check-out date %q: %w", checkOut, err)
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights <= 0 {
		return 0, fmt.Errorf("check-out %s must be after check-in %s", checkOut, checkIn)
	}
	return nights, nil
}
