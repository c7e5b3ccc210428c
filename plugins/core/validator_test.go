package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDate(t *testing.T) {
	future := time.Now().AddDate(0, 1, 0).Format("2006-01-02")

	parsed, err := ValidateDate(future)
	require.NoError(t, err)
	assert.Equal(t, future, parsed.Format("2006-01-02"))

	_, err = ValidateDate("2020-01-01")
	assert.Error(t, err, "past dates are rejected")

	_, err = ValidateDate("01-09-2026")
	assert.Error(t, err, "non ISO-8601 format is rejected")

	_, err = ValidateDate("tomorrow")
	assert.Error(t, err)
}

func TestValidateDate_LocalCalendarDay(t *testing.T) {
	restore := time.Local
	defer func() { time.Local = restore }()

	// UTC+14: the local calendar day is ahead of UTC for most of the day.
	kiritimati, err := time.LoadLocation("Pacific/Kiritimati")
	require.NoError(t, err)
	time.Local = kiritimati

	today := time.Now().Format("2006-01-02")
	_, err = ValidateDate(today)
	assert.NoError(t, err, "local today is valid")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	_, err = ValidateDate(yesterday)
	assert.Error(t, err, "local yesterday is past")

	// UTC-11: the local calendar day lags UTC.
	pagoPago, err := time.LoadLocation("Pacific/Pago_Pago")
	require.NoError(t, err)
	time.Local = pagoPago

	today = time.Now().Format("2006-01-02")
	_, err = ValidateDate(today)
	assert.NoError(t, err, "lagging local today is still valid")
}

func TestValidateIATACode(t *testing.T) {
	code, err := ValidateIATACode("maa")
	require.NoError(t, err)
	assert.Equal(t, "MAA", code)

	code, err = ValidateIATACode(" SIN ")
	require.NoError(t, err)
	assert.Equal(t, "SIN", code)

	// Well-formed codes outside the sample set pass.
	code, err = ValidateIATACode("XYZ")
	require.NoError(t, err)
	assert.Equal(t, "XYZ", code)

	for _, bad := range []string{"", "SI", "SING", "S1N", "Chennai"} {
		_, err := ValidateIATACode(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateCurrency(t *testing.T) {
	cur, err := ValidateCurrency("inr")
	require.NoError(t, err)
	assert.Equal(t, "INR", cur)

	_, err = ValidateCurrency("BTC")
	assert.Error(t, err)
}

func TestValidatePassengerCount(t *testing.T) {
	assert.NoError(t, ValidatePassengerCount(1))
	assert.NoError(t, ValidatePassengerCount(9))
	assert.Error(t, ValidatePassengerCount(0))
	assert.Error(t, ValidatePassengerCount(10))
	assert.Error(t, ValidatePassengerCount(-1))
}

func TestValidateCabinClass(t *testing.T) {
	for _, c := range []string{"economy", "PREMIUM_ECONOMY", "Business", "FIRST"} {
		got, err := ValidateCabinClass(c)
		require.NoError(t, err, c)
		assert.True(t, CabinClasses[got])
	}

	_, err := ValidateCabinClass("DELUXE")
	assert.Error(t, err)
}

func TestCalculateNights(t *testing.T) {
	nights, err := CalculateNights("2026-09-01", "2026-09-05")
	require.NoError(t, err)
	assert.Equal(t, 4, nights)

	_, err = CalculateNights("2026-09-05", "2026-09-01")
	assert.Error(t, err)

	_, err = CalculateNights("2026-09-01", "2026-09-01")
	assert.Error(t, err)

	_, err = CalculateNights("bad", "2026-09-01")
	assert.Error(t, err)
}

func TestGetCurrencyForCountry(t *testing.T) {
	assert.Equal(t, "INR", GetCurrencyForCountry("IN"))
	assert.Equal(t, "USD", GetCurrencyForCountry("US"))
	assert.Equal(t, "SGD", GetCurrencyForCountry("sg"))
	assert.Equal(t, "USD", GetCurrencyForCountry(""))
	assert.Equal(t, "USD", GetCurrencyForCountry("??"))
}
