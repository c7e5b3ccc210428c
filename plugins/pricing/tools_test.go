package pricing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arundhs/travelagent/audit"
)

func testEstimateTool(t *testing.T) *EstimateTool {
	logger, err := audit.NewLogger(filepath.Join(t.TempDir(), "audit.jsonl"))
	require.NoError(t, err)
	return NewEstimateTool(logger, nil, nil)
}

func boolPtr(v bool) *bool { return &v }

func TestEstimateTool_TaxesIncluded(t *testing.T) {
	tool := testEstimateTool(t)

	result, err := tool.Execute(context.Background(), &EstimateInput{
		FlightPrice:  50000,
		HotelPrice:   30000,
		Currency:     "INR",
		IncludeTaxes: boolPtr(true),
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Contains(t, result.EstimateID, "EST-")
	assert.Equal(t, 80000.0, result.Subtotal)
	assert.True(t, result.TaxesIncluded)
	assert.Equal(t, 0.0, result.EstimatedTaxes)
	assert.Equal(t, 1600.0, result.ServiceFee) // 2% of subtotal
	assert.Equal(t, 81600.0, result.GrandTotal)
	assert.Equal(t, "INR", result.Currency)
	assert.NotEmpty(t, result.Disclaimer)
}

func TestEstimateTool_TaxesNotIncluded(t *testing.T) {
	tool := testEstimateTool(t)

	result, err := tool.Execute(context.Background(), &EstimateInput{
		FlightPrice:  50000,
		HotelPrice:   30000,
		Currency:     "INR",
		IncludeTaxes: boolPtr(false),
	})
	require.NoError(t, err)

	assert.False(t, result.TaxesIncluded)
	assert.Equal(t, 9600.0, result.EstimatedTaxes) // 12% of subtotal
	assert.Equal(t, 1600.0, result.ServiceFee)
	assert.Equal(t, 91200.0, result.GrandTotal)
}

func TestEstimateTool_DefaultsToTaxesIncluded(t *testing.T) {
	tool := testEstimateTool(t)

	result, err := tool.Execute(context.Background(), &EstimateInput{
		FlightPrice: 10000,
		HotelPrice:  5000,
		Currency:    "USD",
	})
	require.NoError(t, err)
	assert.True(t, result.TaxesIncluded)
	assert.Equal(t, 0.0, result.EstimatedTaxes)
}

func TestEstimateTool_AdditionalCosts(t *testing.T) {
	tool := testEstimateTool(t)

	result, err := tool.Execute(context.Background(), &EstimateInput{
		FlightPrice: 40000,
		HotelPrice:  20000,
		Currency:    "INR",
		AdditionalCosts: map[string]float64{
			"airport_transfers": 2500,
			"activities":        7500,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10000.0, result.Breakdown.AdditionalTotal)
	assert.Equal(t, 2500.0, result.Breakdown.Additional["airport_transfers"])
	// subtotal + additional + 2% service fee
	assert.Equal(t, 60000.0+10000.0+1200.0, result.GrandTotal)
}

func TestEstimateTool_Rounding(t *testing.T) {
	tool := testEstimateTool(t)

	result, err := tool.Execute(context.Background(), &EstimateInput{
		FlightPrice:  100.50,
		HotelPrice:   0,
		Currency:     "USD",
		IncludeTaxes: boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, 100.50, result.Subtotal)
	assert.Equal(t, 12.06, result.EstimatedTaxes)
	assert.Equal(t, 2.01, result.ServiceFee)
	assert.Equal(t, 114.57, result.GrandTotal)
}

func TestEstimateTool_Validation(t *testing.T) {
	tool := testEstimateTool(t)

	_, err := tool.Execute(context.Background(), &EstimateInput{
		FlightPrice: -100,
		HotelPrice:  0,
		Currency:    "INR",
	})
	assert.Error(t, err)

	_, err = tool.Execute(context.Background(), &EstimateInput{
		FlightPrice: 100,
		HotelPrice:  0,
		Currency:    "ZZZ",
	})
	assert.Error(t, err)
}
