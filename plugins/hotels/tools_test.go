package hotels

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arundhs/travelagent/audit"
)

func testAuditLogger(t *testing.T) *audit.Logger {
	logger, err := audit.NewLogger(filepath.Join(t.TempDir(), "audit.jsonl"))
	require.NoError(t, err)
	return logger
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestSearchTool_MockFallback(t *testing.T) {
	tool := NewSearchTool(NewClient("", nil, 5), testAuditLogger(t), nil, nil)

	result, err := tool.Execute(context.Background(), &SearchInput{
		CityCode: "SIN",
		CheckIn:  futureDate(10),
		CheckOut: futureDate(14),
		Adults:   2,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "mock", result.Source)
	assert.Contains(t, result.SearchID, "HSRCH-")
	assert.Equal(t, result.ResultsCount, len(result.Hotels))
	assert.NotEmpty(t, result.Hotels)
	for _, h := range result.Hotels {
		assert.Equal(t, 4, h.Nights)
	}
}

func TestSearchTool_AmenitiesInQuery(t *testing.T) {
	auditPath := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := audit.NewLogger(auditPath)
	require.NoError(t, err)

	tool := NewSearchTool(NewClient("", nil, 5), logger, nil, nil)

	result, err := tool.Execute(context.Background(), &SearchInput{
		CityCode:  "SIN",
		CheckIn:   futureDate(10),
		CheckOut:  futureDate(12),
		Adults:    2,
		Amenities: []string{"WIFI", "POOL"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"WIFI", "POOL"}, result.Query.Amenities)

	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amenities":["WIFI","POOL"]`)
}

func TestSearchTool_EmptyUpstreamAuditReason(t *testing.T) {
	auditPath := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := audit.NewLogger(auditPath)
	require.NoError(t, err)

	// Upstream answers 200 with no properties; the fallback record should
	// say so instead of carrying a nil error.
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties": []}`))
	})
	tool := NewSearchTool(c, logger, nil, nil)

	result, err := tool.Execute(context.Background(), &SearchInput{
		CityCode: "SIN",
		CheckIn:  futureDate(10),
		CheckOut: futureDate(12),
		Adults:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, "mock", result.Source)

	data, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"reason":"no offers returned"`)
	assert.NotContains(t, string(data), "<nil>")
}

func TestSearchTool_Validation(t *testing.T) {
	tool := NewSearchTool(nil, testAuditLogger(t), nil, nil)

	cases := []struct {
		name  string
		input *SearchInput
	}{
		{"missing location", &SearchInput{CheckIn: futureDate(10), CheckOut: futureDate(12), Adults: 1}},
		{"bad check-in", &SearchInput{CityCode: "SIN", CheckIn: "soon", CheckOut: futureDate(12), Adults: 1}},
		{"past check-in", &SearchInput{CityCode: "SIN", CheckIn: "2020-01-01", CheckOut: futureDate(12), Adults: 1}},
		{"check-out before check-in", &SearchInput{CityCode: "SIN", CheckIn: futureDate(12), CheckOut: futureDate(10), Adults: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tool.Execute(context.Background(), tc.input)
			assert.Error(t, err)
		})
	}
}

func TestAvailabilityTool(t *testing.T) {
	tool := NewAvailabilityTool(testAuditLogger(t), nil, nil)

	result, err := tool.Execute(context.Background(), &AvailabilityInput{
		HotelID:  "HTL-MBS001",
		CheckIn:  futureDate(10),
		CheckOut: futureDate(13),
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "HTL-MBS001", result.HotelID)
	if result.Available {
		assert.Equal(t, 3, result.Nights)
		assert.Equal(t, 1, result.RoomsRequested)
	}
}

func TestAvailabilityTool_RequiresHotelID(t *testing.T) {
	tool := NewAvailabilityTool(testAuditLogger(t), nil, nil)

	_, err := tool.Execute(context.Background(), &AvailabilityInput{
		CheckIn:  futureDate(10),
		CheckOut: futureDate(12),
	})
	assert.Error(t, err)
}

func TestBookingTool_DryRun(t *testing.T) {
	tool := NewBookingTool(testAuditLogger(t), false, nil, nil)

	result, err := tool.Execute(context.Background(), &BookingInput{
		HotelID:  "HTL-MBS001",
		RoomType: "Deluxe",
		CheckIn:  futureDate(10),
		CheckOut: futureDate(14),
		Guests:   []Guest{{FirstName: "Asha", LastName: "Rao"}},
		DryRun:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "DRY_RUN", result.Status)
	require.NotNil(t, result.Preview)
	assert.Contains(t, result.Preview.BookingReference, "HBK-")
	assert.Equal(t, "Deluxe", result.Preview.RoomType)
	assert.Equal(t, 4, result.Preview.Nights)
	assert.Equal(t, []string{"Asha Rao"}, result.Preview.GuestNames)
	assert.Empty(t, result.ConfirmationNumber)
	assert.NotEmpty(t, result.AuditLogID)
}

func TestBookingTool_Confirmed(t *testing.T) {
	tool := NewBookingTool(testAuditLogger(t), false, nil, nil)

	result, err := tool.Execute(context.Background(), &BookingInput{
		HotelID:  "HTL-MBS001",
		CheckIn:  futureDate(10),
		CheckOut: futureDate(12),
		Guests: []Guest{
			{FirstName: "Asha", LastName: "Rao"},
			{FirstName: "Vikram", LastName: "Rao"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "CONFIRMED", result.Status)
	assert.Contains(t, result.BookingReference, "HBK-")
	assert.Contains(t, result.ConfirmationNumber, "CONF-")
	assert.Equal(t, "Standard", result.RoomType)
	require.Len(t, result.Guests, 2)
	assert.True(t, result.Guests[0].PrimaryGuest)
	assert.False(t, result.Guests[1].PrimaryGuest)
	assert.True(t, result.ConfirmationEmailSent)
}

func TestBookingTool_ForceDryRun(t *testing.T) {
	tool := NewBookingTool(testAuditLogger(t), true, nil, nil)

	result, err := tool.Execute(context.Background(), &BookingInput{
		HotelID:  "HTL-MBS001",
		CheckIn:  futureDate(10),
		CheckOut: futureDate(12),
		Guests:   []Guest{{FirstName: "Asha", LastName: "Rao"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "DRY_RUN", result.Status)
	assert.NotNil(t, result.Preview)
}

func TestBookingTool_Validation(t *testing.T) {
	tool := NewBookingTool(testAuditLogger(t), false, nil, nil)

	_, err := tool.Execute(context.Background(), &BookingInput{
		CheckIn:  futureDate(10),
		CheckOut: futureDate(12),
		Guests:   []Guest{{FirstName: "A", LastName: "B"}},
	})
	assert.Error(t, err)

	_, err = tool.Execute(context.Background(), &BookingInput{
		HotelID:  "HTL-X",
		CheckIn:  futureDate(10),
		CheckOut: futureDate(12),
	})
	assert.Error(t, err)
}
