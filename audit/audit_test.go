package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reqcontext "github.com/arundhs/travelagent/context"
)

func readRecords(t *testing.T, path string) []Record {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec Record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	return records
}

func TestNewAuditID(t *testing.T) {
	id := NewAuditID()
	assert.Len(t, id, 12)
	assert.Equal(t, "AUD-", id[:4])
	assert.NotEqual(t, id, NewAuditID())
}

func TestNewLogger_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "audit.jsonl")

	logger, err := NewLogger(path)
	require.NoError(t, err)

	logger.LogSuccess(context.Background(), "search_flights", nil, nil)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLogSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := NewLogger(path)
	require.NoError(t, err)

	ctx := reqcontext.WithRequestID(context.Background(), "req-123")
	auditID := logger.LogSuccess(ctx, "search_flights",
		map[string]interface{}{"origin": "MAA"},
		map[string]interface{}{"count": 5})

	records := readRecords(t, path)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, auditID, rec.AuditID)
	assert.Equal(t, "req-123", rec.RequestID)
	assert.Equal(t, "search_flights", rec.Function)
	assert.True(t, rec.Success)
	assert.Empty(t, rec.Error)
	assert.NotEmpty(t, rec.Timestamp)
}

func TestLogFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := NewLogger(path)
	require.NoError(t, err)

	logger.LogFailure(context.Background(), "book_flight", nil, fmt.Errorf("offer expired"))

	records := readRecords(t, path)
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
	assert.Equal(t, "offer expired", records[0].Error)
	assert.Nil(t, records[0].Result)
}

func TestLogDecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := NewLogger(path)
	require.NoError(t, err)

	logger.LogDecision(context.Background(), "flights to SIN", "found 3 options", []string{"search_flights"})

	records := readRecords(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, "_agent_decision", records[0].Function)

	params := records[0].Parameters.(map[string]interface{})
	assert.Equal(t, "flights to SIN", params["user_input"])
}

func TestLog_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := NewLogger(path)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		logger.LogSuccess(context.Background(), "resolve_date", nil, nil)
	}

	records := readRecords(t, path)
	assert.Len(t, records, 5)
}
