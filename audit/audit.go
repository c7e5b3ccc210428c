// Package audit appends a JSON record to a log file for every tool
// execution and agent decision, so booking actions stay traceable.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	reqcontext "github.com/arundhs/travelagent/context"
	"github.com/arundhs/travelagent/log"
)

// Record is a single audit log line.
type Record struct {
	AuditID    string      `json:"audit_id"`
	Timestamp  string      `json:"timestamp"`
	RequestID  string      `json:"request_id,omitempty"`
	Function   string      `json:"function"`
	Parameters interface{} `json:"parameters"`
	Result     interface{} `json:"result"`
	Success    bool        `json:"success"`
	Error      string      `json:"error,omitempty"`
}

// Logger writes append-only JSONL audit records.
type Logger struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewLogger creates the audit logger, creating the log directory if needed.
func NewLogger(path string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create audit log directory: %w", err)
		}
	}
	return &Logger{path: path, now: time.Now}, nil
}

// NewAuditID generates a unique audit record id.
func NewAuditID() string {
	return "AUD-" + strings.ToUpper(uuid.New().String()[:8])
}

// Log appends one record and returns its audit id. A failed result is
// recorded as nil with the error message alongside it.
func (l *Logger) Log(ctx context.Context, function string, parameters, result interface{}, success bool, errMsg string) string {
	auditID := NewAuditID()

	rec := Record{
		AuditID:    auditID,
		Timestamp:  l.now().UTC().Format(time.RFC3339),
		RequestID:  reqcontext.RequestIDFromContext(ctx),
		Function:   function,
		Parameters: parameters,
		Success:    success,
		Error:      errMsg,
	}
	if success {
		rec.Result = result
	}

	line, err := json.Marshal(rec)
	if err != nil {
		log.Errorf(ctx, "audit: failed to marshal record for %s: %v", function, err)
		return auditID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Errorf(ctx, "audit: failed to open %s: %v", l.path, err)
		return auditID
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		log.Errorf(ctx, "audit: failed to write record: %v", err)
	}

	return auditID
}

// LogSuccess records a successful call.
func (l *Logger) LogSuccess(ctx context.Context, function string, parameters, result interface{}) string {
	return l.Log(ctx, function, parameters, result, true, "")
}

// LogFailure records a failed call.
func (l *Logger) LogFailure(ctx context.Context, function string, parameters interface{}, err error) string {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return l.Log(ctx, function, parameters, nil, false, msg)
}

// LogDecision records an agent routing decision (which tools it picked).
func (l *Logger) LogDecision(ctx context.Context, userInput, decision string, toolsSelected []string) string {
	return l.Log(ctx, "_agent_decision", map[string]interface{}{
		"user_input":     userInput,
		"tools_selected": toolsSelected,
	}, map[string]interface{}{
		"decision": decision,
	}, true, "")
}
