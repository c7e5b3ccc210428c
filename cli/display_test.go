package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arundhs/travelagent/agents"
)

func TestAsMap(t *testing.T) {
	assert.Nil(t, asMap(nil))
	assert.Nil(t, asMap("plain string"))

	m := asMap(map[string]interface{}{"a": 1})
	assert.Equal(t, 1, m["a"])

	type payload struct {
		Name string `json:"name"`
	}
	m = asMap(payload{Name: "x"})
	assert.Equal(t, "x", m["name"])
}

func TestNestedAccessors(t *testing.T) {
	m := map[string]interface{}{
		"price": map[string]interface{}{
			"total":    float64(15000),
			"currency": "INR",
		},
	}

	assert.Equal(t, float64(15000), nestedNumber(m, "price", "total"))
	assert.Equal(t, "INR", nestedString(m, "price", "currency"))
	assert.Equal(t, float64(0), nestedNumber(m, "missing", "total"))
	assert.Equal(t, "", nestedString(m, "price", "missing"))
}

func TestNumberValue(t *testing.T) {
	assert.Equal(t, 2.5, numberValue(2.5))
	assert.Equal(t, 3.0, numberValue(3))
	assert.Equal(t, 0.0, numberValue("nan"))
	assert.Equal(t, 0.0, numberValue(nil))
}

func TestPrintResponse_DoesNotPanic(t *testing.T) {
	DisableColors()

	PrintResponse(&agents.Response{
		Success: true,
		Message: "Found flights",
		ToolResults: []agents.ToolResult{
			{
				Function: "search_flights",
				Result: map[string]interface{}{
					"query": map[string]interface{}{"destination": "SIN"},
					"flights": []interface{}{
						map[string]interface{}{
							"airline": map[string]interface{}{"name": "IndiGo"},
							"price":   map[string]interface{}{"total": float64(18000), "currency": "INR"},
						},
					},
				},
			},
		},
	})

	PrintResponse(&agents.Response{Success: false, Error: "something broke"})
}
