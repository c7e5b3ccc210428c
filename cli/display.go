// Package cli renders the interactive terminal surface of the agent.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arundhs/travelagent/agents"
)

// ANSI escape sequences. DisableColors blanks them for pipes and --no-color.
var (
	colorCyan   = "\033[96m"
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorRed    = "\033[91m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorReset  = "\033[0m"
)

// DisableColors turns all ANSI styling off.
func DisableColors() {
	colorCyan = ""
	colorGreen = ""
	colorYellow = ""
	colorRed = ""
	colorBold = ""
	colorDim = ""
	colorReset = ""
}

// PrintBanner prints the application header.
func PrintBanner() {
	fmt.Println()
	fmt.Println(colorCyan + "╔══════════════════════════════════════════════════════════════╗" + colorReset)
	fmt.Println(colorCyan + "║                                                              ║" + colorReset)
	fmt.Println(colorCyan + colorBold + "║        TRAVEL AGENT - AI Workflow Orchestrator               ║" + colorReset)
	fmt.Println(colorCyan + "║                                                              ║" + colorReset)
	fmt.Println(colorCyan + "╚══════════════════════════════════════════════════════════════╝" + colorReset)
	fmt.Println()
}

// PrintCapabilities lists what the agent can do.
func PrintCapabilities() {
	fmt.Println("  " + colorBold + "What I can do for you:" + colorReset)
	fmt.Println()
	capabilities := []struct{ title, desc string }{
		{"Search flights", "between any airports worldwide"},
		{"Find hotels", "in cities and near landmarks"},
		{"Plan your trip", "AI-powered itinerary with places to visit"},
		{"Discover attractions", "top sights, food, activities by category"},
		{"Estimate costs", "with detailed breakdowns"},
		{"Book trips", "with safe dry-run preview"},
	}
	for _, c := range capabilities {
		fmt.Printf("    %s%s%s %s- %s%s\n", colorGreen, c.title, colorReset, colorDim, c.desc, colorReset)
	}
	fmt.Println()
}

// PrintCommands prints the in-session command summary.
func PrintCommands() {
	fmt.Println(colorDim + strings.Repeat("─", 64) + colorReset)
	fmt.Printf("  %sCommands:%s  %squit%s/%sexit%s to end  •  %sreset%s for new conversation  •  %shelp%s for tips\n",
		colorDim, colorReset, colorYellow, colorReset, colorYellow, colorReset, colorYellow, colorReset, colorYellow, colorReset)
	fmt.Println(colorDim + strings.Repeat("─", 64) + colorReset)
	fmt.Println()
}

// PrintTips prints usage tips and example queries.
func PrintTips() {
	fmt.Println()
	fmt.Println("  " + colorYellow + colorBold + "Tips for better results:" + colorReset)
	fmt.Println()
	tips := []string{
		"Use airport codes: MAA (Chennai), SIN (Singapore), DXB (Dubai)",
		"Specify dates: 2026-09-15 (YYYY-MM-DD format)",
		"Include passenger count: '2 adults'",
		"Mention preferences: 'economy class', 'near Marina Bay'",
	}
	for _, tip := range tips {
		fmt.Printf("    %s•%s %s\n", colorDim, colorReset, tip)
	}
	fmt.Println()
	fmt.Println("  " + colorCyan + colorBold + "Example queries:" + colorReset)
	examples := []string{
		"Find flights from Chennai to Singapore for 2 adults on 2026-09-01",
		"Search hotels near Marina Bay, Singapore, Sep 1-5",
		"Plan a 5 day trip to Bali with focus on beaches and food",
		"What are the top attractions in Paris?",
	}
	for _, ex := range examples {
		fmt.Printf("    %s→%s %s\n", colorDim, colorReset, ex)
	}
	fmt.Println()
}

// PrintDryRunNotice flags that bookings are simulated.
func PrintDryRunNotice() {
	fmt.Println("  " + colorYellow + "DRY-RUN MODE: Bookings will be simulated only" + colorReset)
	fmt.Println()
}

// PrintGoodbye prints the session farewell.
func PrintGoodbye() {
	fmt.Println()
	fmt.Println("  " + colorCyan + "Goodbye! Safe travels!" + colorReset)
	fmt.Println()
}

// PrintResponse renders the agent's answer with summaries of any flight,
// hotel, itinerary or attraction data the tools returned.
func PrintResponse(resp *agents.Response) {
	fmt.Println()
	if resp.Success {
		fmt.Println("  " + colorGreen + colorBold + "Response:" + colorReset)
	} else {
		fmt.Println("  " + colorRed + colorBold + "Error:" + colorReset)
	}
	fmt.Println("  " + colorDim + strings.Repeat("─", 60) + colorReset)

	if resp.Message != "" {
		fmt.Println()
		for _, line := range strings.Split(resp.Message, "\n") {
			fmt.Printf("  %s\n", line)
		}
		fmt.Println()
	}

	if len(resp.ToolResults) > 0 {
		fmt.Printf("  %sFunction calls: %d%s\n", colorYellow, len(resp.ToolResults), colorReset)
		for i, tr := range resp.ToolResults {
			fmt.Printf("      %s%d.%s %s%s()%s\n", colorDim, i+1, colorReset, colorCyan, tr.Function, colorReset)
		}
	}

	if resp.Error != "" {
		fmt.Println()
		fmt.Printf("  %sError: %s%s\n", colorRed, resp.Error, colorReset)
	}

	for _, tr := range resp.ToolResults {
		printToolSummary(tr)
	}

	printFollowUpTip(resp.ToolResults)

	fmt.Println()
	fmt.Println("  " + colorDim + strings.Repeat("─", 60) + colorReset)
	fmt.Println()
}

// printToolSummary shows the interesting parts of one tool result.
func printToolSummary(tr agents.ToolResult) {
	result := asMap(tr.Result)
	if result == nil {
		return
	}

	if flights, ok := result["flights"].([]interface{}); ok && len(flights) > 0 {
		fmt.Println()
		fmt.Printf("  %sFound %d flight options:%s\n", colorGreen, len(flights), colorReset)
		for i, f := range flights {
			if i >= 3 {
				fmt.Printf("      %s... and %d more%s\n", colorDim, len(flights)-3, colorReset)
				break
			}
			fm := asMap(f)
			airline := nestedString(fm, "airline", "name")
			price := nestedNumber(fm, "price", "total")
			currency := nestedString(fm, "price", "currency")
			fmt.Printf("      %d. %s - %s %.0f\n", i+1, orUnknown(airline), orDefault(currency, "INR"), price)
		}
	}

	if hotelList, ok := result["hotels"].([]interface{}); ok && len(hotelList) > 0 {
		fmt.Println()
		fmt.Printf("  %sFound %d hotel options:%s\n", colorGreen, len(hotelList), colorReset)
		for i, h := range hotelList {
			if i >= 3 {
				fmt.Printf("      %s... and %d more%s\n", colorDim, len(hotelList)-3, colorReset)
				break
			}
			hm := asMap(h)
			name := stringValue(hm["name"])
			price := nestedNumber(hm, "price", "total_from")
			currency := nestedString(hm, "price", "currency")
			rating := numberValue(hm["rating"])
			ratingStr := ""
			if rating > 0 {
				ratingStr = fmt.Sprintf(" (%.1f)", rating)
			}
			fmt.Printf("      %d. %s%s - %s %.0f\n", i+1, orUnknown(name), ratingStr, orDefault(currency, "USD"), price)
		}
	}

	if itinerary := stringValue(result["itinerary"]); itinerary != "" {
		fmt.Println()
		fmt.Println("  " + colorGreen + colorBold + "Trip Itinerary (AI-Generated):" + colorReset)
		fmt.Println()
		printClipped(itinerary, 30)
	}

	if attractions := stringValue(result["attractions"]); attractions != "" {
		fmt.Println()
		fmt.Println("  " + colorGreen + colorBold + "Top Attractions:" + colorReset)
		fmt.Println()
		printClipped(attractions, 20)
	}
}

// printFollowUpTip nudges towards planning after a flight or hotel search.
func printFollowUpTip(toolResults []agents.ToolResult) {
	destination := ""
	for _, tr := range toolResults {
		if tr.Function != "search_flights" && tr.Function != "search_hotels" {
			continue
		}
		result := asMap(tr.Result)
		query := asMap(result["query"])
		if d := nestedString(result, "query", "destination"); d != "" {
			destination = d
		} else if c := stringValue(query["city_code"]); c != "" {
			destination = c
		}
	}
	if destination == "" {
		return
	}
	fmt.Println()
	fmt.Printf("  %sTip:%s Want to know what to do in %s%s%s?\n", colorYellow, colorReset, colorCyan, destination, colorReset)
	fmt.Printf("     Try: %s'Plan a trip to %s' or 'Top attractions in %s'%s\n", colorDim, destination, destination, colorReset)
}

func printClipped(text string, maxLines int) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i >= maxLines {
			fmt.Printf("  %s... (truncated)%s\n", colorDim, colorReset)
			break
		}
		fmt.Printf("  %s\n", line)
	}
}

// asMap converts a tool result value to a generic map. Results arrive either
// as typed structs (native tool calls) or as decoded JSON maps, so normalize
// through a JSON round trip.
func asMap(v interface{}) map[string]interface{} {
	if v == nil {
		return nil
	}
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

func nestedString(m map[string]interface{}, outer, inner string) string {
	return stringValue(asMap(m[outer])[inner])
}

func nestedNumber(m map[string]interface{}, outer, inner string) float64 {
	return numberValue(asMap(m[outer])[inner])
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func numberValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	}
	return 0
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
