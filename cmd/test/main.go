package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

const sampleProfile = `{
  "age": 34,
  "income": 85000,
  "location": {"state": "CA", "city": "San Diego", "zipCode": ""},
  "education": "Bachelor's Degree",
  "occupation": "Software Engineer",
  "householdSize": 2,
  "maritalStatus": "Married"
}`

const sampleDescription = "A 34 year old married software engineer in California earning $85,000 with a bachelor's degree"

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, census, validate, persona, twin, a2a, custom")
	text := flag.String("text", "", "Description of a person (for custom test)")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Digital Twin Agent - Smoke Tests")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	tests := map[string]func() bool{
		"health":     client.testHealthCheck,
		"agent-card": client.testAgentCard,
		"census":     client.testCensus,
		"validate":   client.testValidate,
		"persona":    client.testPersona,
		"twin":       client.testTwinReport,
		"a2a":        func() bool { return client.testAgentTask(sampleDescription) },
	}

	switch *testType {
	case "all":
		client.runAllTests()
	case "custom":
		if *text == "" {
			printError("A description is required for the custom test. Use -text flag")
			os.Exit(1)
		}
		if !client.testAgentTask(*text) {
			os.Exit(1)
		}
	default:
		fn, ok := tests[*testType]
		if !ok {
			printError(fmt.Sprintf("Unknown test type: %s", *testType))
			fmt.Println("\nAvailable tests: all, health, agent-card, census, validate, persona, twin, a2a, custom")
			os.Exit(1)
		}
		if !fn() {
			os.Exit(1)
		}
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Census", tc.testCensus},
		{"Validate", tc.testValidate},
		{"Persona", tc.testPersona},
		{"Twin Report", tc.testTwinReport},
		{"Agent Task", func() bool { return tc.testAgentTask(sampleDescription) }},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

// call sends a request and returns the body when the status is 200.
func (tc *TestClient) call(method, path, body string) ([]byte, bool) {
	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		printError(fmt.Sprintf("Invalid request: %v", err))
		return nil, false
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return nil, false
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(data))
		return nil, false
	}
	return data, true
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	body, ok := tc.call(http.MethodGet, "/health", "")
	if !ok {
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	body, ok := tc.call(http.MethodGet, "/.well-known/agent.json", "")
	if !ok {
		return false
	}

	var agentCard map[string]any
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	for _, field := range []string{"name", "description", "url", "version", "capabilities", "skills"} {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testCensus() bool {
	printTestHeader("Testing Census Endpoint")

	body, ok := tc.call(http.MethodGet, "/api/census?state=CA", "")
	if !ok {
		return false
	}

	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) < 2 {
		printError("Expected a header row and a data row")
		return false
	}

	printSuccess(fmt.Sprintf("Census returned %d columns for %s", len(rows[0]), rows[1][0]))
	return true
}

func (tc *TestClient) testValidate() bool {
	printTestHeader("Testing Profile Validation")

	body, ok := tc.call(http.MethodPost, "/api/validate", sampleProfile)
	if !ok {
		return false
	}

	var set map[string]any
	if err := json.Unmarshal(body, &set); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if available, _ := set["available"].(bool); !available {
		printError("Census comparison was not available")
		printJSON(body)
		return false
	}

	printSuccess("Profile compared with census baseline")
	printJSON(body)
	return true
}

func (tc *TestClient) testPersona() bool {
	printTestHeader("Testing Persona Synthesis")

	body, ok := tc.call(http.MethodPost, "/api/persona", sampleProfile)
	if !ok {
		return false
	}

	var traits struct {
		SpendingHabits []map[string]any `json:"spendingHabits"`
	}
	if err := json.Unmarshal(body, &traits); err != nil || len(traits.SpendingHabits) != 7 {
		printError("Expected seven spending categories")
		return false
	}

	printSuccess("Persona synthesized")
	printJSON(body)
	return true
}

func (tc *TestClient) testTwinReport() bool {
	printTestHeader("Testing Twin Report")

	body, ok := tc.call(http.MethodPost, "/api/twin", sampleProfile)
	if !ok {
		return false
	}

	var report map[string]any
	if err := json.Unmarshal(body, &report); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	for _, field := range []string{"profile", "insights", "persona"} {
		if _, ok := report[field]; !ok {
			printError(fmt.Sprintf("Missing report field: %s", field))
			return false
		}
	}

	printSuccess("Twin report built")
	if summary, _ := report["summary"].(string); summary != "" {
		fmt.Printf("\n%sSummary:%s\n%s\n", colorGreen, colorReset, summary)
	}
	return true
}

func (tc *TestClient) testAgentTask(description string) bool {
	printTestHeader("Testing Agent Task")
	fmt.Printf("%sDescription:%s %s\n\n", colorCyan, colorReset, description)

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind": "message",
				"role": "user",
				"parts": []map[string]any{
					{"kind": "text", "text": description},
				},
			},
			"configuration": map[string]any{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	jsonData, _ := json.MarshalIndent(request, "", "  ")
	fmt.Printf("%sRequest:%s\n", colorYellow, colorReset)
	fmt.Println(string(jsonData))
	fmt.Println()

	body, ok := tc.call(http.MethodPost, "/a2a/twin", string(jsonData))
	if !ok {
		return false
	}

	var response struct {
		Result *struct {
			Status struct {
				State   string `json:"state"`
				Message *struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
			Artifacts []json.RawMessage `json:"artifacts"`
		} `json:"result"`
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	if len(response.Error) > 0 {
		printError("Request returned an error")
		printJSON(response.Error)
		return false
	}
	if response.Result == nil {
		printError("Invalid result format")
		return false
	}
	if state := response.Result.Status.State; state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		return false
	}

	printSuccess("Digital twin built successfully")

	if msg := response.Result.Status.Message; msg != nil {
		fmt.Printf("\n%sReport:%s\n", colorGreen, colorReset)
		fmt.Println(strings.Repeat("=", 80))
		for _, part := range msg.Parts {
			fmt.Println(part.Text)
		}
		fmt.Println(strings.Repeat("=", 80))
	}

	fmt.Printf("\n%sArtifacts:%s %d\n", colorPurple, colorReset, len(response.Result.Artifacts))
	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
