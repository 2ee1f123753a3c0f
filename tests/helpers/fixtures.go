package helpers

import (
	"encoding/json"
)

// TestUser represents a test user fixture
type TestUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Default test fixtures
var (
	DefaultTestUser = TestUser{
		Email:    "test@example.com",
		Password: "test-password-123",
	}

	// Prompts that exercise the different domain detectors
	MathPrompt      = "Solve the equation 3x + 7 = 22 and verify the solution"
	AlgorithmPrompt = "Design an algorithm to find the shortest path in a weighted graph"
	CodePrompt      = "Write a function that deduplicates a slice while preserving order"
	WritingPrompt   = "Write a short essay about the history of the printing press"
	GenericPrompt   = "Help me prepare for tomorrow's meeting"
)

// AllTechniques lists every registered technique id in a sensible chain order
var AllTechniques = []string{
	"role_play",
	"chain_of_thought",
	"few_shot",
	"step_by_step",
	"structured_output",
}

// CreateTestLoginRequest creates a login request payload
func CreateTestLoginRequest(email, password string) map[string]interface{} {
	return map[string]interface{}{
		"email":    email,
		"password": password,
	}
}

// CreateTestEnhanceRequest creates an enhancement request payload
func CreateTestEnhanceRequest(text string, techniques []string) map[string]interface{} {
	return map[string]interface{}{
		"text":       text,
		"techniques": techniques,
	}
}

// CreateTestEnhanceRequestWithOptions creates an enhancement request payload
// with explicit classification and per-technique options
func CreateTestEnhanceRequestWithOptions(text string, techniques []string, intent, complexity string, options map[string]map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"text":       text,
		"techniques": techniques,
		"intent":     intent,
		"complexity": complexity,
		"options":    options,
	}
}

// ToJSON converts a fixture to JSON string
func ToJSON(fixture interface{}) string {
	data, _ := json.Marshal(fixture)
	return string(data)
}

// FromJSON parses JSON string to map
func FromJSON(jsonStr string) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal([]byte(jsonStr), &result)
	return result
}
