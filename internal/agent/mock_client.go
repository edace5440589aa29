package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockClient provides canned responses for tests and dry runs.
type MockClient struct {
	responses map[string]string
}

// NewMockClient creates a mock generation client. Its continuity analysis
// response parses as the scene-analysis shape the memory layer expects.
func NewMockClient() *MockClient {
	return &MockClient{
		responses: map[string]string{
			"scene": "INT. LIGHTHOUSE KEEPER'S ROOM - NIGHT\n\n" +
				"The lamp gutters as Elena spreads the letter flat on the table. " +
				"Marcus watches from the doorway, coat still dripping. Neither " +
				"speaks until the wind drops.\n\n" +
				"\"You knew,\" she says. \"All this time.\"\n\n" +
				"He doesn't deny it. Outside, the beam sweeps the empty harbor " +
				"once, twice, and on the third pass she folds the letter away.",
			"continuity": `{
				"plot_points": [
					{
						"description": "Elena confronts Marcus about the letter",
						"significance": "forces the secret into the open",
						"characters_involved": ["Elena", "Marcus"]
					}
				],
				"foreshadowing": [
					{
						"foreshadowing": "the harbor stands empty",
						"payoff": "the fleet's disappearance"
					}
				],
				"thematic_developments": [
					{
						"theme": "trust",
						"development": "first open breach between the leads"
					}
				]
			}`,
		},
	}
}

// Complete returns a canned response matched to the prompt's intent.
func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	promptLower := strings.ToLower(prompt)

	if strings.Contains(promptLower, "narrative continuity") || strings.Contains(promptLower, "analyze") {
		return m.responses["continuity"], nil
	}
	if strings.Contains(promptLower, "narrative structure requirements") || strings.Contains(promptLower, "write") {
		return m.responses["scene"], nil
	}

	return m.responses["scene"], nil
}

// CompleteJSON returns a canned JSON response, validating it parses.
func (m *MockClient) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	response := m.responses["continuity"]

	var test interface{}
	if err := json.Unmarshal([]byte(response), &test); err != nil {
		return "", fmt.Errorf("mock response is not valid JSON: %w", err)
	}

	return response, nil
}
