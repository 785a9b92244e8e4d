package a2a

import "strings"

const (
	AgentCardPath = "/.well-known/agent.json"
	EndpointPath  = "/a2a/twin"
)

type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	URL                string            `json:"url"`
	Version            string            `json:"version"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes"`
	DefaultOutputModes []string          `json:"defaultOutputModes"`
	Skills             []AgentSkill      `json:"skills"`
}

type AgentCapabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

// NewAgentCard describes the agent served under baseURL.
func NewAgentCard(baseURL, version string) AgentCard {
	return AgentCard{
		Name:        "Digital Twin Agent",
		Description: "Builds a demographic digital twin from a plain-language description of a person and compares it with US Census statistics for their area.",
		URL:         strings.TrimRight(baseURL, "/") + EndpointPath,
		Version:     version,
		Capabilities: AgentCapabilities{
			StateTransitionHistory: true,
		},
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain", "application/json"},
		Skills: []AgentSkill{
			{
				ID:          "digital-twin-report",
				Name:        "Digital twin report",
				Description: "Extracts age, income, location, education and marital status from text, then reports census comparisons, lifestyle traits and a spending breakdown.",
				Tags:        []string{"demographics", "census", "persona", "personal finance"},
				Examples: []string{
					"A 34 year old married teacher in Ohio earning $58,000",
					"Single software engineer, 27, living in Austin, TX with a bachelor's degree making 120k",
				},
			},
		},
	}
}
