// internal/workers/ai-conversation/parse-user-intent/models.go
package parseuserintent

type Input struct {
	UserInput string `json:"userInput"`
}

type Output struct {
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   Entities `json:"entities"`
}

// Entities mirrors the location and skills the recognizer found.
type Entities struct {
	Location []string `json:"location"`
	Skills   []string `json:"skills"`
}
