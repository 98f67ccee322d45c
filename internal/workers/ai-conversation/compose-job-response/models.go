// internal/workers/ai-conversation/compose-job-response/models.go
package composejobresponse

import (
	"job-assistant/internal/models"
	"job-assistant/internal/responder"
)

// Input gathers the variables written by parse-user-intent and
// query-job-listings.
type Input struct {
	UserInput string             `json:"userInput"`
	Intent    string             `json:"intent"`
	Entities  Entities           `json:"entities"`
	Jobs      []models.JobRecord `json:"jobs"`
}

type Entities struct {
	Location []string `json:"location"`
	Skills   []string `json:"skills"`
}

// Output carries the reply in its HTTP wire form plus a printable rendering.
type Output struct {
	Reply     responder.Response `json:"reply"`
	ReplyKind string             `json:"replyKind"`
	ReplyText string             `json:"replyText"`
}
