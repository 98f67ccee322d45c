// Package responder turns a classified request into a user-facing answer.
// Compose is pure: it performs no I/O and does not depend on how jobs were
// fetched.
package responder

import (
	"encoding/json"
	"fmt"
	"strings"

	"job-assistant/internal/models"
	"job-assistant/internal/nlp/entity"
	"job-assistant/internal/nlp/intent"
	"job-assistant/internal/nlp/normalize"
)

const (
	MsgNoListings    = "Sorry, I couldn't find any job listings right now."
	MsgNoMatchFormat = "Sorry, no jobs found matching '%s'."
	MsgAskLocation   = "Which location are you interested in?"
	MsgAskSkills     = "What skills do you have? Please specify."
	MsgNotUnderstood = "Sorry, I could not understand your query."
	listingHeader    = "Here are some job listings:"
	listingSeparator = "----------------------"
)

// Kind says which half of a Response is set.
type Kind string

const (
	KindJobs    Kind = "jobs"
	KindMessage Kind = "message"
)

// Response is either a job list (possibly empty) or a message, never both.
type Response struct {
	Kind    Kind
	Jobs    []models.JobRecord
	Message string
}

func JobList(jobs []models.JobRecord) Response {
	if jobs == nil {
		jobs = []models.JobRecord{}
	}
	return Response{Kind: KindJobs, Jobs: jobs}
}

func Message(msg string) Response {
	return Response{Kind: KindMessage, Message: msg}
}

// MarshalJSON emits {"jobs": [...]} or {"response": "..."}.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Kind == KindJobs {
		jobs := r.Jobs
		if jobs == nil {
			jobs = []models.JobRecord{}
		}
		return json.Marshal(struct {
			Jobs []models.JobRecord `json:"jobs"`
		}{jobs})
	}
	return json.Marshal(struct {
		Response string `json:"response"`
	}{r.Message})
}

// UnmarshalJSON accepts either wire form.
func (r *Response) UnmarshalJSON(data []byte) error {
	var wire struct {
		Jobs     *[]models.JobRecord `json:"jobs"`
		Response *string             `json:"response"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch {
	case wire.Jobs != nil && wire.Response != nil:
		return fmt.Errorf("response has both jobs and a message")
	case wire.Jobs != nil:
		*r = JobList(*wire.Jobs)
	case wire.Response != nil:
		*r = Message(*wire.Response)
	default:
		return fmt.Errorf("response has neither jobs nor a message")
	}
	return nil
}

// Compose dispatches on the intent label. Every comparison is a
// case-insensitive substring test.
func Compose(label intent.Label, rawInput string, bag entity.Bag, jobs []models.JobRecord) Response {
	switch label {
	case intent.JobSearch:
		if len(jobs) == 0 {
			return Message(MsgNoListings)
		}
		keyword := normalize.Lower(rawInput)
		matched := filter(jobs, func(j models.JobRecord) bool {
			return strings.Contains(normalize.Lower(j.Title), keyword)
		})
		if len(matched) == 0 {
			return Message(fmt.Sprintf(MsgNoMatchFormat, keyword))
		}
		return JobList(matched)

	case intent.Location:
		if len(bag.Location) == 0 {
			return Message(MsgAskLocation)
		}
		if len(jobs) == 0 {
			return Message(MsgNoListings)
		}
		place := normalize.Lower(bag.Location[0])
		return JobList(filter(jobs, func(j models.JobRecord) bool {
			return strings.Contains(normalize.Lower(j.Title), place) ||
				(j.Location != "" && strings.Contains(normalize.Lower(j.Location), place))
		}))

	case intent.Skills:
		if len(bag.Skills) == 0 {
			return Message(MsgAskSkills)
		}
		if len(jobs) == 0 {
			return Message(MsgNoListings)
		}
		skills := make([]string, len(bag.Skills))
		for i, s := range bag.Skills {
			skills[i] = normalize.Lower(s)
		}
		return JobList(filter(jobs, func(j models.JobRecord) bool {
			title := normalize.Lower(j.Title)
			for _, s := range skills {
				if strings.Contains(title, s) {
					return true
				}
			}
			return false
		}))
	}

	return Message(MsgNotUnderstood)
}

func filter(jobs []models.JobRecord, keep func(models.JobRecord) bool) []models.JobRecord {
	out := []models.JobRecord{}
	for _, j := range jobs {
		if keep(j) {
			out = append(out, j)
		}
	}
	return out
}

// Render formats a response for the interactive loop.
func Render(resp Response) string {
	if resp.Kind != KindJobs {
		return resp.Message
	}
	if len(resp.Jobs) == 0 {
		return "No job listings matched your query."
	}

	var b strings.Builder
	b.WriteString(listingHeader)
	b.WriteString("\n\n")
	for _, j := range resp.Jobs {
		fmt.Fprintf(&b, "Title: %s\n", j.Title)
		fmt.Fprintf(&b, "Company: %s\n", j.Company)
		fmt.Fprintf(&b, "Date: %s\n", j.Date)
		if j.Location != "" {
			fmt.Fprintf(&b, "Location: %s\n", j.Location)
		}
		if j.HasLink() {
			fmt.Fprintf(&b, "Link: %s\n", j.Link)
		}
		b.WriteString(listingSeparator)
		b.WriteString("\n")
	}
	return b.String()
}
