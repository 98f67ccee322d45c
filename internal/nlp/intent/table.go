package intent

import (
	"fmt"
	"os"

	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/validation"

	"gopkg.in/yaml.v3"
)

// Label names an intent.
type Label string

const (
	JobSearch Label = "job_search"
	Location  Label = "location"
	Skills    Label = "skills"
)

// Intent is one labelled group of example phrases.
type Intent struct {
	Label    Label    `yaml:"intent" json:"intent"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// Table is the full training set. Train never mutates it.
type Table []Intent

// DefaultTable returns the built-in three intent table. Each call returns a
// fresh copy.
func DefaultTable() Table {
	return Table{
		{Label: JobSearch, Patterns: []string{"I am looking for a job", "Find me a job", "Help me find work"}},
		{Label: Location, Patterns: []string{"Where is the job", "In which location", "Location of the job"}},
		{Label: Skills, Patterns: []string{"What skills are needed", "What skills for this job", "Skills required for the job"}},
	}
}

// Validate checks the structural rules Train relies on.
func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.NewConfigurationError("intent table is empty")
	}
	seen := make(map[Label]struct{}, len(t))
	for i, in := range t {
		if in.Label == "" {
			return errors.NewConfigurationError(fmt.Sprintf("intent #%d has an empty label", i))
		}
		if _, dup := seen[in.Label]; dup {
			return errors.NewConfigurationError(fmt.Sprintf("intent %q is declared twice", in.Label))
		}
		seen[in.Label] = struct{}{}
		if len(in.Patterns) == 0 {
			return errors.NewConfigurationError(fmt.Sprintf("intent %q has no patterns", in.Label))
		}
	}
	if len(seen) < 2 {
		return errors.NewConfigurationError("intent table needs at least two intents")
	}
	return nil
}

// Labels lists the table's labels in declaration order.
func (t Table) Labels() []Label {
	out := make([]Label, len(t))
	for i, in := range t {
		out[i] = in.Label
	}
	return out
}

var tableSchema = validation.MustCompile(`{
  "type": "object",
  "required": ["intents"],
  "properties": {
    "intents": {
      "type": "array",
      "minItems": 2,
      "items": {
        "type": "object",
        "required": ["intent", "patterns"],
        "properties": {
          "intent": {"type": "string", "pattern": "^[a-z][a-z0-9_]*$"},
          "patterns": {
            "type": "array",
            "minItems": 1,
            "items": {"type": "string"}
          }
        }
      }
    }
  }
}`)

type tableFile struct {
	Intents Table `yaml:"intents"`
}

// LoadTable reads a YAML intent table of the form
//
//	intents:
//	  - intent: job_search
//	    patterns: ["Find me a job"]
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("read intent table %s: %v", path, err))
	}
	return ParseTable(data)
}

// ParseTable is LoadTable for in-memory YAML.
func ParseTable(data []byte) (Table, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("parse intent table: %v", err))
	}

	res, err := tableSchema.Validate(raw)
	if err != nil {
		return nil, errors.NewConfigurationError(err.Error())
	}
	if !res.Valid {
		return nil, errors.NewConfigurationError(fmt.Sprintf("intent table does not match schema: %v", res.GetErrorMessages())).
			WithMetadata("violations", res.GetErrorMessages())
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("decode intent table: %v", err))
	}
	if err := file.Intents.Validate(); err != nil {
		return nil, err
	}
	return file.Intents, nil
}
