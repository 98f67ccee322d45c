package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestSchema = `{
  "type": "object",
  "required": ["user_input"],
  "properties": {
    "user_input": {"type": "string", "minLength": 1}
  }
}`

func TestSchema_Validate(t *testing.T) {
	s := MustCompile(requestSchema)

	tests := []struct {
		name     string
		doc      interface{}
		valid    bool
		badField string
	}{
		{"valid", map[string]interface{}{"user_input": "find a job"}, true, ""},
		{"missing field", map[string]interface{}{}, false, "(root)"},
		{"wrong type", map[string]interface{}{"user_input": 42}, false, "user_input"},
		{"empty string", map[string]interface{}{"user_input": ""}, false, "user_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Validate(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.True(t, res.HasErrors(tt.badField), res.GetErrorMessages())
				assert.NotEmpty(t, res.GetErrorMessages())
			}
		})
	}
}

func TestCompile_RejectsBrokenSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)

	assert.Panics(t, func() { MustCompile(`not json`) })
}
