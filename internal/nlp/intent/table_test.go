package intent

import (
	"os"
	"path/filepath"
	"testing"

	"job-assistant/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intents.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
intents:
  - intent: job_search
    patterns: ["Find me a job", "Help me find work"]
  - intent: salary
    patterns: ["How much does it pay", "What is the salary"]
`), 0o600))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []Label{JobSearch, "salary"}, table.Labels())

	model, err := Train(table)
	require.NoError(t, err)
	assert.Equal(t, Label("salary"), model.Classify("salary please"))
}

func TestParseTable_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "intents: [unclosed"},
		{"missing intents key", "labels: []"},
		{"missing patterns", "intents:\n  - intent: a\n  - intent: b\n    patterns: [x]\n"},
		{"uppercase label", "intents:\n  - intent: Search\n    patterns: [x]\n  - intent: b\n    patterns: [y]\n"},
		{"one intent", "intents:\n  - intent: a\n    patterns: [x]\n"},
		{"duplicate label", "intents:\n  - intent: a\n    patterns: [x]\n  - intent: a\n    patterns: [y]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeConfigurationInvalid))
		})
	}
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigurationInvalid))
}

func TestLoadTable_ShippedFileMatchesBuiltin(t *testing.T) {
	table, err := LoadTable(filepath.Join("..", "..", "..", "configs", "intents.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTable(), table)
}
