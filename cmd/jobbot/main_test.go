package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"job-assistant/internal/assistant"
	"job-assistant/internal/common/config"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/jobsource"
	"job-assistant/internal/nlp/entity"
	"job-assistant/internal/nlp/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssistant(t *testing.T, src jobsource.Source) *assistant.Assistant {
	t.Helper()
	model, err := intent.Train(intent.DefaultTable())
	require.NoError(t, err)
	rec, err := assistant.BuildRecognizer(config.NLPConfig{})
	require.NoError(t, err)
	return assistant.New(model, entity.NewExtractor(rec), src, logger.NewNoOpLogger())
}

func TestChat_LoopAndExit(t *testing.T) {
	src := jobsource.Static{
		{Title: "Python Developer", Company: "Acme", Date: "01 Oct 2026", Link: "https://example.com/1"},
		{Title: "Java Developer", Company: "Beta", Date: "02 Oct 2026"},
	}
	asst := newTestAssistant(t, src)

	in := strings.NewReader("What skills are needed? I know Python\nIn which location\nEXIT\nnever read\n")
	var out bytes.Buffer
	require.NoError(t, chat(context.Background(), asst, in, &out))

	got := out.String()
	assert.Contains(t, got, "You: Bot: Here are some job listings:")
	assert.Contains(t, got, "Title: Python Developer\nCompany: Acme\nDate: 01 Oct 2026\nLink: https://example.com/1\n----------------------\n")
	assert.NotContains(t, got, "Java Developer")
	assert.Contains(t, got, "Bot: Which location are you interested in?\n")
	assert.Equal(t, 3, strings.Count(got, "You: "))
}

func TestChat_EndOfInput(t *testing.T) {
	asst := newTestAssistant(t, jobsource.Static(nil))

	var out bytes.Buffer
	require.NoError(t, chat(context.Background(), asst, strings.NewReader("Find me a job\n"), &out))
	assert.Equal(t, "You: Bot: Sorry, I couldn't find any job listings right now.\nYou: \n", out.String())
}

func TestClassifyCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: error\n"), 0o600))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "classify", "What skills for Python jobs in Kochi?"})
	require.NoError(t, root.Execute())

	var u struct {
		Intent     string     `json:"intent"`
		Confidence float64    `json:"confidence"`
		Entities   entity.Bag `json:"entities"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &u))
	assert.Equal(t, "skills", u.Intent)
	assert.Equal(t, []string{"Kochi"}, u.Entities.Location)
	assert.Equal(t, []string{"Python"}, u.Entities.Skills)
	assert.Greater(t, u.Confidence, 0.0)
}

func TestClassifyCommand_RequiresText(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"classify"})
	assert.Error(t, root.Execute())
}

func TestLoadConfig_ExplicitPathMustExist(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
