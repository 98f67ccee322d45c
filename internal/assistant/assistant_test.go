package assistant

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"job-assistant/internal/common/config"
	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/jobsource"
	"job-assistant/internal/models"
	"job-assistant/internal/nlp/entity"
	"job-assistant/internal/nlp/intent"
	"job-assistant/internal/responder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	jobs  []models.JobRecord
	calls atomic.Int32
}

func (c *countingSource) FetchJobs(context.Context) []models.JobRecord {
	c.calls.Add(1)
	return append([]models.JobRecord(nil), c.jobs...)
}

func newAssistant(t *testing.T, src jobsource.Source) *Assistant {
	t.Helper()
	model, err := intent.Train(intent.DefaultTable())
	require.NoError(t, err)
	rec, err := BuildRecognizer(config.NLPConfig{})
	require.NoError(t, err)
	return New(model, entity.NewExtractor(rec), src, logger.NewTestLogger(t))
}

var listings = []models.JobRecord{
	{Title: "Senior Python Engineer", Company: "A", Date: "d"},
	{Title: "Java Developer - Kochi", Company: "B", Date: "d"},
	{Title: "Junior Python Engineer", Company: "C", Date: "d"},
}

func TestAnswer_SkillsQuery(t *testing.T) {
	src := &countingSource{jobs: listings}
	a := newAssistant(t, src)

	resp := a.Answer(context.Background(), "What skills are needed? I know Python")
	require.Equal(t, responder.KindJobs, resp.Kind)
	assert.Equal(t, []models.JobRecord{listings[0], listings[2]}, resp.Jobs)
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestAnswer_LocationQuery(t *testing.T) {
	a := newAssistant(t, &countingSource{jobs: listings})

	resp := a.Answer(context.Background(), "Which location? Kochi")
	assert.Equal(t, responder.JobList([]models.JobRecord{listings[1]}), resp)

	resp = a.Answer(context.Background(), "In which location")
	assert.Equal(t, responder.Message(responder.MsgAskLocation), resp)
}

func TestAnswer_JobSearchQuery(t *testing.T) {
	a := newAssistant(t, &countingSource{jobs: listings})

	resp := a.Answer(context.Background(), "Find me a job")
	assert.Equal(t, responder.Message("Sorry, no jobs found matching 'find me a job'."), resp)
}

func TestAnswer_EmptySourceFallsBackToMessage(t *testing.T) {
	a := newAssistant(t, jobsource.Static(nil))

	for _, q := range []string{"Find me a job", "Skills required for the job: Java", "Location of the job: Kochi"} {
		assert.Equal(t, responder.Message(responder.MsgNoListings), a.Answer(context.Background(), q), q)
	}
}

func TestAnswer_EmptyInputIsNotRejected(t *testing.T) {
	src := &countingSource{jobs: listings}
	a := newAssistant(t, src)

	// Empty text classifies as job_search and matches every title.
	resp := a.Answer(context.Background(), "")
	assert.Equal(t, responder.JobList(listings), resp)
}

func TestAnswer_UnknownIntentSkipsFetch(t *testing.T) {
	model, err := intent.Train(intent.Table{
		{Label: "greeting", Patterns: []string{"hello there"}},
		{Label: "farewell", Patterns: []string{"goodbye friend"}},
	})
	require.NoError(t, err)

	src := &countingSource{jobs: listings}
	a := New(model, entity.NewExtractor(nil), src, logger.NewTestLogger(t))

	assert.Equal(t, responder.Message(responder.MsgNotUnderstood), a.Answer(context.Background(), "hello"))
	assert.EqualValues(t, 0, src.calls.Load())
}

func TestUnderstand(t *testing.T) {
	a := newAssistant(t, jobsource.Static(nil))

	u := a.Understand("What skills for Python jobs in Kochi?")
	assert.Equal(t, intent.Skills, u.Intent)
	assert.Greater(t, u.Confidence, 0.0)
	assert.Equal(t, []string{"Kochi"}, u.Entities.Location)
	assert.Equal(t, []string{"Python"}, u.Entities.Skills)
}

func TestTrainModel(t *testing.T) {
	log := logger.NewTestLogger(t)

	model, err := TrainModel(config.NLPConfig{}, log)
	require.NoError(t, err)
	assert.Equal(t, intent.Skills, model.Classify("What skills are needed"))

	path := filepath.Join(t.TempDir(), "intents.yaml")
	require.NoError(t, os.WriteFile(path, []byte("intents:\n  - intent: only\n    patterns: [x]\n"), 0o600))
	_, err = TrainModel(config.NLPConfig{IntentsPath: path}, log)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigurationInvalid))
}

func TestBuildRecognizer_MissingGazetteer(t *testing.T) {
	_, err := BuildRecognizer(config.NLPConfig{GazetteerPath: filepath.Join(t.TempDir(), "none.yaml")})
	assert.Error(t, err)
}
