package responder

import (
	"encoding/json"
	"testing"

	"job-assistant/internal/models"
	"job-assistant/internal/nlp/entity"
	"job-assistant/internal/nlp/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bag(locations, skills []string) entity.Bag {
	if locations == nil {
		locations = []string{}
	}
	if skills == nil {
		skills = []string{}
	}
	return entity.Bag{Location: locations, Skills: skills}
}

func titles(titles ...string) []models.JobRecord {
	jobs := make([]models.JobRecord, len(titles))
	for i, t := range titles {
		jobs[i] = models.JobRecord{Title: t, Company: "Co", Date: "today"}
	}
	return jobs
}

func TestCompose_EmptyJobListGivesMessage(t *testing.T) {
	for _, label := range []intent.Label{intent.JobSearch, intent.Location, intent.Skills} {
		t.Run(string(label), func(t *testing.T) {
			resp := Compose(label, "python jobs in Kochi", bag([]string{"Kochi"}, []string{"Python"}), nil)
			assert.Equal(t, Message(MsgNoListings), resp)
		})
	}
}

func TestCompose_JobSearch(t *testing.T) {
	jobs := titles("Senior Python Engineer", "Designer", "Junior Python Engineer")

	t.Run("whole input as keyword, order kept", func(t *testing.T) {
		resp := Compose(intent.JobSearch, "PYTHON", bag(nil, nil), jobs)
		require.Equal(t, KindJobs, resp.Kind)
		assert.Equal(t, []models.JobRecord{jobs[0], jobs[2]}, resp.Jobs)
	})

	t.Run("no match reports the lowercased keyword", func(t *testing.T) {
		resp := Compose(intent.JobSearch, "Find me a Rust job", bag(nil, nil), jobs)
		assert.Equal(t, Message("Sorry, no jobs found matching 'find me a rust job'."), resp)
	})

	t.Run("empty input matches everything", func(t *testing.T) {
		resp := Compose(intent.JobSearch, "", bag(nil, nil), jobs)
		assert.Equal(t, jobs, resp.Jobs)
	})
}

func TestCompose_Location(t *testing.T) {
	jobs := []models.JobRecord{
		{Title: "Java Developer - Kochi", Company: "A", Date: "d"},
		{Title: "Tester", Company: "B", Date: "d", Location: "Kakkanad, Kochi"},
		{Title: "Designer", Company: "C", Date: "d", Location: "Chennai"},
	}

	t.Run("no location asks", func(t *testing.T) {
		assert.Equal(t, Message(MsgAskLocation), Compose(intent.Location, "where?", bag(nil, []string{"Java"}), jobs))
		assert.Equal(t, Message(MsgAskLocation), Compose(intent.Location, "where?", bag(nil, nil), nil))
	})

	t.Run("first location matches title or location field", func(t *testing.T) {
		resp := Compose(intent.Location, "jobs in kochi or chennai", bag([]string{"KOCHI", "Chennai"}, nil), jobs)
		assert.Equal(t, JobList(jobs[:2]), resp)
	})

	t.Run("no match is an empty job list", func(t *testing.T) {
		resp := Compose(intent.Location, "jobs in Pune", bag([]string{"Pune"}, nil), jobs)
		assert.Equal(t, KindJobs, resp.Kind)
		assert.NotNil(t, resp.Jobs)
		assert.Empty(t, resp.Jobs)
	})
}

func TestCompose_Skills(t *testing.T) {
	t.Run("any skill matches", func(t *testing.T) {
		jobs := titles("Python Developer", "Designer")
		resp := Compose(intent.Skills, "python java jobs", bag(nil, []string{"Python", "Java"}), jobs)
		assert.Equal(t, JobList([]models.JobRecord{jobs[0]}), resp)
	})

	t.Run("no skills asks", func(t *testing.T) {
		resp := Compose(intent.Skills, "what skills", bag([]string{"Kochi"}, nil), titles("Python Developer"))
		assert.Equal(t, Message(MsgAskSkills), resp)
	})

	t.Run("no match is an empty job list", func(t *testing.T) {
		resp := Compose(intent.Skills, "cobol", bag(nil, []string{"COBOL"}), titles("Python Developer"))
		assert.Equal(t, KindJobs, resp.Kind)
		assert.Empty(t, resp.Jobs)
	})
}

func TestCompose_UnknownIntent(t *testing.T) {
	resp := Compose(intent.Label("greeting"), "hello", bag(nil, nil), titles("Python Developer"))
	assert.Equal(t, Message(MsgNotUnderstood), resp)
}

func TestResponse_JSON(t *testing.T) {
	jobs := []models.JobRecord{{Title: "Go Dev", Company: "Acme", Date: "today", Link: "https://x/1"}}

	raw, err := json.Marshal(JobList(jobs))
	require.NoError(t, err)
	assert.JSONEq(t, `{"jobs":[{"title":"Go Dev","company":"Acme","date":"today","link":"https://x/1"}]}`, string(raw))

	raw, err = json.Marshal(JobList(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"jobs":[]}`, string(raw))

	raw, err = json.Marshal(Message(MsgAskSkills))
	require.NoError(t, err)
	assert.JSONEq(t, `{"response":"What skills do you have? Please specify."}`, string(raw))

	var back Response
	require.NoError(t, json.Unmarshal([]byte(`{"response":"hi"}`), &back))
	assert.Equal(t, Message("hi"), back)
	require.NoError(t, json.Unmarshal([]byte(`{"jobs":[]}`), &back))
	assert.Equal(t, KindJobs, back.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{}`), &back))
	assert.Error(t, json.Unmarshal([]byte(`{"jobs":[],"response":"x"}`), &back))
}

func TestRender(t *testing.T) {
	out := Render(JobList([]models.JobRecord{
		{Title: "Go Dev", Company: "Acme", Date: "today", Link: "https://x/1"},
		{Title: "QA", Company: "Beta", Date: "yesterday", Link: models.PlaceholderLink, Location: "Kochi"},
	}))

	want := "Here are some job listings:\n\n" +
		"Title: Go Dev\nCompany: Acme\nDate: today\nLink: https://x/1\n----------------------\n" +
		"Title: QA\nCompany: Beta\nDate: yesterday\nLocation: Kochi\n----------------------\n"
	assert.Equal(t, want, out)

	assert.Equal(t, MsgAskLocation, Render(Message(MsgAskLocation)))
	assert.Equal(t, "No job listings matched your query.", Render(JobList(nil)))
}

func TestCompose_LowercasesLikeNormalizer(t *testing.T) {
	// Final sigma folds to ς in English casing, so both sides must use it.
	jobs := titles("ΟΔΟΣ Developer", "Java Developer")

	resp := Compose(intent.JobSearch, "οδος developer", bag(nil, nil), jobs)
	assert.Equal(t, JobList(jobs[:1]), resp)

	resp = Compose(intent.Skills, "", bag(nil, []string{"ΟΔΟΣ"}), jobs)
	assert.Equal(t, JobList(jobs[:1]), resp)
}
