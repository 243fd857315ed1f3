package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJobsCoercesLooseTypes(t *testing.T) {
	jobs, err := DecodeJobs([]Document{
		{
			"_id":              "64f0c2",
			"title":            "Lab Assistant",
			"minQualification": "Diploma",
			"maxQualification": "M.Tech",
			"salary":           25000,
			"requirements":     "2 years experience",
			"status":           "Active",
			"unknownField":     true,
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, jobs.Len())

	job := jobs.Items[0]
	assert.Equal(t, "64f0c2", job.ID)
	assert.Equal(t, "25000", job.Salary)
	assert.Equal(t, []string{"2 years experience"}, job.Requirements)
	assert.True(t, job.IsActive())
}

func TestDecodeCandidatesExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  any
		expect int
	}{
		{name: "integer", value: 3, expect: 3},
		{name: "float from json", value: float64(4), expect: 4},
		{name: "numeric string", value: "5", expect: 5},
		{name: "empty string", value: "", expect: 0},
		{name: "null", value: nil, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			candidates, err := DecodeCandidates([]Document{
				{"id": "u1", "qualification": "B.Tech", "experience": tt.value},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expect, candidates.Items[0].Experience)
		})
	}
}

func TestDecodeAssignsIDs(t *testing.T) {
	candidates, err := DecodeCandidates([]Document{{"qualification": "PhD"}})
	require.NoError(t, err)

	_, err = uuid.Parse(candidates.Items[0].ID)
	assert.NoError(t, err)
}

func TestValidateMissingFields(t *testing.T) {
	job := &Job{ID: "j1", MinQualification: "Diploma"}
	err := job.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.ErrorContains(t, err, "maxQualification")

	candidate := &Candidate{ID: "u1", Experience: 1}
	err = candidate.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.ErrorContains(t, err, "qualification")

	candidate = &Candidate{ID: "u2", Qualification: "B.Sc", Experience: -1}
	err = candidate.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidField))

	ok := &Job{MinQualification: "Diploma", MaxQualification: "PhD"}
	assert.NoError(t, ok.Validate())
}

func TestKeepPreservesOrder(t *testing.T) {
	jobs := &Jobs{Items: []*Job{
		{ID: "1", Status: StatusActive},
		{ID: "2", Status: StatusInactive},
		{ID: "3", Status: StatusActive},
		{ID: "4", Status: "Closed"},
		{ID: "5", Status: StatusActive},
	}}

	dropped := jobs.Keep(func(j *Job) bool { return j.IsActive() })

	assert.Equal(t, []string{"2", "4"}, dropped)
	ids := make([]string, 0, jobs.Len())
	for _, j := range jobs.Items {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{"1", "3", "5"}, ids)
}

func TestCopyDoesNotTouchOriginal(t *testing.T) {
	original := &Jobs{Items: []*Job{{ID: "1"}, {ID: "2", Department: "HR"}}}

	cp := original.Copy()
	cp.Exclude(JobDepartmentField, []string{"HR"})

	assert.Equal(t, 1, cp.Len())
	assert.Equal(t, 2, original.Len())
	assert.Equal(t, "2", original.Items[1].ID)
}

func TestCloneCopiesRequirements(t *testing.T) {
	job := &Job{Requirements: []string{"a"}}
	clone := job.Clone()
	clone.Requirements[0] = "b"
	assert.Equal(t, "a", job.Requirements[0])
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()

	jobsYAML := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(jobsYAML, []byte(`
- id: j1
  title: Librarian
  minQualification: B.A
  maxQualification: M.A
  requirements:
    - 3 years experience required
  status: Active
`), 0o644))

	candidatesJSON := filepath.Join(dir, "candidates.json")
	require.NoError(t, os.WriteFile(candidatesJSON, []byte(`[
  {"id": "u1", "adhaar": "1234", "name": "Asha", "qualification": "M.Sc", "experience": 3}
]`), 0o644))

	jobs, err := LoadJobs(jobsYAML)
	require.NoError(t, err)
	require.Equal(t, 1, jobs.Len())
	assert.Equal(t, "M.A", jobs.FindByID("j1").MaxQualification)
	assert.Equal(t, []string{"j1 Librarian"}, jobs.Titles())

	candidates, err := LoadCandidates(candidatesJSON)
	require.NoError(t, err)
	assert.Equal(t, "u1", candidates.FindByID("1234").ID)
	assert.Equal(t, 3, candidates.FindByID("u1").Experience)
	assert.Nil(t, candidates.FindByID("missing"))

	_, err = LoadJobs(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}
