package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/profile"
	"github.com/spigell/job-matcher/internal/recommend"
)

func sampleRecommendations() []recommend.Recommendation {
	return []recommend.Recommendation{
		{
			Job: profile.Job{
				ID: "j1", Title: "Backend Engineer", Department: "Engineering",
				MinQualification: "B.Tech", MaxQualification: "M.Tech",
				Location: "Pune", Salary: "12 LPA", Status: profile.StatusActive,
			},
			MatchScore: 88,
			IsEligible: true,
		},
		{
			Job: profile.Job{
				ID: "j2", Title: "Analyst", Department: "Finance",
				MinQualification: "Diploma", MaxQualification: "MBA", Status: profile.StatusActive,
			},
			MatchScore: 78,
			IsEligible: true,
		},
		{
			Job: profile.Job{
				ID: "j3", Title: "Support Engineer",
				MinQualification: "Diploma", MaxQualification: "M.Tech", Status: profile.StatusActive,
			},
			MatchScore: 75,
			IsEligible: true,
		},
	}
}

func TestNewMatchResponse(t *testing.T) {
	res := &matching.Result{
		Score:     85,
		Reasoning: []string{matching.ReasonStrongQualification, matching.ReasonExperienceAligned, matching.ReasonLocationAvailable},
		Details:   matching.Details{QualificationMatch: 90, ExperienceMatch: 85, LocationMatch: 50},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewMatchResponse("j1", res)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "j1", decoded["jobId"])
	assert.Equal(t, float64(85), decoded["matchScore"])
	assert.Len(t, decoded["reasoning"], 3)
	assert.Equal(t, map[string]any{
		"qualificationMatch": float64(90),
		"experienceMatch":    float64(85),
		"locationMatch":      float64(50),
	}, decoded["details"])

	empty := NewMatchResponse("j2", nil)
	assert.Equal(t, "j2", empty.JobID)
	assert.NotNil(t, empty.Reasoning)
}

func TestNewRecommendationsResponse(t *testing.T) {
	resp := NewRecommendationsResponse("u1", sampleRecommendations())
	assert.Equal(t, 3, resp.Count)

	resp = NewRecommendationsResponse("u1", nil)
	assert.Equal(t, 0, resp.Count)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, resp))
	assert.Contains(t, buf.String(), `"recommendations": []`)
}

func TestByDepartment(t *testing.T) {
	report := ByDepartment(sampleRecommendations())

	require.Len(t, report, 3)
	assert.Equal(t, []map[string]string{{
		"id":       "j1",
		"title":    "Backend Engineer",
		"location": "Pune",
		"salary":   "12 LPA",
		"score":    "88",
	}}, report["Engineering"])
	assert.Len(t, report["Finance"], 1)
	require.Len(t, report[noDepartment], 1)
	assert.Equal(t, "j3", report[noDepartment][0]["id"])

	assert.Empty(t, ByDepartment(nil))
}

func TestDumpToTmpFile(t *testing.T) {
	path, err := DumpToTmpFile(NewRecommendationsResponse("u1", sampleRecommendations()))
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded RecommendationsResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "u1", decoded.CandidateID)
	assert.Equal(t, 3, decoded.Count)
	assert.Equal(t, "j1", decoded.Recommendations[0].ID)
}

func TestWriteFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 4096), 0o644))

	require.NoError(t, WriteFile(path, map[string]int{"count": 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count": 1}`, string(data))
}

func TestExportExcel(t *testing.T) {
	candidate := &profile.Candidate{ID: "u1", Name: "Asha", Qualification: "B.Tech", Experience: 3}

	path, err := ExportExcel(filepath.Join(t.TempDir(), "report"), candidate, sampleRecommendations())
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, RecommendationsSheet}, f.GetSheetList())

	rows, err := f.GetRows(RecommendationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, recommendationHeaders, rows[0])
	assert.Equal(t, []string{"1", "j1", "Backend Engineer", "Engineering", "Pune", "12 LPA", "B.Tech - M.Tech", "88"}, rows[1])

	name, err := f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Asha", name)

	highest, err := f.GetCellValue(SummarySheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "88", highest)
}

func TestExportExcelWithoutRecommendations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	got, err := ExportExcel(path, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	f, err := excelize.OpenFile(got)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(RecommendationsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
