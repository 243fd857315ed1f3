// Package report shapes match and recommendation results for output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/recommend"
)

const noDepartment = "No department"

// MatchResponse is the envelope returned for a single candidate/job pair.
type MatchResponse struct {
	JobID      string           `json:"jobId"`
	MatchScore int              `json:"matchScore"`
	Reasoning  []string         `json:"reasoning"`
	Details    matching.Details `json:"details"`
}

func NewMatchResponse(jobID string, res *matching.Result) MatchResponse {
	resp := MatchResponse{JobID: jobID, Reasoning: []string{}}
	if res == nil {
		return resp
	}
	resp.MatchScore = res.Score
	resp.Details = res.Details
	if res.Reasoning != nil {
		resp.Reasoning = res.Reasoning
	}
	return resp
}

type RecommendationsResponse struct {
	CandidateID     string                     `json:"candidateId"`
	Count           int                        `json:"count"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

func NewRecommendationsResponse(candidateID string, recs []recommend.Recommendation) RecommendationsResponse {
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	return RecommendationsResponse{
		CandidateID:     candidateID,
		Count:           len(recs),
		Recommendations: recs,
	}
}

// ByDepartment groups recommendations by department. Entries keep the ranking order.
func ByDepartment(recs []recommend.Recommendation) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, rec := range recs {
		key := rec.Department
		if key == "" {
			key = noDepartment
		}
		report[key] = append(report[key], map[string]string{
			"id":       rec.ID,
			"title":    rec.Title,
			"location": rec.Location,
			"salary":   rec.Salary,
			"score":    strconv.Itoa(rec.MatchScore),
		})
	}
	return report
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// DumpToTmpFile writes v as JSON into a new temporary file and returns its path.
func DumpToTmpFile(v any) (string, error) {
	file, err := os.CreateTemp("", "job-matcher_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := WriteJSON(file, v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// WriteFile writes v as JSON to path, replacing any existing content.
func WriteFile(path string, v any) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, v)
}
