// Package recommend filters and ranks the open job postings a candidate is eligible for.
package recommend

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/filtering"
	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/profile"
	"github.com/spigell/job-matcher/internal/qualification"
)

const (
	baseScore          = 70
	boundaryBonus      = 15
	overqualifiedBonus = 10
	interiorBonus      = 5
	experienceBonus    = 3
	maxScore           = 100

	minExperienceYears = 2
)

// Recommendation is a job posting enriched with its recommendation score.
// The embedded job fields are flattened when encoded to JSON.
type Recommendation struct {
	profile.Job
	MatchScore int  `json:"matchScore"`
	IsEligible bool `json:"isEligible"`
}

type Recommender struct {
	levels *qualification.Levels
	logger *zap.Logger
}

// New creates a recommender over the given vocabulary. A nil vocabulary means qualification.Default().
func New(levels *qualification.Levels, l *zap.Logger) *Recommender {
	if levels == nil {
		levels = qualification.Default()
	}
	return &Recommender{levels: levels, logger: logger.OrNop(l)}
}

// Steps returns the filters a job has to pass for a candidate at userIdx.
func (r *Recommender) Steps(userIdx int) []filtering.Filter {
	return []filtering.Filter{
		filtering.NewActiveStatus(),
		filtering.NewKnownQualifications(r.levels),
		filtering.NewEligibility(r.levels, userIdx),
	}
}

// Recommend returns the eligible active jobs ranked by score, highest first.
// An unknown candidate qualification fails the whole call, while jobs with
// unknown qualification bounds are left out without an error. Jobs with equal
// scores keep their input order. Neither jobs nor candidate are modified.
func (r *Recommender) Recommend(candidateQualification string, jobs *profile.Jobs, candidate *profile.Candidate) ([]Recommendation, error) {
	if strings.TrimSpace(candidateQualification) == "" {
		return nil, fmt.Errorf("candidate qualification: %w", profile.ErrMissingField)
	}

	userIdx, err := r.levels.IndexOf(candidateQualification)
	if err != nil {
		return nil, fmt.Errorf("resolving candidate qualification: %w", err)
	}

	experience := 0
	candidateID := ""
	if candidate != nil {
		experience = candidate.Experience
		candidateID = candidate.ID
	}
	log := logger.WithCommonFields(r.logger, candidateID, "")

	pool := &profile.Jobs{}
	if jobs != nil {
		pool = jobs.Copy()
	}
	initial := pool.Len()

	steps := r.Steps(userIdx)
	eligible, stats, err := filtering.Run(filtering.Deps{Logger: log}, steps, pool)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, eligible.Len())
	for _, job := range eligible.Items {
		// Bounds were resolved by the filters already.
		minIdx, _ := r.levels.IndexOf(job.MinQualification)
		maxIdx, _ := r.levels.IndexOf(job.MaxQualification)

		recs = append(recs, Recommendation{
			Job:        job.Clone(),
			MatchScore: Score(userIdx, minIdx, maxIdx, experience),
			IsEligible: true,
		})
	}

	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})

	fields := []zap.Field{
		zap.Strings("filters", filtering.Describe(steps)),
		zap.Int("jobs", initial),
		zap.Int("recommended", len(recs)),
	}
	for _, step := range stats {
		fields = append(fields, zap.Int("dropped_"+step.Name, step.Dropped))
	}
	log.Debug("recommendations ranked", fields...)

	return recs, nil
}

// Score computes the recommendation score of an eligible job. It does not
// check eligibility itself.
func Score(userIdx, minIdx, maxIdx, experience int) int {
	score := baseScore

	switch {
	case userIdx == minIdx || userIdx == maxIdx:
		score += boundaryBonus
	case userIdx > maxIdx:
		// Unreachable while the eligibility filter runs first.
		score += overqualifiedBonus
	default:
		score += interiorBonus
	}

	if experience >= minExperienceYears {
		score += experienceBonus
	}

	return min(score, maxScore)
}
