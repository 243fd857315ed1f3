// Package matching rates a single candidate against a single job posting.
package matching

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/profile"
	"github.com/spigell/job-matcher/internal/qualification"
)

const (
	ReasonStrongQualification   = "Strong qualification match"
	ReasonModerateQualification = "Moderate qualification match"
	ReasonWeakQualification     = "Weak qualification match"
	ReasonExperienceAligned     = "Experience well-aligned with role"
	ReasonLocationAvailable     = "Location available"
)

// Qualification term values.
const (
	QualificationBelowMinimum  = 30
	QualificationOverqualified = 70
	QualificationInRange       = 90
	// QualificationFallback is used when any of the three levels is not in the vocabulary.
	QualificationFallback = 50
)

// Experience term values.
const (
	ExperienceBase      = 60
	ExperienceMentioned = 75
	ExperienceMet       = 85

	minExperienceYears = 2
)

const DefaultLocationScore = 50

// Weights are kept in tenths so the weighted sum of integer terms is exact
// and rounding of .5 results is predictable.
const (
	qualificationWeight = 6
	experienceWeight    = 3
	locationWeight      = 1
	weightScale         = 10
)

const (
	strongThreshold   = 80
	moderateThreshold = 60
	alignedThreshold  = 70

	maxRequirementLogLen = 80
)

var experienceKeywords = []string{"years", "experience"}

// LocationScorer computes the location term of the composite score.
type LocationScorer interface {
	LocationScore(candidate *profile.Candidate, job *profile.Job) float64
}

// ConstantLocation scores every pair the same. Location data is not modeled yet.
type ConstantLocation float64

func (c ConstantLocation) LocationScore(*profile.Candidate, *profile.Job) float64 {
	return float64(c)
}

type Details struct {
	QualificationMatch int `json:"qualificationMatch"`
	ExperienceMatch    int `json:"experienceMatch"`
	LocationMatch      int `json:"locationMatch"`
}

// Result is the composite score of one candidate/job pair.
type Result struct {
	Score     int      `json:"score"`
	Reasoning []string `json:"reasoning"`
	Details   Details  `json:"details"`
}

type Matcher struct {
	levels   *qualification.Levels
	location LocationScorer
	logger   *zap.Logger
}

type Option func(*Matcher)

// WithLocationScorer replaces the constant location term.
func WithLocationScorer(scorer LocationScorer) Option {
	return func(m *Matcher) {
		if scorer != nil {
			m.location = scorer
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) {
		m.logger = logger.OrNop(l)
	}
}

// New creates a matcher over the given vocabulary. A nil vocabulary means qualification.Default().
func New(levels *qualification.Levels, opts ...Option) *Matcher {
	if levels == nil {
		levels = qualification.Default()
	}

	m := &Matcher{
		levels:   levels,
		location: ConstantLocation(DefaultLocationScore),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Score rates candidate against job. It fails only when a record lacks a
// qualification field; unknown qualification names degrade to a neutral term.
func (m *Matcher) Score(candidate *profile.Candidate, job *profile.Job) (*Result, error) {
	if candidate == nil {
		return nil, fmt.Errorf("candidate: %w", profile.ErrMissingField)
	}
	if job == nil {
		return nil, fmt.Errorf("job: %w", profile.ErrMissingField)
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	log := logger.WithCommonFields(m.logger, candidate.ID, job.ID)
	reasoning := make([]string, 0, 3)

	qual := m.qualificationTerm(log, candidate, job)
	switch {
	case qual >= strongThreshold:
		reasoning = append(reasoning, ReasonStrongQualification)
	case qual >= moderateThreshold:
		reasoning = append(reasoning, ReasonModerateQualification)
	default:
		reasoning = append(reasoning, ReasonWeakQualification)
	}

	exp := experienceTerm(log, candidate, job)
	if exp >= alignedThreshold {
		reasoning = append(reasoning, ReasonExperienceAligned)
	}

	loc := clampTerm(m.location.LocationScore(candidate, job))
	reasoning = append(reasoning, ReasonLocationAvailable)

	weighted := float64(qual*qualificationWeight+exp*experienceWeight) + loc*locationWeight
	score := roundHalfUp(weighted / weightScale)

	log.Debug("pair scored",
		zap.Int("score", score),
		zap.Int("qualification_term", qual),
		zap.Int("experience_term", exp),
		zap.Float64("location_term", loc),
	)

	return &Result{
		Score:     score,
		Reasoning: reasoning,
		Details: Details{
			QualificationMatch: qual,
			ExperienceMatch:    exp,
			LocationMatch:      roundHalfUp(loc),
		},
	}, nil
}

func (m *Matcher) qualificationTerm(log *zap.Logger, candidate *profile.Candidate, job *profile.Job) int {
	userIdx, errUser := m.levels.IndexOf(candidate.Qualification)
	minIdx, errMin := m.levels.IndexOf(job.MinQualification)
	maxIdx, errMax := m.levels.IndexOf(job.MaxQualification)
	for _, err := range []error{errUser, errMin, errMax} {
		if err != nil {
			log.Debug("qualification lookup failed, using neutral term", zap.Error(err))
			return QualificationFallback
		}
	}

	switch {
	case userIdx < minIdx:
		return QualificationBelowMinimum
	case userIdx > maxIdx:
		return QualificationOverqualified
	default:
		return QualificationInRange
	}
}

func experienceTerm(log *zap.Logger, candidate *profile.Candidate, job *profile.Job) int {
	for _, req := range job.Requirements {
		lower := strings.ToLower(req)
		if !containsAny(lower, experienceKeywords) {
			continue
		}

		log.Debug("requirement mentions experience",
			zap.String("requirement", logger.TruncateForLog(req, maxRequirementLogLen)),
			zap.Int("candidate_experience", candidate.Experience),
		)
		if candidate.Experience >= minExperienceYears {
			return ExperienceMet
		}
		return ExperienceMentioned
	}
	return ExperienceBase
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clampTerm(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// roundHalfUp rounds non-negative values with ties going up (84.5 -> 85).
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
