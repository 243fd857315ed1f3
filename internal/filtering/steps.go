package filtering

import (
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/profile"
	"github.com/spigell/job-matcher/internal/qualification"
)

const (
	ActiveStatusName        = "active_status"
	KnownQualificationsName = "known_qualifications"
	EligibilityName         = "eligibility"
)

type activeStatusFilter struct{}

// NewActiveStatus creates a filter that removes postings which are not open.
func NewActiveStatus() Filter {
	return &activeStatusFilter{}
}

func (f *activeStatusFilter) Name() string { return ActiveStatusName }

func (f *activeStatusFilter) Apply(deps Deps, jobs *profile.Jobs) (*profile.Jobs, Step, error) {
	initial := jobs.Len()
	excluded := jobs.Keep(func(job *profile.Job) bool { return job.IsActive() })
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Debug("excluding inactive jobs",
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

type knownQualificationsFilter struct {
	levels *qualification.Levels
}

// NewKnownQualifications creates a filter that silently removes postings whose
// qualification bounds are not part of the vocabulary.
func NewKnownQualifications(levels *qualification.Levels) Filter {
	return &knownQualificationsFilter{levels: levels}
}

func (f *knownQualificationsFilter) Name() string { return KnownQualificationsName }

func (f *knownQualificationsFilter) Apply(deps Deps, jobs *profile.Jobs) (*profile.Jobs, Step, error) {
	initial := jobs.Len()
	excluded := jobs.Keep(func(job *profile.Job) bool {
		return f.levels.Contains(job.MinQualification) && f.levels.Contains(job.MaxQualification)
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Debug("excluding jobs with unknown qualification bounds",
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

type eligibilityFilter struct {
	levels  *qualification.Levels
	userIdx int
}

// NewEligibility creates a filter that keeps postings whose inclusive
// [min, max] qualification range contains userIdx. Bounds must already be
// known; postings with unknown bounds are dropped as well.
func NewEligibility(levels *qualification.Levels, userIdx int) Filter {
	return &eligibilityFilter{levels: levels, userIdx: userIdx}
}

func (f *eligibilityFilter) Name() string { return EligibilityName }

func (f *eligibilityFilter) Apply(deps Deps, jobs *profile.Jobs) (*profile.Jobs, Step, error) {
	initial := jobs.Len()
	excluded := jobs.Keep(func(job *profile.Job) bool {
		return IsEligible(f.levels, f.userIdx, job)
	})
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Debug("excluding jobs outside the qualification range",
			zap.Int("candidate_level", f.userIdx),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

// IsEligible reports whether userIdx falls inside the job's qualification range.
func IsEligible(levels *qualification.Levels, userIdx int, job *profile.Job) bool {
	minIdx, err := levels.IndexOf(job.MinQualification)
	if err != nil {
		return false
	}
	maxIdx, err := levels.IndexOf(job.MaxQualification)
	if err != nil {
		return false
	}
	return minIdx <= userIdx && userIdx <= maxIdx
}
