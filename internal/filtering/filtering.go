// Package filtering narrows a list of job postings down to the ones a candidate may apply to.
package filtering

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/profile"
)

// Filter represents a single filtering step applied to jobs.
type Filter interface {
	Name() string
	Apply(deps Deps, jobs *profile.Jobs) (*profile.Jobs, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Name    string
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially and returns the remaining
// jobs together with per-step statistics. jobs is modified in place.
func Run(deps Deps, steps []Filter, jobs *profile.Jobs) (*profile.Jobs, []Step, error) {
	stats := make([]Step, 0, len(steps))
	for _, step := range steps {
		next, info, err := step.Apply(deps, jobs)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
		info.Name = step.Name()

		if deps.Logger != nil {
			deps.Logger.Debug("filter step",
				zap.String("name", info.Name),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		jobs = next
		stats = append(stats, info)
	}

	return jobs, stats, nil
}

// Describe returns the names of the provided filters in execution order.
func Describe(steps []Filter) []string {
	names := make([]string, 0, len(steps))
	for _, step := range steps {
		names = append(names, step.Name())
	}
	return names
}
