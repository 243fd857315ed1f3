package recommend

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/profile"
)

const defaultWorkers = 4

// BatchResult holds the outcome of one candidate in a batch run. Err is set
// when Recommend failed for that candidate; other candidates are unaffected.
type BatchResult struct {
	CandidateID     string           `json:"candidateId"`
	Recommendations []Recommendation `json:"recommendations"`
	Error           string           `json:"error,omitempty"`
	Err             error            `json:"-"`
}

// BatchRecommend ranks jobs for every candidate using up to workers
// goroutines. Results follow the candidate order. The returned error is only
// set when ctx is cancelled before all candidates are processed.
func (r *Recommender) BatchRecommend(ctx context.Context, candidates *profile.Candidates, jobs *profile.Jobs, workers int) ([]BatchResult, error) {
	if candidates == nil {
		return []BatchResult{}, nil
	}
	if workers <= 0 {
		workers = defaultWorkers
	}

	results := make([]BatchResult, candidates.Len())

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, candidate := range candidates.Items {
		if gCtx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			res := BatchResult{CandidateID: candidate.ID}
			recs, err := r.Recommend(candidate.Qualification, jobs, candidate)
			if err != nil {
				r.logger.Warn("recommendation failed",
					zap.String(logger.FieldCandidate, candidate.ID),
					zap.Error(err),
				)
				res.Err = err
				res.Error = err.Error()
				recs = []Recommendation{}
			}
			res.Recommendations = recs
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
