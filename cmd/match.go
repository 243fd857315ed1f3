package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/matching"
	"github.com/spigell/job-matcher/internal/report"
)

var errNotFound = errors.New("not found")

// selector picks one of the labelled items. Labels start with the record id.
type selector func(label string, items []string) (string, error)

func promptSelect(label string, items []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("nothing to choose from: %w", errNotFound)
	}

	p := promptui.Select{
		Label: label,
		Items: items,
	}

	_, selected, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.Split(selected, " ")[0], nil
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a candidate against a job posting",
	Run: func(cmd *cobra.Command, _ []string) {
		log := newLogger()
		s := mustSession(log)

		candidateID, _ := cmd.Flags().GetString("candidate")
		jobID, _ := cmd.Flags().GetString("job")

		if err := s.match(os.Stdout, promptSelect, candidateID, jobID); err != nil {
			log.Fatal("matching failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("candidate", "c", "", "candidate id or adhaar number. Asked interactively when unset.")
	matchCmd.Flags().String("job", "", "job posting id. Asked interactively when unset.")
}

func (s *session) match(out io.Writer, choose selector, candidateID, jobID string) error {
	var err error
	if candidateID == "" {
		if candidateID, err = choose("Choose a candidate and press ENTER", s.candidates.Names()); err != nil {
			return err
		}
	}
	if jobID == "" {
		if jobID, err = choose("Choose a job posting and press ENTER", s.jobs.Titles()); err != nil {
			return err
		}
	}

	candidate := s.candidates.FindByID(candidateID)
	if candidate == nil {
		return fmt.Errorf("candidate %s: %w", candidateID, errNotFound)
	}
	job := s.jobs.FindByID(jobID)
	if job == nil {
		return fmt.Errorf("job %s: %w", jobID, errNotFound)
	}

	m := matching.New(s.levels, matching.WithLogger(s.logger))
	res, err := m.Score(candidate, job)
	if err != nil {
		return err
	}

	logger.WithCommonFields(s.logger, candidate.ID, job.ID).Info("pair matched", zap.Int("score", res.Score))

	return report.WriteJSON(out, report.NewMatchResponse(job.ID, res))
}
