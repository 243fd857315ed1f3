package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/logger"
	"github.com/spigell/job-matcher/internal/recommend"
	"github.com/spigell/job-matcher/internal/report"
)

const (
	ReportDepartment = "department"
)

var errUnsupported = errors.New("unsupported")

type recommendOptions struct {
	CandidateID string
	All         bool
	Report      string
	Output      string
	Dump        bool
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank the open job postings a candidate is eligible for",
	Run: func(cmd *cobra.Command, _ []string) {
		log := newLogger()
		s := mustSession(log)

		opts := recommendOptions{Output: viper.GetString("output")}
		opts.CandidateID, _ = cmd.Flags().GetString("candidate")
		opts.All, _ = cmd.Flags().GetBool("all")
		opts.Report, _ = cmd.Flags().GetString("report")
		opts.Dump, _ = cmd.Flags().GetBool("dump")

		if err := s.recommend(cmd.Context(), os.Stdout, promptSelect, opts); err != nil {
			log.Fatal("recommendation failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("candidate", "c", "", "candidate id or adhaar number. Asked interactively when unset.")
	recommendCmd.Flags().BoolP("all", "a", false, "recommend jobs for every candidate")
	recommendCmd.Flags().StringP("report", "r", "", "group recommendations in a report. Supported: department")
	recommendCmd.Flags().StringP("output", "o", "", "write the result to a .json or .xlsx file instead of stdout")
	recommendCmd.Flags().Bool("dump", false, "dump the result to a temporary json file")

	viper.BindPFlag("output", recommendCmd.Flags().Lookup("output"))
}

func (s *session) recommend(ctx context.Context, out io.Writer, choose selector, opts recommendOptions) error {
	if opts.Report != "" && opts.Report != ReportDepartment {
		return fmt.Errorf("report %q: %w", opts.Report, errUnsupported)
	}

	r := recommend.New(s.levels, s.logger)

	if opts.All {
		if ctx == nil {
			ctx = context.Background()
		}
		results, err := r.BatchRecommend(ctx, s.candidates, s.jobs, s.config.Workers)
		if err != nil {
			return err
		}

		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
			}
		}
		s.logger.Info("batch finished", zap.Int("candidates", len(results)), zap.Int("failed", failed))

		if isExcel(opts.Output) {
			return fmt.Errorf("excel export of a batch: %w", errUnsupported)
		}
		return s.emit(out, results, opts)
	}

	candidateID := opts.CandidateID
	if candidateID == "" {
		var err error
		if candidateID, err = choose("Choose a candidate and press ENTER", s.candidates.Names()); err != nil {
			return err
		}
	}

	candidate := s.candidates.FindByID(candidateID)
	if candidate == nil {
		return fmt.Errorf("candidate %s: %w", candidateID, errNotFound)
	}

	recs, err := r.Recommend(candidate.Qualification, s.jobs, candidate)
	if err != nil {
		return err
	}

	s.logger.Info("recommendations ready",
		zap.String(logger.FieldCandidate, candidate.ID),
		zap.Int("count", len(recs)),
	)

	if isExcel(opts.Output) {
		path, err := report.ExportExcel(opts.Output, candidate, recs)
		if err != nil {
			return err
		}
		s.logger.Info("report exported", zap.String("filename", path))
		return nil
	}

	var result any = report.NewRecommendationsResponse(candidate.ID, recs)
	if opts.Report == ReportDepartment {
		result = report.ByDepartment(recs)
	}
	return s.emit(out, result, opts)
}

func (s *session) emit(out io.Writer, v any, opts recommendOptions) error {
	if opts.Dump {
		filename, err := report.DumpToTmpFile(v)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
	}

	if opts.Output != "" {
		if err := report.WriteFile(opts.Output, v); err != nil {
			return err
		}
		s.logger.Info("result written", zap.String("filename", opts.Output))
		return nil
	}

	return report.WriteJSON(out, v)
}

func isExcel(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}
