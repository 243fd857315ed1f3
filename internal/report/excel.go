package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/job-matcher/internal/profile"
	"github.com/spigell/job-matcher/internal/recommend"
)

const (
	SummarySheet         = "Summary"
	RecommendationsSheet = "Recommendations"

	boundaryScore = 85
)

var recommendationHeaders = []string{
	"Rank", "Job ID", "Title", "Department", "Location", "Salary", "Qualification range", "Score",
}

// ExportExcel writes the ranked recommendations of one candidate into an xlsx workbook.
// The .xlsx extension is appended to path when missing; the final path is returned.
func ExportExcel(path string, candidate *profile.Candidate, recs []recommend.Recommendation) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(RecommendationsSheet); err != nil {
		return "", err
	}

	if err := writeSummarySheet(f, candidate, recs); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeRecommendationsSheet(f, recs); err != nil {
		return "", fmt.Errorf("failed to create recommendations sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return path, nil
}

func writeSummarySheet(f *excelize.File, candidate *profile.Candidate, recs []recommend.Recommendation) error {
	if err := f.SetColWidth(SummarySheet, "A", "A", 25); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 40); err != nil {
		return err
	}

	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if candidate == nil {
		candidate = &profile.Candidate{}
	}
	rows := [][]any{
		{"Candidate ID:", candidate.ID},
		{"Name:", candidate.Name},
		{"Qualification:", candidate.Qualification},
		{"Experience (years):", candidate.Experience},
		{"Recommended jobs:", len(recs)},
	}
	if len(recs) > 0 {
		highest, lowest, total := recs[0].MatchScore, recs[0].MatchScore, 0
		for _, rec := range recs {
			highest = max(highest, rec.MatchScore)
			lowest = min(lowest, rec.MatchScore)
			total += rec.MatchScore
		}
		rows = append(rows,
			[]any{"Highest score:", highest},
			[]any{"Lowest score:", lowest},
			[]any{"Average score:", fmt.Sprintf("%.2f", float64(total)/float64(len(recs)))},
		)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
		if err := f.SetCellStyle(SummarySheet, cell, cell, labelStyle); err != nil {
			return err
		}
	}
	return nil
}

func writeRecommendationsSheet(f *excelize.File, recs []recommend.Recommendation) error {
	widths := []float64{8, 20, 35, 20, 20, 15, 25, 10}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(RecommendationsSheet, col, col, width); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	boundaryStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	interiorStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(recommendationHeaders))
	if err != nil {
		return err
	}

	headers := make([]any, 0, len(recommendationHeaders))
	for _, h := range recommendationHeaders {
		headers = append(headers, h)
	}
	if err := f.SetSheetRow(RecommendationsSheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(RecommendationsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, rec := range recs {
		row := i + 2
		values := []any{
			i + 1,
			rec.ID,
			rec.Title,
			rec.Department,
			rec.Location,
			rec.Salary,
			rec.MinQualification + " - " + rec.MaxQualification,
			rec.MatchScore,
		}
		if err := f.SetSheetRow(RecommendationsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}

		style := interiorStyle
		if rec.MatchScore >= boundaryScore {
			style = boundaryStyle
		}
		if err := f.SetCellStyle(RecommendationsSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), style); err != nil {
			return err
		}
	}

	if len(recs) > 0 {
		ref := fmt.Sprintf("A1:%s%d", lastCol, len(recs)+1)
		if err := f.AutoFilter(RecommendationsSheet, ref, []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}

	return f.SetPanes(RecommendationsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
