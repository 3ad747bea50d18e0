package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
	"github.com/IT-Nick/interview-prep-bot/internal/infra/timer"
)

// ReportPDF формирует PDF-отчет по завершенному интервью.
// Используется встроенный шрифт Helvetica, символы вне cp1252 заменяются.
func ReportPDF(r model.Report, username string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("Mock interview report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, tr("Mock interview report: "+strings.ToUpper(r.Topic)), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	candidate := fmt.Sprintf("User ID: %d", r.UserID)
	if username != "" {
		candidate = fmt.Sprintf("User: @%s (%d)", username, r.UserID)
	}
	info := fmt.Sprintf("%s\nFinished: %s\nScore: %d/%d (%d%%)\nTotal time: %s\n",
		candidate, r.FinishedAt.Format(timeLayout), r.Correct, r.Total, r.Percentage, timer.FormatMinutes(r.TotalElapsed))
	pdf.MultiCell(0, 8, tr(info), "", "L", false)
	pdf.Ln(2)

	if len(r.ByDifficulty) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 8, "By difficulty", "", "L", false)
		pdf.SetFont("Helvetica", "", 12)
		for _, d := range r.ByDifficulty {
			pdf.MultiCell(0, 7, fmt.Sprintf("%s: %d/%d", strings.ToUpper(string(d.Difficulty)), d.Correct, d.Total), "", "L", false)
		}
		pdf.Ln(4)
	}

	for i, res := range r.Results {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 8, fmt.Sprintf("Question %d: %s (%ds)", i+1, res.Label(), res.TimeTaken), "", "L", false)

		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr(res.Question.Prompt), "", "L", false)
		pdf.Ln(1)
		answers := fmt.Sprintf("Your answer: %s\nReference: %s\n", res.AnswerText(), res.Question.ReferenceAnswer)
		pdf.MultiCell(0, 7, tr(answers), "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}
	return buf.Bytes(), nil
}
