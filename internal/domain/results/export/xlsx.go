package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/IT-Nick/interview-prep-bot/internal/domain/model"
)

const (
	attemptsSheet = "Attempts"
	answersSheet  = "Answers"
	timeLayout    = "2006-01-02 15:04:05"
)

// HistoryXLSX выгружает историю пробных интервью в xlsx: лист попыток и лист ответов
func HistoryXLSX(records []model.AttemptRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), attemptsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename Excel sheet: %w", err)
	}
	if _, err := f.NewSheet(answersSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	attemptHeaders := []any{"Attempt ID", "Topic", "Started At", "Finished At", "Correct", "Total", "Percentage", "Duration (s)"}
	if err := f.SetSheetRow(attemptsSheet, "A1", &attemptHeaders); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}
	answerHeaders := []any{"Attempt ID", "Question ID", "Question", "Difficulty", "Outcome", "User Answer", "Correct", "Time (s)"}
	if err := f.SetSheetRow(answersSheet, "A1", &answerHeaders); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}

	answerRow := 2
	for i, rec := range records {
		row := []any{
			rec.ID, rec.Topic,
			rec.StartedAt.Format(timeLayout), rec.FinishedAt.Format(timeLayout),
			rec.Correct, rec.Total, rec.Percentage, rec.DurationSeconds,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(attemptsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write attempt %s: %w", rec.ID, err)
		}

		for _, a := range rec.Answers {
			row := []any{rec.ID, a.QuestionID, a.Prompt, string(a.Difficulty), string(a.Outcome), a.UserAnswer, a.IsCorrect, a.TimeTaken}
			cell, _ := excelize.CoordinatesToCellName(1, answerRow)
			if err := f.SetSheetRow(answersSheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write answers of %s: %w", rec.ID, err)
			}
			answerRow++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
