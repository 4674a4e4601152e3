package reports

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/example/edutrack/pkg/models"
)

// ExportStudentSummary writes a student's summary to an Excel workbook at the
// given path. Values are written as raw cells, formatting is left to the
// reports UI.
func ExportStudentSummary(path string, student *models.StudentProfile, summary *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	row := 1

	setRow := func(label string, value interface{}) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
		row++
	}

	setRow("Student", student.Name)
	setRow("Supervisor", student.Supervisor)
	setRow("Education Level", student.EducationLevel)
	setRow("Total Sessions", summary.TotalSessions)
	setRow("Correct Answers", summary.CorrectAnswers)
	setRow("Incorrect Answers", summary.IncorrectAnswers)
	row++

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Prompt Breakdown")
	row++
	for _, prompt := range sortedKeys(summary.PromptBreakdown) {
		setRow(prompt, summary.PromptBreakdown[prompt])
	}
	row++

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Retries Per Question")
	row++
	questionIDs := make([]int64, 0, len(summary.RetriesPerQuestion))
	for id := range summary.RetriesPerQuestion {
		questionIDs = append(questionIDs, id)
	}
	sort.Slice(questionIDs, func(i, j int) bool { return questionIDs[i] < questionIDs[j] })
	for _, id := range questionIDs {
		setRow(fmt.Sprintf("Question %d", id), summary.RetriesPerQuestion[id])
	}
	row++

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Retries By Question Type")
	row++
	for _, answerType := range sortedKeys(summary.RetriesByType) {
		setRow(answerType, summary.RetriesByType[answerType])
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report workbook: %v", err)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
