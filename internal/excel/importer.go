package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/edutrack/internal/database"
	"github.com/example/edutrack/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	QuestionColumn      string // Column with the question text
	AnswerTypeColumn    string // Column with the answer type
	CorrectAnswerColumn string // Column with the correct answer
	ImagesColumn        string // Column with semicolon-separated image references
	SheetName           string // Name of the sheet to import
	StartRow            int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		QuestionColumn:      "A",
		AnswerTypeColumn:    "B",
		CorrectAnswerColumn: "C",
		ImagesColumn:        "D",
		SheetName:           "Sheet1",
		StartRow:            2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportQuestions imports questions from an Excel or CSV file into the
// question bank
func ImportQuestions(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(config)
	}

	return importFromExcel(config)
}

// importFromExcel imports questions from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	questionRepo := database.NewQuestionRepository()
	result := &ImportResult{
		Errors: make([]string, 0),
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		question := questionFromRow(row, config)
		if err := saveQuestion(question, questionRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports questions from a CSV file with the fixed column
// order question, answer type, correct answer, images
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	questionRepo := database.NewQuestionRepository()
	result := &ImportResult{
		Errors: make([]string, 0),
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++

		// Skip header rows
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		question := &models.Question{}
		if len(row) > 0 {
			question.QuestionText = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			question.AnswerType = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			question.CorrectAnswer = strings.TrimSpace(row[2])
		}
		if len(row) > 3 {
			question.Images = splitImages(row[3])
		}

		if err := saveQuestion(question, questionRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// questionFromRow builds a question from one spreadsheet row using the
// configured column letters
func questionFromRow(row []string, config ImportConfig) *models.Question {
	question := &models.Question{}

	if colIdx := columnToIndex(config.QuestionColumn); colIdx < len(row) {
		question.QuestionText = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.AnswerTypeColumn); colIdx < len(row) {
		question.AnswerType = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.CorrectAnswerColumn); colIdx < len(row) {
		question.CorrectAnswer = strings.TrimSpace(row[colIdx])
	}
	if config.ImagesColumn != "" {
		if colIdx := columnToIndex(config.ImagesColumn); colIdx < len(row) {
			question.Images = splitImages(row[colIdx])
		}
	}

	return question
}

// saveQuestion validates and persists one imported question
func saveQuestion(question *models.Question, repo *database.QuestionRepository, result *ImportResult) error {
	if question.QuestionText == "" {
		result.Skipped++
		return fmt.Errorf("question text cannot be empty")
	}

	if err := repo.Create(question); err != nil {
		result.Skipped++
		return err
	}

	result.Created++
	return nil
}

// splitImages parses the semicolon-separated images cell, preserving order
func splitImages(cell string) []string {
	images := []string{}
	for _, part := range strings.Split(cell, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			images = append(images, part)
		}
	}
	return images
}

// columnToIndex converts a column letter ("A", "B", ...) to a 0-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for _, c := range column {
		index = index*26 + int(c-'A') + 1
	}
	return index - 1
}
