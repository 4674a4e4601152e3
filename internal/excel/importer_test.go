package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/edutrack/internal/database"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	if database.DB == nil {
		require.NoError(t, database.Open("sqlite3", ":memory:"))
	}
	require.NoError(t, database.Reset())
}

func TestImportQuestionsFromCSV(t *testing.T) {
	setupTestDB(t)

	csvPath := filepath.Join(t.TempDir(), "questions.csv")
	content := "Question,Answer Type,Correct Answer,Images\n" +
		"Which one is the apple?,Multiple Choice,apple,apple.png;banana.png\n" +
		"Point to the red block,Receptive,red block,\n" +
		",Multiple Choice,orphaned,\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0644))

	config := DefaultImportConfig()
	config.FilePath = csvPath

	result, err := ImportQuestions(config)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Errors, 1)

	questions, err := database.NewQuestionRepository().GetAll()
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Which one is the apple?", questions[0].QuestionText)
	assert.Equal(t, []string{"apple.png", "banana.png"}, questions[0].Images)
	assert.Empty(t, questions[1].Images)
}

func TestImportQuestionsFromExcel(t *testing.T) {
	setupTestDB(t)

	xlsxPath := filepath.Join(t.TempDir(), "questions.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Question"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Match the shapes"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "Matching"))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", "circle"))
	require.NoError(t, f.SetCellValue("Sheet1", "D2", "circle.png; square.png"))
	require.NoError(t, f.SaveAs(xlsxPath))
	require.NoError(t, f.Close())

	config := DefaultImportConfig()
	config.FilePath = xlsxPath

	result, err := ImportQuestions(config)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalProcessed)
	assert.Equal(t, 1, result.Created)
	assert.Empty(t, result.Errors)

	questions, err := database.NewQuestionRepository().GetAll()
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Match the shapes", questions[0].QuestionText)
	assert.Equal(t, "Matching", questions[0].AnswerType)
	assert.Equal(t, []string{"circle.png", "square.png"}, questions[0].Images)
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 3, columnToIndex("D"))
	assert.Equal(t, 26, columnToIndex("AA"))
}
