package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/edutrack/pkg/models"
)

func TestImagesEncodingRoundTrip(t *testing.T) {
	cases := [][]string{
		{},
		{"apple.png"},
		{"a.png", "b.png", "c.png"},
		{"with,comma.png", "with\"quote.png", "plain.png"},
	}

	for _, images := range cases {
		encoded, err := encodeImages(images)
		require.NoError(t, err)
		assert.Equal(t, images, decodeImages(encoded))
	}
}

func TestDecodeImagesMalformedFallsBackToEmpty(t *testing.T) {
	assert.Empty(t, decodeImages("not json at all"))
	assert.Empty(t, decodeImages("{\"wrong\": \"shape\"}"))
	assert.Empty(t, decodeImages(""))
	assert.Empty(t, decodeImages("null"))
}

func TestCreateQuestionPersistsOrderedImages(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	question := &models.Question{
		QuestionText:  "Which one is the apple?",
		AnswerType:    "Multiple Choice",
		CorrectAnswer: "apple",
		Images:        []string{"banana.png", "apple.png", "pear.png"},
	}
	require.NoError(t, repo.Create(question))
	require.NotZero(t, question.ID)

	questions, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, []string{"banana.png", "apple.png", "pear.png"}, questions[0].Images)
}

func TestGetAllQuestionsDecodesEveryRow(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	require.NoError(t, repo.Create(&models.Question{QuestionText: "Q1", Images: []string{"one.png"}}))
	require.NoError(t, repo.Create(&models.Question{QuestionText: "Q2"}))

	questions, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, []string{"one.png"}, questions[0].Images)
	assert.Empty(t, questions[1].Images)
}

func TestGetAllQuestionsToleratesCorruptImages(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	question := &models.Question{QuestionText: "Q1", Images: []string{"one.png"}}
	require.NoError(t, repo.Create(question))

	// Corrupt the stored column directly
	_, err := DB.Exec("UPDATE questions SET images = ? WHERE id = ?", "###", question.ID)
	require.NoError(t, err)

	questions, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Empty(t, questions[0].Images)
}

func TestUpdateQuestionReencodesImages(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	question := &models.Question{QuestionText: "Q1", Images: []string{"old.png"}}
	require.NoError(t, repo.Create(question))

	question.QuestionText = "Q1 revised"
	question.Images = []string{"new-a.png", "new-b.png"}
	require.NoError(t, repo.Update(question))

	updated, err := repo.GetByID(question.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Q1 revised", updated.QuestionText)
	assert.Equal(t, []string{"new-a.png", "new-b.png"}, updated.Images)
}

func TestDeleteQuestionRemovesRecord(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	question := &models.Question{QuestionText: "Q1"}
	require.NoError(t, repo.Create(question))
	require.NoError(t, repo.Delete(question))

	deleted, err := repo.GetByID(question.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}
