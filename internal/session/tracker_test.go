package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/edutrack/internal/database"
	"github.com/example/edutrack/pkg/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	if database.DB == nil {
		require.NoError(t, database.Open("sqlite3", ":memory:"))
	}
	require.NoError(t, database.Reset())
}

func addQuestions(t *testing.T, texts ...string) []int64 {
	t.Helper()
	repo := database.NewQuestionRepository()
	ids := make([]int64, 0, len(texts))
	for _, text := range texts {
		q := &models.Question{QuestionText: text, AnswerType: "Multiple Choice"}
		require.NoError(t, repo.Create(q))
		ids = append(ids, q.ID)
	}
	return ids
}

func TestSelectNextQuestionNeverRepeats(t *testing.T) {
	setupTestDB(t)
	addQuestions(t, "Q1", "Q2", "Q3")

	tracker := NewTracker(1)
	seen := make(map[int64]bool)
	for i := 0; i < 3; i++ {
		q, err := tracker.SelectNextQuestion()
		require.NoError(t, err)
		require.NotZero(t, q.ID)
		assert.False(t, seen[q.ID], "question %d repeated", q.ID)
		seen[q.ID] = true
	}

	// The fourth call is the end-of-test sentinel
	sentinel, err := tracker.SelectNextQuestion()
	require.NoError(t, err)
	assert.Zero(t, sentinel.ID)
	assert.Equal(t, EndOfTestText, sentinel.QuestionText)
	assert.Empty(t, sentinel.Images)
}

func TestResetSessionAllowsRepeats(t *testing.T) {
	setupTestDB(t)
	ids := addQuestions(t, "Q1")

	tracker := NewTracker(1)
	first, err := tracker.SelectNextQuestion()
	require.NoError(t, err)
	assert.Equal(t, ids[0], first.ID)

	exhausted, err := tracker.SelectNextQuestion()
	require.NoError(t, err)
	assert.Zero(t, exhausted.ID)

	tracker.ResetSession()

	again, err := tracker.SelectNextQuestion()
	require.NoError(t, err)
	assert.Equal(t, ids[0], again.ID)
}

func TestSelectNextQuestionEmptyBankReturnsSentinel(t *testing.T) {
	setupTestDB(t)

	tracker := NewTracker(1)
	q, err := tracker.SelectNextQuestion()
	require.NoError(t, err)
	assert.Zero(t, q.ID)
	assert.Equal(t, EndOfTestText, q.QuestionText)
}

func TestStartSessionPersistsInitialState(t *testing.T) {
	setupTestDB(t)

	tracker := NewTracker(7)
	record, err := tracker.StartSession()
	require.NoError(t, err)
	require.NotZero(t, record.ID)
	assert.Equal(t, int64(7), record.StudentID)
	assert.Equal(t, models.ResponseSessionStarted, record.ResponseType)
	assert.Equal(t, models.PromptNone, record.PromptUsed)
	assert.Equal(t, int64(models.NoActiveQuestion), record.CurrentQuestionID)

	stored, err := database.NewSessionRepository().GetByID(record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.ResponseSessionStarted, stored.ResponseType)
}

func TestAdvanceToQuestionStoresCurrentQuestion(t *testing.T) {
	setupTestDB(t)
	addQuestions(t, "Q1")

	tracker := NewTracker(1)
	_, err := tracker.StartSession()
	require.NoError(t, err)

	q, err := tracker.SelectNextQuestion()
	require.NoError(t, err)
	require.NoError(t, tracker.AdvanceToQuestion(q))

	stored, err := database.NewSessionRepository().GetByID(tracker.Record().ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, q.ID, stored.CurrentQuestionID)
}

func TestAdvanceToQuestionCreatesSessionWhenMissing(t *testing.T) {
	setupTestDB(t)
	addQuestions(t, "Q1")

	tracker := NewTracker(1)
	q, err := tracker.SelectNextQuestion()
	require.NoError(t, err)
	require.NoError(t, tracker.AdvanceToQuestion(q))

	require.NotNil(t, tracker.Record())
	assert.Equal(t, q.ID, tracker.Record().CurrentQuestionID)
}

func TestRecordResponseRejectsMissingPrompt(t *testing.T) {
	setupTestDB(t)

	tracker := NewTracker(1)
	err := tracker.RecordResponse(models.ResponseCorrect, models.PromptNone)
	assert.ErrorIs(t, err, ErrPromptRequired)

	// The rejection must not create a session record
	sessions, err := database.NewSessionRepository().GetAll()
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.Nil(t, tracker.Record())
}

func TestRecordResponseCreatesSessionLazily(t *testing.T) {
	setupTestDB(t)

	tracker := NewTracker(3)
	require.NoError(t, tracker.RecordResponse(models.ResponseCorrect, "Verbal"))

	record := tracker.Record()
	require.NotNil(t, record)
	require.NotZero(t, record.ID)
	assert.Equal(t, models.ResponseCorrect, record.ResponseType)
	assert.Equal(t, "Verbal", record.PromptUsed)
}

func TestRecordResponseUpdatesExistingSession(t *testing.T) {
	setupTestDB(t)

	tracker := NewTracker(1)
	record, err := tracker.StartSession()
	require.NoError(t, err)

	require.NoError(t, tracker.RecordResponse(models.ResponseIncorrect, "Physical"))

	stored, err := database.NewSessionRepository().GetByID(record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.ResponseIncorrect, stored.ResponseType)
	assert.Equal(t, "Physical", stored.PromptUsed)
}

func TestTrackerRecordRetryWithoutSession(t *testing.T) {
	setupTestDB(t)

	tracker := NewTracker(1)
	_, err := tracker.RecordRetry("Verbal")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestTrackerRecordRetryRefreshesRecord(t *testing.T) {
	setupTestDB(t)
	addQuestions(t, "Q1")

	tracker := NewTracker(1)
	_, err := tracker.StartSession()
	require.NoError(t, err)

	q, err := tracker.SelectNextQuestion()
	require.NoError(t, err)
	require.NoError(t, tracker.AdvanceToQuestion(q))

	count, err := tracker.RecordRetry("Gesture")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, models.ResponseRetry, tracker.Record().ResponseType)
	assert.Equal(t, "Gesture", tracker.Record().PromptUsed)
}
