package session

import (
	"errors"
	"math/rand"
	"time"

	"github.com/example/edutrack/internal/database"
	"github.com/example/edutrack/pkg/models"
)

// Validation rejections returned to the session UI. These are user-input
// problems, the caller is expected to prompt for a correction and resubmit.
var (
	ErrNoActiveSession  = errors.New("no active session")
	ErrPromptRequired   = errors.New("prompt type is required")
	ErrNoActiveQuestion = errors.New("no active question")
)

// EndOfTestText is the question text of the sentinel returned once every
// question has been asked in a session.
const EndOfTestText = "You have reached the end of this test, congratulations! please press End Test to save your progress"

// Tracker drives one student's test session. It owns the set of question IDs
// already asked, which lives in memory only: a new Tracker (or ResetSession)
// starts with a clean slate regardless of what is persisted. Each session in
// progress needs its own Tracker instance.
type Tracker struct {
	studentID int64
	questions *database.QuestionRepository
	sessions  *database.SessionRepository
	ledger    *Ledger
	asked     map[int64]struct{}
	rnd       *rand.Rand
	record    *models.SessionRecord
}

// NewTracker creates a tracker for one student's session
func NewTracker(studentID int64) *Tracker {
	return &Tracker{
		studentID: studentID,
		questions: database.NewQuestionRepository(),
		sessions:  database.NewSessionRepository(),
		ledger:    NewLedger(),
		asked:     make(map[int64]struct{}),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Record returns the active session record, or nil before the first
// StartSession/RecordResponse call
func (t *Tracker) Record() *models.SessionRecord {
	return t.record
}

// StartSession creates and persists a fresh session record for the student
func (t *Tracker) StartSession() (*models.SessionRecord, error) {
	record := &models.SessionRecord{
		StudentID:         t.studentID,
		ResponseType:      models.ResponseSessionStarted,
		PromptUsed:        models.PromptNone,
		Timestamp:         time.Now().UTC(),
		CurrentQuestionID: models.NoActiveQuestion,
	}
	if err := t.sessions.Create(record); err != nil {
		return nil, err
	}
	t.record = record
	return record, nil
}

// SelectNextQuestion picks one not-yet-asked question uniformly at random and
// marks it as asked. When every question has been asked it returns the
// end-of-test sentinel, which has no persisted ID and an empty image list.
func (t *Tracker) SelectNextQuestion() (*models.Question, error) {
	questions, err := t.questions.GetAll()
	if err != nil {
		return nil, err
	}

	available := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if _, seen := t.asked[q.ID]; !seen {
			available = append(available, q)
		}
	}

	if len(available) == 0 {
		return &models.Question{
			QuestionText:  EndOfTestText,
			AnswerType:    "Default",
			CorrectAnswer: "",
			Images:        []string{},
		}, nil
	}

	selected := available[t.rnd.Intn(len(available))]
	t.asked[selected.ID] = struct{}{}
	return &selected, nil
}

// AdvanceToQuestion stores the selected question as the session's current
// question so that responses and retries can be attributed to it. A session
// record is created first if none exists yet.
func (t *Tracker) AdvanceToQuestion(question *models.Question) error {
	if t.record == nil {
		if _, err := t.StartSession(); err != nil {
			return err
		}
	}
	t.record.CurrentQuestionID = question.ID
	return t.sessions.Update(t.record)
}

// RecordResponse saves the student's response and the prompt level used to
// elicit it. The call is rejected with ErrPromptRequired when no prompt has
// been chosen, in that case nothing is created or modified.
func (t *Tracker) RecordResponse(responseType, promptType string) error {
	if promptType == "" || promptType == models.PromptNone {
		return ErrPromptRequired
	}

	// If no session record exists yet, create one with this response as its
	// initial state
	if t.record == nil {
		record := &models.SessionRecord{
			StudentID:         t.studentID,
			ResponseType:      responseType,
			PromptUsed:        promptType,
			Timestamp:         time.Now().UTC(),
			CurrentQuestionID: models.NoActiveQuestion,
		}
		if err := t.sessions.Create(record); err != nil {
			return err
		}
		t.record = record
		return nil
	}

	t.record.ResponseType = responseType
	t.record.PromptUsed = promptType
	t.record.Timestamp = time.Now().UTC()
	return t.sessions.Update(t.record)
}

// RecordRetry counts a repeated attempt at the session's current question and
// refreshes the in-memory record with the persisted "Retry" state
func (t *Tracker) RecordRetry(promptType string) (int, error) {
	if t.record == nil || t.record.ID == 0 {
		return 0, ErrNoActiveSession
	}

	count, err := t.ledger.RecordRetry(t.record.ID, t.record.CurrentQuestionID, promptType)
	if err != nil {
		return 0, err
	}

	record, err := t.sessions.GetByID(t.record.ID)
	if err != nil {
		return 0, err
	}
	if record != nil {
		t.record = record
	}
	return count, nil
}

// ResetSession clears the asked-question set so questions can repeat.
// Persisted session records are untouched.
func (t *Tracker) ResetSession() {
	t.asked = make(map[int64]struct{})
}
