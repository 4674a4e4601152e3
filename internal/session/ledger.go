package session

import (
	"time"

	"github.com/example/edutrack/internal/database"
	"github.com/example/edutrack/pkg/models"
)

// Ledger counts question retries per (session, question) pair. Uniqueness of
// the pair is enforced by looking up the existing record before inserting.
type Ledger struct {
	retries  *database.RetryRepository
	sessions *database.SessionRepository
}

// NewLedger creates a new retry ledger
func NewLedger() *Ledger {
	return &Ledger{
		retries:  database.NewRetryRepository(),
		sessions: database.NewSessionRepository(),
	}
}

// RecordRetry increments the retry counter for the (session, question) pair,
// creating it at 1 on the first retry, and stamps the owning session record
// with a "Retry" response. Returns the resulting count.
func (l *Ledger) RecordRetry(sessionID, questionID int64, promptType string) (int, error) {
	if sessionID == 0 {
		return 0, ErrNoActiveSession
	}
	if promptType == "" || promptType == models.PromptNone {
		return 0, ErrPromptRequired
	}
	if questionID <= 0 {
		return 0, ErrNoActiveQuestion
	}

	session, err := l.sessions.GetByID(sessionID)
	if err != nil {
		return 0, err
	}
	if session == nil {
		return 0, ErrNoActiveSession
	}

	record, err := l.retries.GetBySessionAndQuestion(sessionID, questionID)
	if err != nil {
		return 0, err
	}

	if record == nil {
		record = &models.RetryRecord{
			SessionID:  sessionID,
			QuestionID: questionID,
			RetryCount: 1,
		}
		if err := l.retries.Create(record); err != nil {
			return 0, err
		}
	} else {
		record.RetryCount++
		if err := l.retries.Update(record); err != nil {
			return 0, err
		}
	}

	session.ResponseType = models.ResponseRetry
	session.PromptUsed = promptType
	session.Timestamp = time.Now().UTC()
	if err := l.sessions.Update(session); err != nil {
		return 0, err
	}

	return record.RetryCount, nil
}
