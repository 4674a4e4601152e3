package models

// RetryRecord counts repeated attempts at one question within one session.
// At most one record exists per (SessionID, QuestionID) pair.
type RetryRecord struct {
	ID         int64 `json:"id" db:"id"`
	SessionID  int64 `json:"session_id" db:"session_id"`
	QuestionID int64 `json:"question_id" db:"question_id"`
	RetryCount int   `json:"retry_count" db:"retry_count"`
}
