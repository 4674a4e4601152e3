package models

import "time"

// Response types recorded on a session. The record always holds the latest
// observed state, not a log of every response.
const (
	ResponseSessionStarted = "Session Started"
	ResponseCorrect        = "Correct"
	ResponseIncorrect      = "Incorrect"
	ResponseNoResponse     = "No Response"
	ResponseRetry          = "Retry"
)

// PromptNone means no assistance level has been chosen yet.
const PromptNone = "None"

// NoActiveQuestion is stored as the current question ID while a session has no
// question loaded.
const NoActiveQuestion = -1

// SessionRecord tracks one continuous run of a student answering questions
type SessionRecord struct {
	ID                int64     `json:"id" db:"id"`
	StudentID         int64     `json:"student_id" db:"student_id"`
	ResponseType      string    `json:"response_type" db:"response_type"`
	PromptUsed        string    `json:"prompt_used" db:"prompt_used"`
	Timestamp         time.Time `json:"timestamp" db:"timestamp"`
	CurrentQuestionID int64     `json:"current_question_id" db:"current_question_id"`
}
