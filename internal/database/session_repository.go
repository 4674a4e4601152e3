package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/edutrack/pkg/models"
)

// SessionRepository handles database operations for test session records
type SessionRepository struct{}

// NewSessionRepository creates a new repository instance
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// Create inserts a new session record and assigns its ID
func (r *SessionRepository) Create(session *models.SessionRecord) error {
	if session.Timestamp.IsZero() {
		session.Timestamp = time.Now().UTC()
	}

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO test_sessions (student_id, response_type, prompt_used, timestamp, current_question_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		return DB.QueryRow(
			query,
			session.StudentID,
			session.ResponseType,
			session.PromptUsed,
			session.Timestamp,
			session.CurrentQuestionID,
		).Scan(&session.ID)
	}

	query := `
		INSERT INTO test_sessions (student_id, response_type, prompt_used, timestamp, current_question_id)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := DB.Exec(
		query,
		session.StudentID,
		session.ResponseType,
		session.PromptUsed,
		session.Timestamp,
		session.CurrentQuestionID,
	)
	if err != nil {
		return fmt.Errorf("failed to create session record: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	session.ID = id

	return nil
}

// Update overwrites the response, prompt, timestamp and current question of
// an existing session record
func (r *SessionRepository) Update(session *models.SessionRecord) error {
	query := `
		UPDATE test_sessions SET
			student_id = ?,
			response_type = ?,
			prompt_used = ?,
			timestamp = ?,
			current_question_id = ?
		WHERE id = ?
	`
	if DB.DriverName() == "postgres" {
		query = replacePlaceholders(query)
	}

	_, err := DB.Exec(
		query,
		session.StudentID,
		session.ResponseType,
		session.PromptUsed,
		session.Timestamp,
		session.CurrentQuestionID,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session record: %v", err)
	}
	return nil
}

// GetByID returns a session record by ID, or nil when no such record exists
func (r *SessionRepository) GetByID(id int64) (*models.SessionRecord, error) {
	query := "SELECT id, student_id, response_type, prompt_used, timestamp, current_question_id FROM test_sessions WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	var session models.SessionRecord
	err := DB.Get(&session, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session record: %v", err)
	}
	return &session, nil
}

// GetAll returns all session records
func (r *SessionRepository) GetAll() ([]models.SessionRecord, error) {
	var sessions []models.SessionRecord
	err := DB.Select(&sessions, "SELECT id, student_id, response_type, prompt_used, timestamp, current_question_id FROM test_sessions")
	if err != nil {
		return nil, fmt.Errorf("failed to get session records: %v", err)
	}
	return sessions, nil
}

// GetByStudentID returns all session records owned by one student
func (r *SessionRepository) GetByStudentID(studentID int64) ([]models.SessionRecord, error) {
	query := "SELECT id, student_id, response_type, prompt_used, timestamp, current_question_id FROM test_sessions WHERE student_id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	var sessions []models.SessionRecord
	err := DB.Select(&sessions, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session records for student: %v", err)
	}
	return sessions, nil
}
