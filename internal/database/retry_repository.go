package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/edutrack/pkg/models"
)

// RetryRepository handles database operations for question retry records
type RetryRepository struct{}

// NewRetryRepository creates a new repository instance
func NewRetryRepository() *RetryRepository {
	return &RetryRepository{}
}

// Create inserts a new retry record and assigns its ID. Callers look up the
// (session, question) pair first so at most one record exists per pair.
func (r *RetryRepository) Create(record *models.RetryRecord) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO question_retries (session_id, question_id, retry_count)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		return DB.QueryRow(
			query,
			record.SessionID,
			record.QuestionID,
			record.RetryCount,
		).Scan(&record.ID)
	}

	query := `
		INSERT INTO question_retries (session_id, question_id, retry_count)
		VALUES (?, ?, ?)
	`
	result, err := DB.Exec(query, record.SessionID, record.QuestionID, record.RetryCount)
	if err != nil {
		return fmt.Errorf("failed to create retry record: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	record.ID = id

	return nil
}

// Update persists the counter of an existing retry record
func (r *RetryRepository) Update(record *models.RetryRecord) error {
	query := "UPDATE question_retries SET retry_count = ? WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = replacePlaceholders(query)
	}

	_, err := DB.Exec(query, record.RetryCount, record.ID)
	if err != nil {
		return fmt.Errorf("failed to update retry record: %v", err)
	}
	return nil
}

// GetBySessionAndQuestion returns the retry record for one (session, question)
// pair, or nil when the pair has no retries yet
func (r *RetryRepository) GetBySessionAndQuestion(sessionID, questionID int64) (*models.RetryRecord, error) {
	query := "SELECT id, session_id, question_id, retry_count FROM question_retries WHERE session_id = ? AND question_id = ?"
	if DB.DriverName() == "postgres" {
		query = replacePlaceholders(query)
	}

	var record models.RetryRecord
	err := DB.Get(&record, query, sessionID, questionID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get retry record: %v", err)
	}
	return &record, nil
}

// GetAll returns all retry records
func (r *RetryRepository) GetAll() ([]models.RetryRecord, error) {
	var records []models.RetryRecord
	err := DB.Select(&records, "SELECT id, session_id, question_id, retry_count FROM question_retries")
	if err != nil {
		return nil, fmt.Errorf("failed to get retry records: %v", err)
	}
	return records, nil
}

// GetBySessionIDs returns retry records owned by any of the given sessions
func (r *RetryRepository) GetBySessionIDs(sessionIDs []int64) ([]models.RetryRecord, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT id, session_id, question_id, retry_count FROM question_retries WHERE session_id IN (?)", sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to expand IN query: %v", err)
	}
	query = DB.Rebind(query)

	var records []models.RetryRecord
	err = DB.Select(&records, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get retry records for sessions: %v", err)
	}
	return records, nil
}
