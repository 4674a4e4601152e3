package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/edutrack/pkg/models"
)

// QuestionRepository handles database operations for questions
type QuestionRepository struct{}

// NewQuestionRepository creates a new repository instance
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{}
}

// encodeImages serializes the ordered image list into the stored text column
func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("failed to marshal images: %v", err)
	}
	return string(data), nil
}

// decodeImages restores the image list from the stored column. Malformed
// values degrade to an empty list rather than failing the read.
func decodeImages(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return []string{}
	}
	if images == nil {
		return []string{}
	}
	return images
}

// Create inserts a new question and assigns its ID
func (r *QuestionRepository) Create(question *models.Question) error {
	imagesJSON, err := encodeImages(question.Images)
	if err != nil {
		return err
	}

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO questions (question_text, answer_type, correct_answer, images)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		return DB.QueryRow(
			query,
			question.QuestionText,
			question.AnswerType,
			question.CorrectAnswer,
			imagesJSON,
		).Scan(&question.ID)
	}

	query := `
		INSERT INTO questions (question_text, answer_type, correct_answer, images)
		VALUES (?, ?, ?, ?)
	`
	result, err := DB.Exec(
		query,
		question.QuestionText,
		question.AnswerType,
		question.CorrectAnswer,
		imagesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	question.ID = id

	return nil
}

// GetByID returns a question by ID, or nil when no such question exists
func (r *QuestionRepository) GetByID(id int64) (*models.Question, error) {
	query := "SELECT id, question_text, answer_type, correct_answer, images FROM questions WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	var question models.Question
	var imagesJSON string
	err := DB.QueryRow(query, id).Scan(
		&question.ID,
		&question.QuestionText,
		&question.AnswerType,
		&question.CorrectAnswer,
		&imagesJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question by ID: %v", err)
	}

	question.Images = decodeImages(imagesJSON)
	return &question, nil
}

// GetAll returns all questions with their image lists decoded
func (r *QuestionRepository) GetAll() ([]models.Question, error) {
	rows, err := DB.Query("SELECT id, question_text, answer_type, correct_answer, images FROM questions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %v", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var question models.Question
		var imagesJSON string

		err := rows.Scan(
			&question.ID,
			&question.QuestionText,
			&question.AnswerType,
			&question.CorrectAnswer,
			&imagesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %v", err)
		}

		question.Images = decodeImages(imagesJSON)
		questions = append(questions, question)
	}

	return questions, rows.Err()
}

// Update modifies an existing question, re-encoding its image list
func (r *QuestionRepository) Update(question *models.Question) error {
	imagesJSON, err := encodeImages(question.Images)
	if err != nil {
		return err
	}

	query := `
		UPDATE questions SET
			question_text = ?,
			answer_type = ?,
			correct_answer = ?,
			images = ?
		WHERE id = ?
	`
	if DB.DriverName() == "postgres" {
		query = replacePlaceholders(query)
	}

	_, err = DB.Exec(
		query,
		question.QuestionText,
		question.AnswerType,
		question.CorrectAnswer,
		imagesJSON,
		question.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %v", err)
	}
	return nil
}

// Delete removes a question. Retry records that reference it are kept and
// show up as "Unknown" in reports.
func (r *QuestionRepository) Delete(question *models.Question) error {
	query := "DELETE FROM questions WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	_, err := DB.Exec(query, question.ID)
	return err
}
