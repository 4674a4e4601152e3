package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/edutrack/pkg/models"
)

// StudentRepository handles database operations for student profiles
type StudentRepository struct{}

// NewStudentRepository creates a new repository instance
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{}
}

// Create inserts a new student profile and assigns its ID
func (r *StudentRepository) Create(student *models.StudentProfile) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO students (name, age, supervisor, education_level, completed_sessions, incomplete_sessions)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		return DB.QueryRow(
			query,
			student.Name,
			student.Age,
			student.Supervisor,
			student.EducationLevel,
			student.CompletedSessions,
			student.IncompleteSessions,
		).Scan(&student.ID)
	}

	query := `
		INSERT INTO students (name, age, supervisor, education_level, completed_sessions, incomplete_sessions)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := DB.Exec(
		query,
		student.Name,
		student.Age,
		student.Supervisor,
		student.EducationLevel,
		student.CompletedSessions,
		student.IncompleteSessions,
	)
	if err != nil {
		return fmt.Errorf("failed to create student: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	student.ID = id

	return nil
}

// GetByID returns a student by ID, or nil when no such student exists
func (r *StudentRepository) GetByID(id int64) (*models.StudentProfile, error) {
	var student models.StudentProfile

	query := "SELECT id, name, age, supervisor, education_level, completed_sessions, incomplete_sessions FROM students WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	err := DB.Get(&student, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student by ID: %v", err)
	}
	return &student, nil
}

// GetAll returns all student profiles
func (r *StudentRepository) GetAll() ([]models.StudentProfile, error) {
	var students []models.StudentProfile
	err := DB.Select(&students, "SELECT id, name, age, supervisor, education_level, completed_sessions, incomplete_sessions FROM students ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %v", err)
	}
	return students, nil
}

// Update modifies an existing student profile. Updating a student that no
// longer exists affects zero rows and is not an error.
func (r *StudentRepository) Update(student *models.StudentProfile) error {
	query := `
		UPDATE students SET
			name = ?,
			age = ?,
			supervisor = ?,
			education_level = ?,
			completed_sessions = ?,
			incomplete_sessions = ?
		WHERE id = ?
	`
	if DB.DriverName() == "postgres" {
		query = replacePlaceholders(query)
	}

	_, err := DB.Exec(
		query,
		student.Name,
		student.Age,
		student.Supervisor,
		student.EducationLevel,
		student.CompletedSessions,
		student.IncompleteSessions,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %v", err)
	}
	return nil
}

// Delete removes a student profile. Sessions owned by the student are kept.
func (r *StudentRepository) Delete(student *models.StudentProfile) error {
	query := "DELETE FROM students WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	_, err := DB.Exec(query, student.ID)
	return err
}
