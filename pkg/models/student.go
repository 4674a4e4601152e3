package models

// StudentProfile represents a student enrolled in the program
type StudentProfile struct {
	ID                 int64  `json:"id" db:"id"`
	Name               string `json:"name" db:"name"`
	Age                int    `json:"age" db:"age"`
	Supervisor         string `json:"supervisor" db:"supervisor"` // Assigned supervisor (BCBA) name
	EducationLevel     string `json:"education_level" db:"education_level"`
	CompletedSessions  int    `json:"completed_sessions" db:"completed_sessions"`
	IncompleteSessions int    `json:"incomplete_sessions" db:"incomplete_sessions"`
}
