package models

// Question represents a single question in the question bank
type Question struct {
	ID            int64    `json:"id" db:"id"`
	QuestionText  string   `json:"question_text" db:"question_text"`
	AnswerType    string   `json:"answer_type" db:"answer_type"` // e.g. "Multiple Choice"
	CorrectAnswer string   `json:"correct_answer" db:"correct_answer"`
	Images        []string `json:"images" db:"-"` // Ordered image references, stored serialized in the images column
}
