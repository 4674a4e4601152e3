package reports

import (
	"strings"

	"github.com/example/edutrack/internal/database"
	"github.com/example/edutrack/pkg/models"
)

// UnknownQuestionType is the bucket used for retries whose question has been
// deleted since the retry was recorded.
const UnknownQuestionType = "Unknown"

// Aggregator computes read-only statistics over a student's session and retry
// history. It never mutates stored data.
type Aggregator struct {
	questions *database.QuestionRepository
	sessions  *database.SessionRepository
	retries   *database.RetryRepository
}

// NewAggregator creates a new report aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		questions: database.NewQuestionRepository(),
		sessions:  database.NewSessionRepository(),
		retries:   database.NewRetryRepository(),
	}
}

// SessionsForStudent returns every session record owned by the student
func (a *Aggregator) SessionsForStudent(studentID int64) ([]models.SessionRecord, error) {
	return a.sessions.GetByStudentID(studentID)
}

// CountByResponseType counts the student's sessions whose response type
// matches, ignoring case
func (a *Aggregator) CountByResponseType(studentID int64, responseType string) (int, error) {
	sessions, err := a.sessions.GetByStudentID(studentID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, s := range sessions {
		if strings.EqualFold(s.ResponseType, responseType) {
			count++
		}
	}
	return count, nil
}

// RetriesForStudent returns the retry records whose owning session belongs to
// the student
func (a *Aggregator) RetriesForStudent(studentID int64) ([]models.RetryRecord, error) {
	sessions, err := a.sessions.GetByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	sessionIDs := make([]int64, 0, len(sessions))
	for _, s := range sessions {
		sessionIDs = append(sessionIDs, s.ID)
	}

	return a.retries.GetBySessionIDs(sessionIDs)
}

// RetriesPerQuestion sums the retry counters of the student's retries per
// question ID
func (a *Aggregator) RetriesPerQuestion(studentID int64) (map[int64]int, error) {
	retries, err := a.RetriesForStudent(studentID)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]int)
	for _, r := range retries {
		totals[r.QuestionID] += r.RetryCount
	}
	return totals, nil
}

// RetriesByQuestionType tallies the student's retry records by the answer
// type of the retried question, one tally per record. Records whose question
// no longer exists fall under the "Unknown" bucket.
func (a *Aggregator) RetriesByQuestionType(studentID int64) (map[string]int, error) {
	retries, err := a.RetriesForStudent(studentID)
	if err != nil {
		return nil, err
	}

	questions, err := a.questions.GetAll()
	if err != nil {
		return nil, err
	}
	typeByID := make(map[int64]string, len(questions))
	for _, q := range questions {
		typeByID[q.ID] = q.AnswerType
	}

	tally := make(map[string]int)
	for _, r := range retries {
		answerType, ok := typeByID[r.QuestionID]
		if !ok || answerType == "" {
			answerType = UnknownQuestionType
		}
		tally[answerType]++
	}
	return tally, nil
}

// SessionsByPrompt tallies the student's sessions by the prompt level used,
// with absent prompts counted under "None"
func (a *Aggregator) SessionsByPrompt(studentID int64) (map[string]int, error) {
	sessions, err := a.sessions.GetByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	tally := make(map[string]int)
	for _, s := range sessions {
		prompt := s.PromptUsed
		if prompt == "" {
			prompt = models.PromptNone
		}
		tally[prompt]++
	}
	return tally, nil
}

// Summary collects the per-student statistics shown on the reports page
type Summary struct {
	StudentID          int64
	TotalSessions      int
	CorrectAnswers     int
	IncorrectAnswers   int
	PromptBreakdown    map[string]int
	RetriesPerQuestion map[int64]int
	RetriesByType      map[string]int
}

// BuildStudentSummary assembles the full statistics set for one student
func (a *Aggregator) BuildStudentSummary(studentID int64) (*Summary, error) {
	sessions, err := a.sessions.GetByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		StudentID:     studentID,
		TotalSessions: len(sessions),
	}
	for _, s := range sessions {
		if strings.EqualFold(s.ResponseType, models.ResponseCorrect) {
			summary.CorrectAnswers++
		}
		if strings.EqualFold(s.ResponseType, models.ResponseIncorrect) {
			summary.IncorrectAnswers++
		}
	}

	if summary.PromptBreakdown, err = a.SessionsByPrompt(studentID); err != nil {
		return nil, err
	}
	if summary.RetriesPerQuestion, err = a.RetriesPerQuestion(studentID); err != nil {
		return nil, err
	}
	if summary.RetriesByType, err = a.RetriesByQuestionType(studentID); err != nil {
		return nil, err
	}

	return summary, nil
}
