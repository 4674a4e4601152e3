package scheduler

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/edutrack/internal/database"
	"github.com/example/edutrack/pkg/models"
)

// DefaultRefreshTime is when the daily counter refresh runs (UTC)
const DefaultRefreshTime = "02:00"

// Scheduler manages scheduled maintenance tasks for the engine
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
}

// Notifier receives a progress summary for each student whose counters
// changed. A nil Notifier disables notifications.
type Notifier interface {
	SendProgressSummary(student models.StudentProfile) error
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	refreshTime := DefaultRefreshTime
	if t := os.Getenv("COUNTER_REFRESH_TIME"); t != "" {
		refreshTime = t
	}

	// Recompute student session counters once a day
	s.scheduler.Every(1).Day().At(refreshTime).Do(s.runRefresh)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runRefresh() {
	if err := s.RefreshStudentCounters(); err != nil {
		log.Printf("Error refreshing student counters: %v", err)
	}
}

// RefreshStudentCounters recomputes the completed/incomplete session counters
// of every student profile from the session table. A session still in
// "Session Started" counts as incomplete, anything else counts as completed.
func (s *Scheduler) RefreshStudentCounters() error {
	studentRepo := database.NewStudentRepository()
	sessionRepo := database.NewSessionRepository()

	students, err := studentRepo.GetAll()
	if err != nil {
		return err
	}

	for i := range students {
		student := &students[i]

		sessions, err := sessionRepo.GetByStudentID(student.ID)
		if err != nil {
			log.Printf("Error loading sessions for student %d: %v", student.ID, err)
			continue
		}

		completed, incomplete := 0, 0
		for _, sess := range sessions {
			if strings.EqualFold(sess.ResponseType, models.ResponseSessionStarted) {
				incomplete++
			} else {
				completed++
			}
		}

		if completed == student.CompletedSessions && incomplete == student.IncompleteSessions {
			continue
		}

		student.CompletedSessions = completed
		student.IncompleteSessions = incomplete
		if err := studentRepo.Update(student); err != nil {
			log.Printf("Error updating counters for student %d: %v", student.ID, err)
			continue
		}

		if s.notifier != nil {
			if err := s.notifier.SendProgressSummary(*student); err != nil {
				log.Printf("Error sending progress summary for student %d: %v", student.ID, err)
			}
		}
	}

	return nil
}
