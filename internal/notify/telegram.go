package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/edutrack/pkg/models"
)

// TelegramNotifier sends progress summaries to a supervisor chat
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}
	return &TelegramNotifier{
		api:    api,
		chatID: chatID,
	}, nil
}

// SendProgressSummary posts one student's updated session counters
func (n *TelegramNotifier) SendProgressSummary(student models.StudentProfile) error {
	text := fmt.Sprintf(
		"Progress update for %s (supervisor: %s)\nCompleted sessions: %d\nIncomplete sessions: %d",
		student.Name,
		student.Supervisor,
		student.CompletedSessions,
		student.IncompleteSessions,
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send progress summary: %v", err)
	}
	return nil
}
