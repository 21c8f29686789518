package notify

import (
	"io"
	"log"
	"sync"

	"github.com/sandeepkv93/flowo/internal/model"
)

// EmailSender delivers the email flavour of a task reminder. Calls are
// fire-and-forget.
type EmailSender interface {
	SendReminderEmail(task model.MaintenanceTask)
}

// LogEmailSender simulates delivery: it logs and remembers which tasks were
// sent.
type LogEmailSender struct {
	mu     sync.Mutex
	logger *log.Logger
	sent   []string
}

func NewLogEmailSender(logger *log.Logger) *LogEmailSender {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &LogEmailSender{logger: logger}
}

func (s *LogEmailSender) SendReminderEmail(task model.MaintenanceTask) {
	s.mu.Lock()
	s.sent = append(s.sent, task.ID)
	s.mu.Unlock()
	s.logger.Printf("[Email] Simulating email send for task: %s", task.Name)
}

func (s *LogEmailSender) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sent))
	copy(out, s.sent)
	return out
}
