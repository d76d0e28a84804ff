package memory

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/repositories"
)

const defaultContactBacklog = 500

// ContactAdapter keeps the most recent contact messages in a bounded log.
type ContactAdapter struct {
	mu       sync.Mutex
	messages []entities.ContactMessage
	limit    int
}

var _ repositories.ContactRepository = (*ContactAdapter)(nil)

// NewContactAdapter creates a store keeping at most limit messages.
func NewContactAdapter(limit int) *ContactAdapter {
	if limit <= 0 {
		limit = defaultContactBacklog
	}
	return &ContactAdapter{limit: limit}
}

// Create records a message, dropping the oldest once the log is full.
func (a *ContactAdapter) Create(ctx context.Context, message *entities.ContactMessage) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.messages) >= a.limit {
		a.messages = a.messages[1:]
	}
	a.messages = append(a.messages, *message)

	log.Ctx(ctx).Info().
		Str("contact_id", message.ID).
		Str("subject", message.Subject).
		Msg("contact message received")
	return nil
}

// Recent returns the stored messages, oldest first.
func (a *ContactAdapter) Recent() []entities.ContactMessage {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]entities.ContactMessage, len(a.messages))
	copy(out, a.messages)
	return out
}
