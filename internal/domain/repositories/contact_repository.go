package repositories

import (
	"context"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// ContactRepository accepts messages sent through the contact form.
type ContactRepository interface {
	Create(ctx context.Context, message *entities.ContactMessage) error
}
