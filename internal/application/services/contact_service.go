package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/repositories"
	"github.com/zinklake/shuttle/pkg/delay"
	apperrors "github.com/zinklake/shuttle/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactService handles contact form submissions.
type ContactService struct {
	repo      repositories.ContactRepository
	info      entities.ContactInfo
	sendDelay time.Duration
}

// NewContactService creates a new contact service.
func NewContactService(repo repositories.ContactRepository, info entities.ContactInfo, sendDelay time.Duration) *ContactService {
	return &ContactService{repo: repo, info: info, sendDelay: sendDelay}
}

// Info returns the company's direct contact channels.
func (s *ContactService) Info() entities.ContactInfo {
	return s.info
}

// Create validates and stores a message. The message is dropped if ctx ends
// while it is being sent.
func (s *ContactService) Create(ctx context.Context, message *entities.ContactMessage) error {
	message.Name = strings.TrimSpace(message.Name)
	message.Email = strings.TrimSpace(message.Email)
	message.Message = strings.TrimSpace(message.Message)

	switch {
	case message.Name == "":
		return apperrors.NewValidationError("name", "name is required")
	case message.Email == "":
		return apperrors.NewValidationError("email", "email is required")
	case message.Message == "":
		return apperrors.NewValidationError("message", "message is required")
	case !emailPattern.MatchString(message.Email):
		return apperrors.NewValidationError("email", "email is invalid")
	}

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	send := delay.Start(ctx, s.sendDelay, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.Create(ctx, message)
	})
	// send ends with ctx, so waiting on Done reports whether the message
	// was stored rather than racing the caller's cancellation.
	<-send.Done()
	_, err := send.Wait(context.Background())
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewCanceledError("contact message not sent", err)
	}
	return err
}
