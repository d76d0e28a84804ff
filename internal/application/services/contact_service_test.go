package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zinklake/shuttle/internal/adapters/memory"
	"github.com/zinklake/shuttle/internal/application/services"
	"github.com/zinklake/shuttle/internal/domain/entities"
	apperrors "github.com/zinklake/shuttle/pkg/errors"
)

var testContactInfo = entities.ContactInfo{
	Phone:   "918-212-4822",
	Email:   "info@zinklakerecreation.com",
	Website: "https://zinklakerecreation.com",
}

func TestContactService_Create(t *testing.T) {
	repo := memory.NewContactAdapter(10)
	svc := services.NewContactService(repo, testContactInfo, 0)

	msg := &entities.ContactMessage{Name: " Sam ", Email: "sam@example.com", Message: "Lost a jacket on Bus #3"}
	require.NoError(t, svc.Create(context.Background(), msg))

	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.Equal(t, "Sam", msg.Name)

	recent := repo.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, msg.ID, recent[0].ID)
}

func TestContactService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		msg   entities.ContactMessage
		field string
	}{
		{"missing name", entities.ContactMessage{Email: "a@b.co", Message: "hi"}, "name"},
		{"missing email", entities.ContactMessage{Name: "A", Message: "hi"}, "email"},
		{"missing message", entities.ContactMessage{Name: "A", Email: "a@b.co"}, "message"},
		{"no at sign", entities.ContactMessage{Name: "A", Email: "ab.co", Message: "hi"}, "email"},
		{"no dot in domain", entities.ContactMessage{Name: "A", Email: "a@bco", Message: "hi"}, "email"},
		{"whitespace inside", entities.ContactMessage{Name: "A", Email: "a b@c.co", Message: "hi"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewContactAdapter(10)
			svc := services.NewContactService(repo, testContactInfo, 0)

			msg := tt.msg
			err := svc.Create(context.Background(), &msg)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.field, appErr.Field)
			assert.Empty(t, repo.Recent())
		})
	}
}

func TestContactService_Create_AbandonedWhileSending(t *testing.T) {
	repo := memory.NewContactAdapter(10)
	svc := services.NewContactService(repo, testContactInfo, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Create(ctx, &entities.ContactMessage{Name: "A", Email: "a@b.co", Message: "hi"})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeCanceled))
	assert.Empty(t, repo.Recent())
}

func TestContactService_Info(t *testing.T) {
	svc := services.NewContactService(memory.NewContactAdapter(1), testContactInfo, 0)
	assert.Equal(t, testContactInfo, svc.Info())
}
