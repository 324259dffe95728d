package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for feedback intake.
type Service struct {
	Repo Repo
}

// Submit validates and stores a contact-form submission.
func (s *Service) Submit(ctx context.Context, name, email, message string) (Entry, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if name == "" || email == "" || message == "" {
		return Entry{}, ErrInvalidInput
	}
	if !strings.Contains(email, "@") {
		return Entry{}, ErrInvalidInput
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}
