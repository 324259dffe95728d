package feedback

import (
	"context"
	"errors"
)

// ErrInvalidInput marks a submission that fails validation.
var ErrInvalidInput = errors.New("invalid input")

// Repo defines persistence operations for feedback entries.
type Repo interface {
	Create(ctx context.Context, entry Entry) error
}
