package llm

import (
	"context"
	"errors"
)

// Message is one role-tagged entry in a completion prompt.
type Message struct {
	Role    string
	Content string
}

// Conventional chat roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Client abstracts text-completion providers for the plan advisor. Given an
// ordered list of role-tagged messages it returns a single completion.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, messages []Message) (string, error) {
	_ = ctx
	_ = messages
	return "", ErrNotImplemented
}
