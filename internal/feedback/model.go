package feedback

import "time"

// Entry is one contact-form submission.
type Entry struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
