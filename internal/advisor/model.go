package advisor

import "time"

// Phase is the conversation state of a session.
type Phase string

const (
	PhaseGreeting             Phase = "greeting"
	PhaseAwaitingConfirmation Phase = "awaiting_confirmation"
	PhaseAwaitingPlanDetails  Phase = "awaiting_plan_details"
	PhaseProcessing           Phase = "processing"
)

// Session tracks one user conversation. Preference fields use pointers so
// "never provided" stays distinguishable from a legitimate zero value.
type Session struct {
	ID               string
	Phase            Phase
	Budget           *float64
	DataNeeded       *float64
	CurrentProvider  string // lowercased at ingestion
	WillingToSwitch  *bool
	NeedsRoaming     *bool
	SelectedPlanCode string
	CreatedAt        time.Time
	LastSeenAt       time.Time
}

// NewSession returns a fresh session in the greeting phase.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         id,
		Phase:      PhaseGreeting,
		CreatedAt:  now,
		LastSeenAt: now,
	}
}

// Reset returns the session to the greeting phase and clears collected
// preferences. There is no other way to discard gathered state.
func (s *Session) Reset() {
	s.Phase = PhaseGreeting
	s.Budget = nil
	s.DataNeeded = nil
	s.CurrentProvider = ""
	s.WillingToSwitch = nil
	s.NeedsRoaming = nil
	s.SelectedPlanCode = ""
}

// DetailsSubmitted reports whether the structured preference payload has been
// received for this session.
func (s *Session) DetailsSubmitted() bool {
	return s.Budget != nil && s.DataNeeded != nil && s.WillingToSwitch != nil && s.NeedsRoaming != nil
}
