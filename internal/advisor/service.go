package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"switchplan-backend/internal/catalog"
	"switchplan-backend/internal/llm"
	"switchplan-backend/internal/shared/telemetry"
)

// Service runs the conversational recommendation flow.
type Service struct {
	Store   Store
	Catalog *catalog.Holder
	LLM     llm.Client
	Timeout time.Duration
}

// Reply is the outcome of one conversation turn.
type Reply struct {
	Text  string
	Phase Phase
}

// DetailsInput is the structured preference payload. All fields arrive as
// strings; numeric fields default to zero when absent or malformed and
// boolean fields are true only for the accepted truthy tokens.
type DetailsInput struct {
	Budget          string
	DataNeeded      string
	CurrentProvider string
	WillingToSwitch string
	NeedsRoaming    string
}

// Query handles a free-text conversation turn according to the session phase.
func (s *Service) Query(ctx context.Context, sessionID, message string) (Reply, error) {
	sess, err := s.Store.Acquire(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}
	defer s.release(sess)

	switch sess.Phase {
	case PhaseGreeting:
		// The greeting transition fires on any input, empty included. The
		// reply comes verbatim from the text-generation service; the phase
		// only advances once that call has succeeded.
		reply, err := s.complete(ctx, sess.ID, greetingMessages(message))
		if err != nil {
			return Reply{}, err
		}
		sess.Phase = PhaseAwaitingConfirmation
		return Reply{Text: reply, Phase: sess.Phase}, nil

	case PhaseAwaitingConfirmation:
		lower := strings.ToLower(message)
		// "yes" is checked before "no": a message containing both takes the
		// affirmative branch.
		switch {
		case strings.Contains(lower, "yes"):
			sess.Phase = PhaseAwaitingPlanDetails
			return Reply{Text: msgConfirmed, Phase: sess.Phase}, nil
		case strings.Contains(lower, "no"):
			return Reply{Text: msgDeclined, Phase: sess.Phase}, nil
		default:
			return Reply{Text: msgReprompt, Phase: sess.Phase}, nil
		}

	case PhaseAwaitingPlanDetails:
		return Reply{Text: msgAwaitingDetails, Phase: sess.Phase}, nil

	default: // PhaseProcessing
		return Reply{Text: msgProcessingHint, Phase: sess.Phase}, nil
	}
}

// SubmitDetails ingests the structured preference payload and advances the
// session to processing regardless of field completeness.
func (s *Service) SubmitDetails(ctx context.Context, sessionID string, in DetailsInput) (Reply, error) {
	sess, err := s.Store.Acquire(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}
	defer s.release(sess)

	budget := parseAmount(in.Budget)
	dataNeeded := parseAmount(in.DataNeeded)
	willing := parseTruthy(in.WillingToSwitch)
	roaming := parseTruthy(in.NeedsRoaming)

	sess.Budget = &budget
	sess.DataNeeded = &dataNeeded
	sess.CurrentProvider = strings.ToLower(strings.TrimSpace(in.CurrentProvider))
	sess.WillingToSwitch = &willing
	sess.NeedsRoaming = &roaming
	sess.Phase = PhaseProcessing

	return Reply{Text: msgDetailsAck, Phase: sess.Phase}, nil
}

// Recommend filters and ranks the catalog against the stored preferences and
// asks the text-generation service to compose the final prose. The structured
// shortlist is never returned to the caller.
func (s *Service) Recommend(ctx context.Context, sessionID string) (Reply, error) {
	sess, err := s.Store.Acquire(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}
	defer s.release(sess)

	if !sess.DetailsSubmitted() {
		return Reply{}, ErrDetailsRequired
	}

	prefs := preferences{
		Budget:          *sess.Budget,
		DataNeeded:      *sess.DataNeeded,
		CurrentProvider: sess.CurrentProvider,
		WillingToSwitch: *sess.WillingToSwitch,
		NeedsRoaming:    *sess.NeedsRoaming,
	}

	snapshot := s.Catalog.Snapshot()
	matched := topRecommendations(snapshot.All(), prefs)

	var messages []llm.Message
	if len(matched) == 0 {
		// No locally synthesized fallback: the empty-result reply also comes
		// from the text-generation service.
		messages = noPlansMessages(prefs)
	} else {
		messages = recommendationMessages(formatPlanList(matched))
	}

	reply, err := s.complete(ctx, sess.ID, messages)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: reply, Phase: sess.Phase}, nil
}

// SelectPlan resolves a plan code against the catalog. Codes are trimmed of
// surrounding whitespace and then matched exactly; the reply is composed
// locally, never by the LLM.
func (s *Service) SelectPlan(ctx context.Context, sessionID, rawCode string) (Reply, error) {
	sess, err := s.Store.Acquire(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}
	defer s.release(sess)

	code := strings.TrimSpace(rawCode)
	plan, ok := s.Catalog.Snapshot().ByCode(code)
	if !ok {
		return Reply{Text: planNotFound(code), Phase: sess.Phase}, nil
	}

	sess.SelectedPlanCode = plan.Code
	return Reply{Text: describePlan(plan), Phase: sess.Phase}, nil
}

func (s *Service) complete(ctx context.Context, sessionID string, messages []llm.Message) (string, error) {
	if s.LLM == nil {
		return "", ErrUnavailable
	}

	callCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	out, err := newRetryingLLM(s.LLM, sessionID).Complete(callCtx, messages)
	if err != nil {
		telemetry.Error("advisor.llm_failure", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out, nil
}

// release writes the session back with a background context so a canceled
// request cannot strand the session in the busy state.
func (s *Service) release(sess *Session) {
	if err := s.Store.Release(context.Background(), sess); err != nil {
		telemetry.Error("advisor.session_release_failed", map[string]any{
			"session_id": sess.ID,
			"error":      err.Error(),
		})
	}
}
