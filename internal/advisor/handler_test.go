package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"switchplan-backend/internal/llm"
	"switchplan-backend/internal/shared/server/middleware"
)

var errTransportDown = errors.New("boom")

func newTestRouter(t *testing.T, client llm.Client) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := newTestService(t, testPlans(), client)
	r := gin.New()
	r.Use(middleware.Session())
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeReply(t *testing.T, w *httptest.ResponseRecorder) replyResponse {
	t.Helper()
	var resp replyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode reply: %v (body %s)", err, w.Body.String())
	}
	return resp
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v (body %s)", err, w.Body.String())
	}
	return resp.Error.Code
}

func TestChatFlowEndToEnd(t *testing.T) {
	stub := &stubLLM{reply: "Hi! Want help finding a better plan?"}
	r, _ := newTestRouter(t, stub)

	// First turn without a session header mints one.
	w := doJSON(t, r, http.MethodPost, "/api/v1/chat/query", "", map[string]string{"message": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("query status = %d, body %s", w.Code, w.Body.String())
	}
	sessionID := w.Header().Get("X-Session-Id")
	if sessionID == "" {
		t.Fatalf("expected a minted X-Session-Id header")
	}
	reply := decodeReply(t, w)
	if reply.Phase != string(PhaseAwaitingConfirmation) {
		t.Fatalf("expected awaiting_confirmation, got %s", reply.Phase)
	}
	if reply.SessionID != sessionID {
		t.Fatalf("expected body session id %q to match header %q", reply.SessionID, sessionID)
	}

	// Confirm, carrying the session forward.
	w = doJSON(t, r, http.MethodPost, "/api/v1/chat/query", sessionID, map[string]string{"message": "yes please"})
	reply = decodeReply(t, w)
	if reply.Phase != string(PhaseAwaitingPlanDetails) {
		t.Fatalf("expected awaiting_plan_details, got %s", reply.Phase)
	}

	// Structured details.
	w = doJSON(t, r, http.MethodPost, "/api/v1/chat/details", sessionID, map[string]string{
		"budget": "50", "dataNeeded": "5", "currentProvider": "Rogers",
		"willingToSwitch": "yes", "needsRoaming": "no",
	})
	reply = decodeReply(t, w)
	if reply.Phase != string(PhaseProcessing) {
		t.Fatalf("expected processing, got %s", reply.Phase)
	}

	// Recommendation composes the rendered shortlist through the LLM.
	stub.mu.Lock()
	stub.reply = "Your best match is the Fido 5GB plan (code F1)!"
	stub.mu.Unlock()
	w = doJSON(t, r, http.MethodPost, "/api/v1/chat/recommendation", sessionID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("recommendation status = %d, body %s", w.Code, w.Body.String())
	}
	reply = decodeReply(t, w)
	if !strings.Contains(reply.Reply, "F1") {
		t.Fatalf("expected the recommendation reply, got %q", reply.Reply)
	}

	// Picking a plan by code is answered locally.
	calls := stub.callCount()
	w = doJSON(t, r, http.MethodPost, "/api/v1/chat/select", sessionID, map[string]string{"planCode": "F1"})
	reply = decodeReply(t, w)
	if !strings.Contains(reply.Reply, "Fido 5GB") || !strings.Contains(reply.Reply, "$40.00") {
		t.Fatalf("expected the plan description, got %q", reply.Reply)
	}
	if stub.callCount() != calls {
		t.Fatalf("plan selection must not call the LLM")
	}
}

func TestChatQueryEmptyBodyIsAValidTurn(t *testing.T) {
	r, _ := newTestRouter(t, &stubLLM{reply: "Hello!"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/query", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for an empty body, got %d: %s", w.Code, w.Body.String())
	}
	reply := decodeReply(t, w)
	if reply.Phase != string(PhaseAwaitingConfirmation) {
		t.Fatalf("expected the greeting to fire, got phase %s", reply.Phase)
	}
}

func TestChatQueryMalformedBody(t *testing.T) {
	r, _ := newTestRouter(t, &stubLLM{reply: "x"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/query", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if code := decodeErrorCode(t, w); code != ErrorCodeValidation {
		t.Fatalf("expected %s, got %s", ErrorCodeValidation, code)
	}
}

func TestChatUnavailableWhenLLMFails(t *testing.T) {
	stub := &stubLLM{err: errTransportDown}
	r, _ := newTestRouter(t, stub)

	w := doJSON(t, r, http.MethodPost, "/api/v1/chat/query", "s1", map[string]string{"message": "hi"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
	if code := decodeErrorCode(t, w); code != ErrorCodeUnavailable {
		t.Fatalf("expected %s, got %s", ErrorCodeUnavailable, code)
	}

	// The failed turn did not advance the session.
	stub.mu.Lock()
	stub.err = nil
	stub.reply = "Hello!"
	stub.mu.Unlock()
	w = doJSON(t, r, http.MethodPost, "/api/v1/chat/query", "s1", map[string]string{"message": "hi"})
	if got := decodeReply(t, w).Phase; got != string(PhaseAwaitingConfirmation) {
		t.Fatalf("expected the greeting to fire on retry, got %s", got)
	}
}

func TestChatBusySessionConflict(t *testing.T) {
	r, svc := newTestRouter(t, &stubLLM{reply: "x"})

	sess, err := svc.Store.Acquire(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer svc.Store.Release(context.Background(), sess)

	w := doJSON(t, r, http.MethodPost, "/api/v1/chat/query", "s1", map[string]string{"message": "hi"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if code := decodeErrorCode(t, w); code != ErrorCodeSessionBusy {
		t.Fatalf("expected %s, got %s", ErrorCodeSessionBusy, code)
	}
}

func TestChatRecommendationBeforeDetails(t *testing.T) {
	r, _ := newTestRouter(t, &stubLLM{reply: "x"})

	w := doJSON(t, r, http.MethodPost, "/api/v1/chat/recommendation", "s1", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if code := decodeErrorCode(t, w); code != ErrorCodeDetailsRequired {
		t.Fatalf("expected %s, got %s", ErrorCodeDetailsRequired, code)
	}
}

func TestChatSelectRequiresPlanCode(t *testing.T) {
	r, _ := newTestRouter(t, &stubLLM{reply: "x"})

	w := doJSON(t, r, http.MethodPost, "/api/v1/chat/select", "s1", map[string]string{"planCode": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
