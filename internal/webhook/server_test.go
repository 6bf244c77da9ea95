package webhook

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/agromatch/agromatch/internal/dialog"
	"github.com/agromatch/agromatch/internal/matching"
	"github.com/agromatch/agromatch/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	bot := dialog.New(dialog.Deps{
		Store:  st,
		Engine: matching.NewEngine(nil, nil),
	})
	return NewServer(":0", bot, nil)
}

func TestWebhookRepliesWithTwiML(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	form := url.Values{}
	form.Set("From", "whatsapp:+15551234567")
	form.Set("Body", "Hello")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/xml" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<Response>") || !strings.Contains(body, "<Message>") {
		t.Fatalf("expected twiml document, got %q", body)
	}
	if !strings.Contains(body, "select your role") {
		t.Fatalf("expected welcome reply inside twiml, got %q", body)
	}
}

func TestWebhookRejectsMissingFrom(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("Body=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestWebhookRejectsGet(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Fatalf("unexpected body: %q", w.Body.String())
	}
}

func TestWebhookAttachmentPassesThrough(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	// Walk a user to the ID step, then post with an attachment.
	send := func(values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		return w
	}

	const from = "whatsapp:+15559990001"
	for _, body := range []string{"Hello", "1", "Jane", "Durham"} {
		form := url.Values{}
		form.Set("From", from)
		form.Set("Body", body)
		send(form)
	}

	form := url.Values{}
	form.Set("From", from)
	form.Set("MediaUrl0", "https://api.twilio.com/media/ID123")
	w := send(form)

	if !strings.Contains(w.Body.String(), "Work Type Preferences") {
		t.Fatalf("expected preference prompt after id upload, got %q", w.Body.String())
	}
}
