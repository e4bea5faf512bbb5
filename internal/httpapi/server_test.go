package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type mockModel struct {
	mu        sync.Mutex
	name      string
	invokeErr error
	panicMsg  string
	prompts   []string
}

func (m *mockModel) Model() string { return m.name }

func (m *mockModel) Invoke(ctx context.Context, prompt string) (string, error) {
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	err := m.invokeErr
	m.mu.Unlock()
	if err != nil {
		return "", err
	}
	return prompt, nil
}

func (m *mockModel) setErr(err error) {
	m.mu.Lock()
	m.invokeErr = err
	m.mu.Unlock()
}

func newTestMux(model ChatModel) http.Handler {
	return NewMux(model, Options{Logger: zerolog.Nop()})
}

func postChat(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v body=%q", err, w.Body.String())
	}
	return w, out
}

func TestChat_EchoesModelOutput(t *testing.T) {
	h := newTestMux(&mockModel{name: "m"})
	w, out := postChat(t, h, `{"message":"hello"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	if out["response"] != "hello" {
		t.Fatalf("unexpected body: %+v", out)
	}
	if _, ok := out["error"]; ok {
		t.Fatalf("error key must be absent on success: %+v", out)
	}
}

func TestChat_BlankMessageRejected(t *testing.T) {
	m := &mockModel{name: "m"}
	h := newTestMux(m)
	_, out := postChat(t, h, `{"message":" "}`)
	if _, ok := out["error"]; !ok {
		t.Fatalf("blank message must be rejected: %+v", out)
	}
	if len(m.prompts) != 0 {
		t.Fatalf("model must not be invoked for a blank message")
	}
}

func TestChat_MissingMessage(t *testing.T) {
	h := newTestMux(&mockModel{name: "m"})
	for _, body := range []string{`{}`, `{"msg":"hi"}`, `not-json`, ``, `{"message":42}`} {
		w, out := postChat(t, h, body)
		if w.Code != http.StatusOK {
			t.Fatalf("%q: status=%d", body, w.Code)
		}
		if _, ok := out["error"]; !ok {
			t.Fatalf("%q: expected error key, got %+v", body, out)
		}
		if _, ok := out["response"]; ok {
			t.Fatalf("%q: response key must be absent, got %+v", body, out)
		}
	}
}

func TestChat_WrongContentType(t *testing.T) {
	h := newTestMux(&mockModel{name: "m"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "content type must be application/json") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestChat_ContentTypeCaseInsensitive(t *testing.T) {
	h := newTestMux(&mockModel{name: "m"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "Application/JSON; charset=utf-8")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"response":"hi"`) {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestChat_BodyTooLarge(t *testing.T) {
	h := NewMux(&mockModel{name: "m"}, Options{Logger: zerolog.Nop(), MaxBodyBytes: 64})
	big := `{"message":"` + strings.Repeat("a", 128) + `"}`
	_, out := postChat(t, h, big)
	if out["error"] != errInvalidJSON.Error() {
		t.Fatalf("expected invalid JSON error for oversized body, got %+v", out)
	}
}

func TestChat_InvokeErrorThenRecovers(t *testing.T) {
	m := &mockModel{name: "m", invokeErr: errors.New("model runner has unexpectedly stopped")}
	h := newTestMux(m)
	w, out := postChat(t, h, `{"message":"hi"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if out["error"] != "model runner has unexpectedly stopped" {
		t.Fatalf("unexpected body: %+v", out)
	}

	m.setErr(nil)
	_, out = postChat(t, h, `{"message":"again"}`)
	if out["response"] != "again" {
		t.Fatalf("server must keep serving after an error: %+v", out)
	}
}

func TestChat_PanicIsRecovered(t *testing.T) {
	h := newTestMux(&mockModel{name: "m", panicMsg: "boom"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from recoverer, got %d", w.Code)
	}
}

func TestChat_NoModelIsUnavailable(t *testing.T) {
	h := newTestMux(nil)
	w, out := postChat(t, h, `{"message":"hi"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if out["error"] != "model not loaded" {
		t.Fatalf("unexpected body: %+v", out)
	}
	if _, ok := out["response"]; ok {
		t.Fatalf("response key must be absent: %+v", out)
	}
}

func TestChat_GetNotAllowed(t *testing.T) {
	h := newTestMux(&mockModel{name: "m"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestChat_BaseContextCanceled(t *testing.T) {
	base, cancel := context.WithCancel(context.Background())
	cancel()
	m := &blockingModel{}
	h := NewMux(m, Options{Logger: zerolog.Nop(), BaseContext: base})
	_, out := postChat(t, h, `{"message":"hi"}`)
	if out["error"] != context.Canceled.Error() {
		t.Fatalf("expected canceled error, got %+v", out)
	}
}

// blockingModel waits for its context; used for the shutdown path.
type blockingModel struct{}

func (blockingModel) Model() string { return "m" }
func (blockingModel) Invoke(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestIndex(t *testing.T) {
	h := newTestMux(&mockModel{name: "m"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content-type=%s", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"Local LLM UI", "<script>", "fetch(endpoint", "'/chat'", "JSON.stringify({ message: userInput })"} {
		if !strings.Contains(body, want) {
			t.Fatalf("index page missing %q", want)
		}
	}
}

func TestIndex_ServedWithoutModel(t *testing.T) {
	h := newTestMux(nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Local LLM UI") {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestMux(nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz(t *testing.T) {
	w := httptest.NewRecorder()
	newTestMux(&mockModel{name: "m"}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz_NotReady(t *testing.T) {
	w := httptest.NewRecorder()
	newTestMux(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "loading") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestCORSAndSecurityHeaders(t *testing.T) {
	h := NewMux(&mockModel{name: "m"}, Options{
		Logger: zerolog.Nop(),
		CORS:   CORSOptions{Enabled: true, AllowedOrigins: []string{"*"}},
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected X-Content-Type-Options=nosniff, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected CORS header Access-Control-Allow-Origin to be set, got empty")
	}
}

func TestCORSDisabledByDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	newTestMux(nil).ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected CORS header %q", got)
	}
}
