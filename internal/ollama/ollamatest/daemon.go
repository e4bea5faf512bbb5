// Package ollamatest provides an in-process stand-in for the Ollama HTTP API.
package ollamatest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// Daemon serves /api/tags, /api/pull and /api/chat. Chat replies echo the last
// user message with Prefix prepended. A successful pull adds the model to the list.
type Daemon struct {
	// Prefix is prepended to echoed chat content.
	Prefix string
	// PullErr makes every pull stream an error after the first status line.
	PullErr string
	// ChatErr makes every chat answer 500 with this message.
	ChatErr string
	// ListCode makes /api/tags answer with this status.
	ListCode int

	pulls atomic.Int32
	chats atomic.Int32

	mu       sync.Mutex
	models   []string
	lastChat map[string]any
}

// New returns a Daemon that already lists models.
func New(models ...string) *Daemon {
	return &Daemon{Prefix: "echo: ", models: append([]string(nil), models...)}
}

// Start serves d until the test ends and returns the base URL.
func (d *Daemon) Start(t testing.TB) string {
	t.Helper()
	ts := httptest.NewServer(d.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

// Pulls reports how many pull requests were received.
func (d *Daemon) Pulls() int { return int(d.pulls.Load()) }

// Chats reports how many chat requests were received.
func (d *Daemon) Chats() int { return int(d.chats.Load()) }

// Models returns the currently listed models.
func (d *Daemon) Models() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.models...)
}

// LastChat returns the decoded body of the most recent chat request.
func (d *Daemon) LastChat() map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastChat
}

// Handler returns the HTTP handler without starting a server.
func (d *Daemon) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", d.tags)
	mux.HandleFunc("/api/pull", d.pull)
	mux.HandleFunc("/api/chat", d.chat)
	return mux
}

func (d *Daemon) tags(w http.ResponseWriter, r *http.Request) {
	if d.ListCode != 0 {
		w.WriteHeader(d.ListCode)
		_, _ = io.WriteString(w, `{"error":"list failed"}`)
		return
	}
	type entry struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	}
	out := struct {
		Models []entry `json:"models"`
	}{Models: []entry{}}
	for _, m := range d.Models() {
		out.Models = append(out.Models, entry{Name: m, Model: m})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (d *Daemon) pull(w http.ResponseWriter, r *http.Request) {
	d.pulls.Add(1)
	var req struct {
		Model string `json:"model"`
		Name  string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	w.Header().Set("Content-Type", "application/x-ndjson")
	_, _ = io.WriteString(w, `{"status":"pulling manifest"}`+"\n")
	if d.PullErr != "" {
		b, _ := json.Marshal(map[string]string{"error": d.PullErr})
		_, _ = w.Write(append(b, '\n'))
		return
	}
	_, _ = io.WriteString(w, `{"status":"downloading","total":10,"completed":10}`+"\n")
	_, _ = io.WriteString(w, `{"status":"success"}`+"\n")

	name := req.Model
	if name == "" {
		name = req.Name
	}
	if name != "" {
		d.mu.Lock()
		d.models = append(d.models, name)
		d.mu.Unlock()
	}
}

func (d *Daemon) chat(w http.ResponseWriter, r *http.Request) {
	d.chats.Add(1)
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	d.mu.Lock()
	d.lastChat = body
	d.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if d.ChatErr != "" {
		w.WriteHeader(http.StatusInternalServerError)
		b, _ := json.Marshal(map[string]string{"error": d.ChatErr})
		_, _ = w.Write(b)
		return
	}
	content := ""
	if msgs, ok := body["messages"].([]any); ok && len(msgs) > 0 {
		if m, ok := msgs[len(msgs)-1].(map[string]any); ok {
			content, _ = m["content"].(string)
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model":   body["model"],
		"message": map[string]any{"role": "assistant", "content": d.Prefix + content},
		"done":    true,
	})
}
