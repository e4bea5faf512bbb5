package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"localllmui/internal/httpapi"
	"localllmui/internal/llm"
	"localllmui/internal/ollama"
	"localllmui/internal/ollama/ollamatest"
	"localllmui/internal/provision"
)

// newClient returns a real Ollama API client pointed at the fake daemon.
func newClient(t *testing.T, d *ollamatest.Daemon) *ollama.Client {
	t.Helper()
	c, err := ollama.NewClient(ollama.ClientConfig{Host: d.Start(t), Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(c.CloseIdleConnections)
	return c
}

// newServer provisions model over rt and serves the resulting mux. The mux is
// built exactly the way serve does it, including the absent-model case.
func newServer(t *testing.T, rt llm.Runtime, model string) (*httptest.Server, *provision.Provisioner, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := provision.New(rt, zerolog.Nop())
	h, err := p.Resolve(ctx, model)

	var m httpapi.ChatModel
	if h != nil {
		m = h
	}
	srv := httptest.NewServer(httpapi.NewMux(m, httpapi.Options{Logger: zerolog.Nop()}))
	t.Cleanup(srv.Close)
	return srv, p, err
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
