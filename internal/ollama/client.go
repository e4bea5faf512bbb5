// Package ollama implements llm.Runtime against a local Ollama daemon, either
// over its HTTP API or by shelling out to the ollama binary.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog"

	"localllmui/internal/llm"
)

// DefaultHost is where a stock Ollama install listens.
const DefaultHost = "http://127.0.0.1:11434"

// ClientConfig holds the tunables for Client.
type ClientConfig struct {
	Host        string
	Temperature float64 // 0 leaves the model default
	KeepAlive   time.Duration
	Logger      zerolog.Logger
}

// Client talks to the Ollama HTTP API.
type Client struct {
	api       *api.Client
	http      *http.Client
	host      string
	options   map[string]any
	keepAlive *api.Duration
	log       zerolog.Logger
}

var _ llm.Runtime = (*Client)(nil)

// NewClient builds a Client for the given host. A host without scheme is
// treated as http, matching how OLLAMA_HOST is usually written.
func NewClient(cfg ClientConfig) (*Client, error) {
	base, err := parseHost(cfg.Host)
	if err != nil {
		return nil, err
	}
	// No client timeout: pulls and generations can legitimately run for minutes.
	hc := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:    16,
			IdleConnTimeout: 90 * time.Second,
		},
	}
	c := &Client{
		api:  api.NewClient(base, hc),
		http: hc,
		host: base.String(),
		log:  cfg.Logger.With().Str("component", "ollama").Logger(),
	}
	if cfg.Temperature > 0 {
		c.options = map[string]any{"temperature": cfg.Temperature}
	}
	if cfg.KeepAlive > 0 {
		c.keepAlive = &api.Duration{Duration: cfg.KeepAlive}
	}
	return c, nil
}

func parseHost(host string) (*url.URL, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	u, err := url.Parse(strings.TrimRight(host, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", host, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse ollama host %q: missing host", host)
	}
	return u, nil
}

// Host returns the normalized base URL.
func (c *Client) Host() string { return c.host }

// CloseIdleConnections releases pooled connections to the daemon.
func (c *Client) CloseIdleConnections() { c.http.CloseIdleConnections() }

// Presence lists local models and looks for an exact (tag-normalized) match.
func (c *Client) Presence(ctx context.Context, model string) llm.Presence {
	resp, err := c.api.List(ctx)
	if err != nil {
		return llm.Failed(fmt.Errorf("list models: %w", err))
	}
	want := NormalizeName(model)
	for _, m := range resp.Models {
		if NormalizeName(m.Name) == want || NormalizeName(m.Model) == want {
			return llm.Found()
		}
	}
	return llm.NotFound()
}

// Pull fetches the model from the registry, logging progress status changes.
func (c *Client) Pull(ctx context.Context, model string) error {
	var last string
	err := c.api.Pull(ctx, &api.PullRequest{Model: model}, func(p api.ProgressResponse) error {
		if p.Status != last {
			last = p.Status
			c.log.Debug().Str("model", model).Str("status", p.Status).Int64("completed", p.Completed).Int64("total", p.Total).Msg("pull progress")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("pull %s: %w", model, err)
	}
	return nil
}

// Invoke sends a single user message (no history) and returns the reply.
func (c *Client) Invoke(ctx context.Context, model, prompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model:     model,
		Messages:  []api.Message{{Role: "user", Content: prompt}},
		Stream:    &stream,
		Options:   c.options,
		KeepAlive: c.keepAlive,
	}
	var sb strings.Builder
	err := c.api.Chat(ctx, req, func(r api.ChatResponse) error {
		sb.WriteString(r.Message.Content)
		return nil
	})
	if err != nil {
		var se api.StatusError
		if errors.As(err, &se) && se.ErrorMessage != "" {
			return "", fmt.Errorf("ollama: %s", se.ErrorMessage)
		}
		return "", err
	}
	return sb.String(), nil
}

// NormalizeName lowercases a model name and drops an implicit ":latest" tag.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ":latest")
}
