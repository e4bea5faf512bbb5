package provision

import (
	"context"
	"errors"
	"sync"

	"localllmui/internal/llm"
)

// fakeRuntime is an in-memory llm.Runtime that records calls.
type fakeRuntime struct {
	mu        sync.Mutex
	presence  llm.Presence
	pullErr   error
	invokeErr error
	pulls     []string
	probes    []string
	invokes   []string
}

func (f *fakeRuntime) Presence(ctx context.Context, model string) llm.Presence {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes = append(f.probes, model)
	return f.presence
}

func (f *fakeRuntime) Pull(ctx context.Context, model string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pulls = append(f.pulls, model)
	return f.pullErr
}

func (f *fakeRuntime) Invoke(ctx context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	f.invokes = append(f.invokes, model)
	f.mu.Unlock()
	if f.invokeErr != nil {
		return "", f.invokeErr
	}
	return prompt, nil
}

func (f *fakeRuntime) pullCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pulls)
}

var errDaemonDown = errors.New("dial tcp 127.0.0.1:11434: connect: connection refused")
