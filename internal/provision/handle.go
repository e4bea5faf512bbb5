package provision

import (
	"context"
	"strings"

	"localllmui/internal/llm"
)

// Handle is a live reference to a provisioned model. It is immutable after
// construction and safe for concurrent use as long as the invoker is.
type Handle struct {
	model string
	inv   llm.Invoker
}

// NewHandle binds an invoker to a model identifier.
func NewHandle(model string, inv llm.Invoker) (*Handle, error) {
	if strings.TrimSpace(model) == "" {
		return nil, invalidHandleError{msg: "empty model identifier"}
	}
	if inv == nil {
		return nil, invalidHandleError{msg: "no invoker for " + model}
	}
	return &Handle{model: model, inv: inv}, nil
}

// Model returns the identifier the handle is bound to.
func (h *Handle) Model() string {
	if h == nil {
		return ""
	}
	return h.model
}

// Invoke runs one prompt through the model and blocks until it completes.
func (h *Handle) Invoke(ctx context.Context, prompt string) (string, error) {
	if h == nil {
		return "", ErrModelUnavailable
	}
	return h.inv.Invoke(ctx, h.model, prompt)
}
