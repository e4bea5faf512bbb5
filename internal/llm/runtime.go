// Package llm defines the narrow surface the rest of the program needs from a
// local model runtime: a presence probe, a pull, and a blocking invocation.
package llm

import "context"

// Prober reports whether a model is available locally.
type Prober interface {
	Presence(ctx context.Context, model string) Presence
}

// Puller fetches a model into local availability.
type Puller interface {
	Pull(ctx context.Context, model string) error
}

// Invoker turns a prompt into generated text for the given model.
// Implementations must be safe for concurrent use.
type Invoker interface {
	Invoke(ctx context.Context, model, prompt string) (string, error)
}

// Runtime is the full surface used during provisioning.
type Runtime interface {
	Prober
	Puller
	Invoker
}

// Combined assembles a Runtime from separate parts, e.g. a CLI prober/puller
// with an HTTP invoker.
type Combined struct {
	Prober
	Puller
	Invoker
}

var _ Runtime = Combined{}
