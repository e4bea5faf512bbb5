package provision

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"localllmui/internal/llm"
)

// Provisioner checks for a model in the runtime and pulls it when missing.
type Provisioner struct {
	rt  llm.Runtime
	log zerolog.Logger

	mu    sync.RWMutex
	state State
	model string
	err   string
}

// New returns a Provisioner over the given runtime.
func New(rt llm.Runtime, log zerolog.Logger) *Provisioner {
	return &Provisioner{
		rt:    rt,
		log:   log.With().Str("component", "provision").Logger(),
		state: StateLoading,
	}
}

// Check reports presence without pulling.
func (p *Provisioner) Check(ctx context.Context, model string) llm.Presence {
	return p.rt.Presence(ctx, model)
}

// Resolve returns a Handle for model, pulling it at most once if the presence
// check did not find it. A nil Handle means the model is absent.
func (p *Provisioner) Resolve(ctx context.Context, model string) (*Handle, error) {
	p.setState(StateLoading, model, "")
	log := p.log.With().Str("model", model).Logger()
	if strings.TrimSpace(model) == "" {
		return p.fail(log, invalidHandleError{msg: "empty model identifier"})
	}

	pres := p.rt.Presence(ctx, model)
	switch pres.Kind {
	case llm.PresenceFound:
		log.Info().Msg("model is present, loading it")
		h, err := NewHandle(model, invokerOf(p.rt))
		if err != nil {
			return p.fail(log, err)
		}
		provisionTotal.WithLabelValues(outcomeFound).Inc()
		p.setState(StateReady, model, "")
		return h, nil
	case llm.PresenceNotFound:
		log.Error().Msg("model is not present, pulling it")
	default:
		log.Error().Err(pres.Err).Msg("presence check failed, attempting pull")
	}

	if err := p.rt.Pull(ctx, model); err != nil {
		return p.fail(log, pullFailedError{model: model, err: err})
	}
	log.Info().Msg("model pulled, loading it")
	h, err := NewHandle(model, invokerOf(p.rt))
	if err != nil {
		return p.fail(log, err)
	}
	provisionTotal.WithLabelValues(outcomePulled).Inc()
	p.setState(StateReady, model, "")
	return h, nil
}

// invokerOf unwraps llm.Combined so a missing invoker is caught by NewHandle.
func invokerOf(rt llm.Runtime) llm.Invoker {
	if c, ok := rt.(llm.Combined); ok {
		return c.Invoker
	}
	return rt
}

func (p *Provisioner) fail(log zerolog.Logger, err error) (*Handle, error) {
	log.Error().Err(err).Msg("error loading model")
	provisionTotal.WithLabelValues(outcomeFailed).Inc()
	p.setState(StateError, "", err.Error())
	return nil, err
}

func (p *Provisioner) setState(s State, model, err string) {
	p.mu.Lock()
	p.state = s
	if model != "" {
		p.model = model
	}
	p.err = err
	p.mu.Unlock()
}

// Ready reports whether the last Resolve produced a handle.
func (p *Provisioner) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state == StateReady
}

// Snapshot returns a read-only view of the provisioner state.
func (p *Provisioner) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{State: p.state, Model: p.model, Err: p.err}
}
