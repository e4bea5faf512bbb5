package llm

// PresenceKind tags the result of a presence probe.
type PresenceKind int

const (
	PresenceFound PresenceKind = iota
	PresenceNotFound
	PresenceError
)

func (k PresenceKind) String() string {
	switch k {
	case PresenceFound:
		return "found"
	case PresenceNotFound:
		return "not_found"
	case PresenceError:
		return "error"
	default:
		return "unknown"
	}
}

// Presence is Found, NotFound, or Error(detail). Err is set only for PresenceError.
type Presence struct {
	Kind PresenceKind
	Err  error
}

func Found() Presence    { return Presence{Kind: PresenceFound} }
func NotFound() Presence { return Presence{Kind: PresenceNotFound} }

// Failed wraps a probe failure that is not a definite "not found".
func Failed(err error) Presence { return Presence{Kind: PresenceError, Err: err} }

func (p Presence) String() string { return p.Kind.String() }
