package provision

// State represents the provisioning lifecycle.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Snapshot is a read-only projection of the provisioner state.
type Snapshot struct {
	State State
	Model string
	Err   string
}
