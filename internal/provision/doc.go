// Package provision resolves a model identifier into a ready-to-use Handle at
// process start. It is structured into small files by concern:
//
//   - provisioner.go: Provisioner type, Resolve and Check.
//   - handle.go: the Handle bound to one model and one invoker.
//   - types.go: State and Snapshot.
//   - errors.go: error types and helpers (IsPullFailed, IsModelUnavailable, ...).
//   - metrics.go: Prometheus counters for provisioning outcomes.
//
// Resolve runs once; there is no background refresh. A nil Handle together
// with a non-nil error means the model is absent and chat must not be served.
package provision
