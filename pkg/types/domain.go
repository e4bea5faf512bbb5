package types

// ModelStatus describes the outcome of a presence check, as printed by `localllmui check`.
type ModelStatus struct {
	// Model identifier as known to the runtime.
	// example: hf.co/doaonduty/llama-3.1-8b-instruct-gguf
	Model string `json:"model"`
	// One of found, not_found, error.
	// example: found
	Presence string `json:"presence"`
	// Probe used for the check (api or cli).
	// example: api
	Probe string `json:"probe"`
	// Provisioning state after the check (loading, ready, error).
	State string `json:"state,omitempty"`
	// Error detail when presence is error or provisioning failed.
	Error string `json:"error,omitempty"`
}
