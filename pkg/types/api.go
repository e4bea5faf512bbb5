package types

// ChatRequest is the body accepted by POST /chat.
type ChatRequest struct {
	// Free-text user message forwarded to the model.
	// example: Why is the sky blue?
	Message string `json:"message" example:"Why is the sky blue?"`
}

// ChatResponse is returned by POST /chat when the model answered.
type ChatResponse struct {
	// Text generated by the model.
	// example: Rayleigh scattering.
	Response string `json:"response" example:"Rayleigh scattering."`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: message is required
	Error string `json:"error" example:"message is required"`
	// HTTP status code, set only when the status is not 200.
	// example: 503
	Code int `json:"code,omitempty" example:"503"`
}
