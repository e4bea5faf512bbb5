package httpapi

import (
	"encoding/json"
	"net/http"

	"localllmui/pkg/types"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeChatError reports a chat failure as a 200 error payload, which is what
// the page expects. The code field is omitted.
func writeChatError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, types.ErrorResponse{Error: msg})
}

// writeJSONError writes a consistent JSON error payload with a non-200 status.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}
