package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"localllmui/pkg/types"
)

var (
	errContentType    = errors.New("content type must be application/json")
	errInvalidJSON    = errors.New("invalid JSON body")
	errMessageMissing = errors.New("message is required")
)

// decodeChatRequest reads and validates a ChatRequest. The body is capped at limit bytes.
func decodeChatRequest(w http.ResponseWriter, r *http.Request, limit int64) (string, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return "", errContentType
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Oversized bodies land here too; the message stays generic.
		return "", errInvalidJSON
	}
	if strings.TrimSpace(req.Message) == "" {
		return "", errMessageMissing
	}
	return req.Message, nil
}

// chatHandler forwards one message to the model and returns its reply.
//
// @Summary      Chat with the local model
// @Description  Sends a single message (no history) and blocks until the model replies. Failures are reported as {"error"} with status 200.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      types.ChatRequest  true  "Chat message"
// @Success      200      {object}  types.ChatResponse
// @Failure      503      {object}  types.ErrorResponse
// @Router       /chat [post]
func chatHandler(model ChatModel, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(r, opts.Logger).With().Str("model", model.Model()).Logger()

		msg, err := decodeChatRequest(w, r, opts.maxBodyBytes())
		if err != nil {
			log.Error().Err(err).Msg("invalid chat request")
			observeChat(chatInvalid, start)
			writeChatError(w, err.Error())
			return
		}
		log.Info().Str("prompt", msg).Msg("received message")

		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(opts.baseContext(), r.Context())
		defer cancel()
		out, err := model.Invoke(ctx, msg)
		if err != nil {
			if r.Context().Err() != nil {
				log.Info().Dur("dur", time.Since(start)).Msg("client went away")
				observeChat(chatAborted, start)
				return
			}
			log.Error().Err(err).Dur("dur", time.Since(start)).Msg("chat failed")
			observeChat(chatError, start)
			writeChatError(w, err.Error())
			return
		}
		log.Info().Str("response", out).Dur("dur", time.Since(start)).Msg("returned response")
		observeChat(chatOK, start)
		writeJSON(w, http.StatusOK, types.ChatResponse{Response: out})
	}
}
