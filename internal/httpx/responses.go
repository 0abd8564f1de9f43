package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes v with the given status code. The body is encoded before the
// status is sent, so a value that cannot be encoded becomes a 500 error.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
		statusCode = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{
			Error:   "Internal server error",
			Message: "failed to encode response",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

// JSONError writes an ErrorResponse with a fixed label and a descriptive message.
func JSONError(w http.ResponseWriter, statusCode int, label string, message string) {
	JSON(w, statusCode, ErrorResponse{
		Error:   label,
		Message: message,
	})
}
