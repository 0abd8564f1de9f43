package metrics

import (
	"context"
	"net/http"

	"bookmetrics/internal/httpx"

	"github.com/rs/zerolog/log"
)

// FailureLabel is the fixed error label of a failed metrics request.
const FailureLabel = "Failed to get metrics"

// Getter is implemented by *Service.
type Getter interface {
	GetMetrics(ctx context.Context, author *string) (Result, error)
}

// HTTPHandler serves the metrics dashboard endpoint.
type HTTPHandler struct {
	service Getter
}

// NewHTTPHandler returns a handler backed by service.
func NewHTTPHandler(service Getter) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Get handles GET /?author=
// An absent author disables the filter; a present one, even empty, is matched
// case-insensitively. Provider failures become a 500 with the provider's message.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed", "Only GET is supported")
		return
	}

	var author *string
	if values, ok := r.URL.Query()["author"]; ok && len(values) > 0 {
		author = &values[0]
	}

	result, err := h.service.GetMetrics(r.Context(), author)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", httpx.RequestIDFrom(r)).
			Msg("error getting metrics")
		httpx.JSONError(w, http.StatusInternalServerError, FailureLabel, DescribeFailure(err))
		return
	}

	httpx.JSON(w, http.StatusOK, result)
}
