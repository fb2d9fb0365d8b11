package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fjod/go_storefront/internal/client"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleRemoteError maps failures from the catalog/order services to
// HTTP responses. Upstream 4xx pass through with their status; upstream
// 5xx and transport failures become a 502.
func handleRemoteError(w http.ResponseWriter, err error) {
	var remote *client.RemoteError
	if errors.As(err, &remote) {
		if remote.StatusCode >= http.StatusBadRequest && remote.StatusCode < http.StatusInternalServerError {
			respondError(w, remote.StatusCode, "upstream_rejected", remote.Message)
			return
		}
		respondError(w, http.StatusBadGateway, "upstream_unavailable", remote.Message)
		return
	}

	log.Printf("remote call error: %v", err)
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
