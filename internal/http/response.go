package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-league/internal/league"
)

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, response{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Message: message})
}

// writeError maps a league error to its status code. Storage details are
// logged and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.FromContext(r.Context())
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, status, "internal server error")
		return
	}
	logger.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "reason", err)
	var lerr *league.Error
	if errors.As(err, &lerr) {
		writeMessage(w, status, lerr.Message)
		return
	}
	writeMessage(w, status, err.Error())
}

func statusFor(err error) int {
	if errors.Is(err, league.ErrResultAlreadyRecorded) {
		return http.StatusConflict
	}
	switch league.KindOf(err) {
	case league.KindNotFound:
		return http.StatusNotFound
	case league.KindForbidden:
		return http.StatusForbidden
	case league.KindInvalidState, league.KindValidation, league.KindDomainConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(message string) error {
	return &league.Error{Kind: league.KindValidation, Code: "bad_request", Message: message}
}
