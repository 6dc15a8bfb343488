package http

import (
	"encoding/json"
	"net/http"

	apperrors "consultly/pkg/errors"
)

type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Warning string `json:"warning,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError maps an error onto the wire contract: AppErrors carry their own
// status code and safe detail; anything else is reported as a generic 500.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	resp := ErrorResponse{
		Error:   appErr.Message,
		Details: appErr.Details,
	}
	if appErr.Code == apperrors.CodeInternal {
		// Never leak store or transport detail to the submitter.
		resp = ErrorResponse{Error: "Something went wrong. Please try again later."}
	}

	return WriteJSON(w, appErr.StatusCode(), resp)
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// WriteAccepted reports a successful booking, optionally annotated with a
// notification warning that must not change the success flag.
func WriteAccepted(w http.ResponseWriter, data any, warning string) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
		Warning: warning,
	})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
