package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ratehub/ratehub/internal/repository"
	"github.com/ratehub/ratehub/internal/service"
)

const maxRequestBody = 1 << 20 // 1 MiB

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("failed to encode response", zap.Error(err))
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}

// respondServiceError maps core errors onto HTTP statuses. Anything not in
// the taxonomy is a storage failure and surfaces as a 500.
func (s *Server) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, service.ErrInvalidStars):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "stars must be an integer between 1 and 5")
	case errors.As(err, &validationErr):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", validationErr.Error())
	case errors.Is(err, service.ErrEmailTaken):
		s.respondError(w, http.StatusBadRequest, "EMAIL_TAKEN", "User already exists, please sign in")
	case errors.Is(err, service.ErrInvalidCredentials):
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		s.respondError(w, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action")
	default:
		s.logger.Error(fallback, zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
