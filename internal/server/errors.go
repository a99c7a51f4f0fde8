package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/jobboard/internal/apperrors"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	return apperrors.HTTPStatus(err)
}

// errorResponse renders err. Server-side failures are logged and their
// details withheld from the client.
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	resp := ErrorResponse{Error: err.Error()}

	var ae *apperrors.Error
	if errors.As(err, &ae) {
		resp.Error = ae.Message
		resp.Fields = ae.Fields
	}

	if status >= http.StatusInternalServerError {
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		}
		if ae != nil {
			fields = append(fields, zap.ByteString("stack", ae.StackTrace()))
		}
		s.logger.Error("request failed", fields...)
		resp = ErrorResponse{Error: http.StatusText(status)}
	}

	s.jsonResponse(w, status, resp)
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, op string, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		msg := "Invalid request body: " + err.Error()
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		return apperrors.Validation(op, map[string]string{"body": msg})
	}
	return nil
}
