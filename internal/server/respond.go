package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	verrors "github.com/matzehuels/algoviz/pkg/errors"
)

// errorBody is the JSON form of a failed request.
type errorBody struct {
	Code    verrors.Code `json:"code"`
	Message string       `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := verrors.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = verrors.ErrCodeInternal
	}
	msg := verrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = "internal error"
	}
	s.writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func statusFor(code verrors.Code) int {
	switch code {
	case verrors.ErrCodeBusy:
		return http.StatusConflict
	case verrors.ErrCodeNotFound, verrors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case verrors.ErrCodeInvalidInput, verrors.ErrCodeInvalidAlgorithm, verrors.ErrCodeInvalidSize,
		verrors.ErrCodeInvalidSpeed, verrors.ErrCodeInvalidCell, verrors.ErrCodeInvalidConfig,
		verrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decode reads an optional JSON body into v. An empty body leaves v as is.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return verrors.Wrap(verrors.ErrCodeInvalidInput, err, "malformed request body")
	}
	return nil
}
