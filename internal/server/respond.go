package server

import (
	"encoding/json"
	"net/http"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// writeJSON marshals v as the response body.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggerFromContext(r.Context()).Error("encode response", "err", err)
	}
}

// writeRaw writes pre-serialized bytes with the given content type.
func (s *Server) writeRaw(w http.ResponseWriter, r *http.Request, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(data); err != nil {
		loggerFromContext(r.Context()).Error("write response", "err", err)
	}
}

// writeError maps a pipeline error to an HTTP status and JSON body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "code", code, "err", err)
	} else {
		loggerFromContext(r.Context()).Debug("request rejected", "code", code, "err", err)
	}
	s.writeJSON(w, r, status, errorBody{
		Code:  string(code),
		Error: errors.UserMessage(err),
	})
}

// httpStatus maps error codes onto HTTP statuses. Unknown codes are
// treated as internal failures.
func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSubject, errors.ErrCodeInvalidCategory,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidTheme, errors.ErrCodeInvalidChart:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodePivotNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// cacheHeader reports a cache hit as an X-Cache value.
func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
