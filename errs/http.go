package errs

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// codes maps application error codes to HTTP status codes. Duplicate
// follow/like conflicts are deliberately a 400, not a 409, to keep the
// wire contract of the original API.
var codes = map[string]int{
	ECONFLICT:     http.StatusBadRequest,
	EFORBIDDEN:    http.StatusForbidden,
	EINTERNAL:     http.StatusInternalServerError,
	EINVALID:      http.StatusBadRequest,
	ENOTFOUND:     http.StatusNotFound,
	EUNAUTHORIZED: http.StatusUnauthorized,
}

// ErrorStatusCode returns the HTTP status code of an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// errorResponse is the JSON error envelope returned on every non-2xx response.
type errorResponse struct {
	Result       bool   `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

// ReturnError writes an error to the response as a structured JSON body with
// the matching HTTP status. Internal errors are logged and their message
// replaced by a generic one before leaving the process.
func ReturnError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := ErrorCode(err), ErrorMessage(err)

	if code == EINTERNAL {
		LogError(r, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ErrorStatusCode(code))
	json.NewEncoder(w).Encode(&errorResponse{
		Result:       false,
		ErrorType:    code,
		ErrorMessage: message,
	})
}

// LogError logs an error together with the request it occurred on.
func LogError(r *http.Request, err error) {
	zap.L().Error("http request error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
}
