package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
)

type errorCollector interface {
	IncErrors()
}

var collector errorCollector

// SetErrorCollector wires the metrics counter for 5xx responses. Call once at
// startup before the server accepts traffic.
func SetErrorCollector(c errorCollector) {
	collector = c
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func Error(w http.ResponseWriter, err error) {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		appErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	status := statusFor(appErr.Code)
	if status >= http.StatusInternalServerError && collector != nil {
		collector.IncErrors()
	}
	message := appErr.Message
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	JSON(w, status, errorEnvelope{Error: errorBody{Code: appErr.Code, Message: message, Fields: appErr.Fields}})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
