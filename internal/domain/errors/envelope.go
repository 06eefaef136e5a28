package errors

import "net/http"

// ErrorInfo is the "error" member of an API error body.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// MetaInfo carries the request ID the middleware assigned, so a client can
// quote it when reporting a failed call.
type MetaInfo struct {
	RequestID string `json:"request_id,omitempty"`
}

// SuccessResponse wraps the payload of every 2xx reply.
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse wraps every non-2xx reply.
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// NewErrorInfo builds the error member for status. Details never leave the
// server on 5xx, 401 or 403 replies, and an empty string counts as none.
func NewErrorInfo(status int, code, message string, details any) *ErrorInfo {
	if status >= http.StatusInternalServerError || status == http.StatusUnauthorized || status == http.StatusForbidden {
		details = nil
	}
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}

	return &ErrorInfo{Code: code, Message: message, Details: details}
}
