// internal/authclient/errors.go
package authclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorKind classifies a structured backend rejection so forms can route
// it to the right place: field errors, the email field, or the banner.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindValidation
	KindConflict
)

// APIError is a structured rejection from the backend. Transport and
// parse failures are NOT APIErrors; they surface as plain errors and the
// caller shows a generic banner.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Messages   []string // per-field validation messages, Kind == KindValidation
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindValidation:
		return fmt.Sprintf("validation failed: %v", e.Messages)
	case KindConflict:
		return fmt.Sprintf("conflict: %s", e.Message)
	}
	return e.Message
}

// errorBody covers the three rejection shapes the backend emits:
// {message}, {message, errors[]}, and {statusCode, error, message}.
type errorBody struct {
	StatusCode int             `json:"statusCode"`
	ErrorText  string          `json:"error"`
	Message    json.RawMessage `json:"message"`
	Errors     []string        `json:"errors"`
}

// decodeAPIError turns a non-2xx response body into an APIError. A body
// that is not JSON at all still yields a generic APIError keyed off the
// HTTP status, so a misbehaving proxy cannot crash a form.
func decodeAPIError(httpStatus int, body []byte) *APIError {
	apiErr := &APIError{
		Kind:       KindGeneric,
		StatusCode: httpStatus,
		Message:    http.StatusText(httpStatus),
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return apiErr
	}

	if eb.StatusCode != 0 {
		apiErr.StatusCode = eb.StatusCode
	}

	// message may be a plain string or, NestJS-style, an array of
	// validation messages.
	var msg string
	var msgList []string
	if len(eb.Message) > 0 {
		if err := json.Unmarshal(eb.Message, &msg); err != nil {
			_ = json.Unmarshal(eb.Message, &msgList)
		}
	}

	if msg != "" {
		apiErr.Message = msg
	} else if eb.ErrorText != "" {
		apiErr.Message = eb.ErrorText
	}

	switch {
	case apiErr.StatusCode == http.StatusConflict:
		apiErr.Kind = KindConflict
	case len(eb.Errors) > 0:
		apiErr.Kind = KindValidation
		apiErr.Messages = eb.Errors
	case len(msgList) > 0:
		apiErr.Kind = KindValidation
		apiErr.Messages = msgList
	}

	return apiErr
}
