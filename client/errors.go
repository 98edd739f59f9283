package client

import (
	"encoding/json"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

const (
	// TextCodeUnauthorized marks a 401 from the backend.
	TextCodeUnauthorized = "UNAUTHORIZED"
	// TextCodeNetworkError marks transport-level failures (no response).
	TextCodeNetworkError = "NETWORK_ERROR"
	// TextCodeServerError marks 5xx responses.
	TextCodeServerError = "SERVER_ERROR"
)

// ErrUnauthorized is returned for every 401 response, after the unauthorized
// handler has fired.
var ErrUnauthorized = errors.New("request rejected: credential invalid or expired", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// apiMessage is the error envelope the backend uses for failed requests.
type apiMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) errorFromResponse(resp *http.Response, body []byte) error {
	msg := messageFromBody(body)
	if msg == "" {
		msg = strings.ToLower(http.StatusText(resp.StatusCode))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(msg, errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	case resp.StatusCode == http.StatusConflict:
		return errors.New(msg, errors.CategoryConflict).
			WithCode(errors.CodeConflict)
	case resp.StatusCode == http.StatusTooManyRequests:
		return errors.New(msg, errors.CategoryRateLimit)
	case resp.StatusCode >= 500:
		return errors.New(msg, errors.CategoryInternal).
			WithTextCode(TextCodeServerError).
			WithCode(errors.CodeInternal)
	default:
		return errors.New(msg, errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}
}

func messageFromBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope apiMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return ""
}

// IsNetworkError reports whether err is a transport failure: no response at
// all, as opposed to a server-issued error status. Front ends surface these
// as retry-suggested messages without touching session state.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	return errors.As(err, &richErr) && richErr.TextCode == TextCodeNetworkError
}

// IsUnauthorizedError reports whether err came from a 401 response.
func IsUnauthorizedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var richErr *errors.Error
	return errors.As(err, &richErr) && richErr.TextCode == TextCodeUnauthorized
}

// IsValidationError reports whether err is a local field-validation failure
// or a backend 4xx rejection that should render as field-level messages.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return true
	}
	var richErr *errors.Error
	return errors.As(err, &richErr) && richErr.Category == errors.CategoryValidation
}
