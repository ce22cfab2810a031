package amadeus

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Domenick1991/travelplanner/internal/domain"
)

// APIError is a non-2xx answer from the provider. It matches domain.ErrUpstream.
type APIError struct {
	StatusCode int
	Code       int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	msg := e.Title
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("amadeus %d: %s", e.StatusCode, msg)
}

func (e *APIError) Is(target error) bool {
	return target == domain.ErrUpstream
}

// decodeAPIError keeps the first entry of the provider's errors array.
func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Errors []struct {
			Code   int    `json:"code"`
			Title  string `json:"title"`
			Detail string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		apiErr.Code = payload.Errors[0].Code
		apiErr.Title = payload.Errors[0].Title
		apiErr.Detail = payload.Errors[0].Detail
	}
	return apiErr
}
