package slack

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// envelope is the common part of every Web API response.
type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// APIError is a Web API call the platform rejected, either through an
// ok:false envelope or a non-200 status.
type APIError struct {
	Method     string
	Code       string
	StatusCode int
	// RetryAfter is how long the platform asked us to back off. Only
	// set on rate-limit responses.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack %s failed [%s] (status: %d)", e.Method, e.Code, e.StatusCode)
}

func (e *APIError) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
