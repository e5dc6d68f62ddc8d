package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is a non-2xx API response. Message carries the body's error or
// message field when the server provided one.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 API error.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 API error.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// decodeError turns a non-2xx response into *Error. Bodies are expected to
// be {"error": "..."} or {"message": "..."}; anything else falls back to
// the HTTP status text.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(body) > 0 {
		var payload struct {
			ErrorField string `json:"error"`
			Message    string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			if payload.ErrorField != "" {
				apiErr.Message = payload.ErrorField
			} else if payload.Message != "" {
				apiErr.Message = payload.Message
			}
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
