package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/go-github/v62/github"
)

// StatusFetchError is the status reported when no response was received.
const StatusFetchError = "FETCH_ERROR"

// FetchError classifies a failed GitHub request as network-level (no
// response) or API-level (an error status was returned).
type FetchError struct {
	Status  string
	Message string
	Network bool
	Err     error
}

func (e *FetchError) Error() string {
	if e.Network {
		return fmt.Sprintf("%s: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Guidance is the message shown to visitors when the profile cannot be loaded.
// configFile names the site configuration the operator should look at.
func (e *FetchError) Guidance(configFile string) string {
	if e.Network {
		return fmt.Sprintf("%s - check github.api_url in %s", e.Status, configFile)
	}
	return fmt.Sprintf("%s: %s - check github.username in %s", e.Status, e.Message, configFile)
}

func classify(err error) *FetchError {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return apiError(rateErr.Response, rateErr.Message, err)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return apiError(abuseErr.Response, abuseErr.Message, err)
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		return apiError(respErr.Response, respErr.Message, err)
	}
	return &FetchError{Status: StatusFetchError, Network: true, Err: err}
}

// apiError reports err as network-level when no response came back with it.
func apiError(resp *http.Response, message string, err error) *FetchError {
	if resp == nil {
		return &FetchError{Status: StatusFetchError, Network: true, Err: err}
	}
	return &FetchError{Status: strconv.Itoa(resp.StatusCode), Message: message, Err: err}
}
