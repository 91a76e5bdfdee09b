package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"ai-health-assistant-be/pkg/apperror"
)

// StatusError is returned by the HTTP based providers for non-2xx responses.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error: status %d, body: %s", e.Provider, e.StatusCode, e.Body)
}

// Classify maps a raw provider failure onto the ProviderError taxonomy.
// Errors that are already classified pass through untouched.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pe *apperror.ProviderError
	if errors.As(err, &pe) {
		return pe
	}

	return apperror.NewProviderError(kindOf(err), err)
}

func kindOf(err error) apperror.ProviderErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperror.KindTimeout
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests:
			return apperror.KindRateLimited
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return apperror.KindTimeout
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "RESOURCE_EXHAUSTED"),
		strings.Contains(strings.ToLower(msg), "quota"),
		strings.Contains(strings.ToLower(msg), "rate limit"):
		return apperror.KindRateLimited
	case strings.Contains(msg, "DEADLINE_EXCEEDED"):
		return apperror.KindTimeout
	case strings.Contains(msg, "SAFETY"):
		return apperror.KindSafetyBlocked
	}

	return apperror.KindUnknown
}

// SafetyBlocked builds the error used when a model refuses to answer.
func SafetyBlocked(reason string) error {
	return apperror.NewProviderError(apperror.KindSafetyBlocked, fmt.Errorf("response blocked: %s", reason))
}
