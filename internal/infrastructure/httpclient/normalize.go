package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

const maxDetailLength = 300

type statusRule struct {
	code      entities.ErrorCode
	retryable bool
	template  string
}

//nolint:gochecknoglobals // read-only lookup table
var statusRules = map[int]statusRule{
	http.StatusBadRequest:          {entities.ErrorCodeBadRequest, false, "Bad request: %s"},
	http.StatusUnauthorized:        {entities.ErrorCodeUnauthorized, false, "Authentication failed: %s"},
	http.StatusForbidden:           {entities.ErrorCodeForbidden, false, "Access forbidden: %s"},
	http.StatusNotFound:            {entities.ErrorCodeNotFound, false, "Resource not found: %s"},
	http.StatusConflict:            {entities.ErrorCodeConflict, false, "Request conflicts with the current state: %s"},
	http.StatusUnprocessableEntity: {entities.ErrorCodeValidation, false, "Validation failed: %s"},
	http.StatusTooManyRequests:     {entities.ErrorCodeRateLimited, true, "Rate limit exceeded: %s"},
	http.StatusInternalServerError: {entities.ErrorCodeInternalServer, true, "Internal server error: %s"},
	http.StatusBadGateway:          {entities.ErrorCodeBadGateway, true, "Bad gateway: %s"},
	http.StatusServiceUnavailable:  {entities.ErrorCodeServiceUnavailable, true, "Service unavailable: %s"},
	http.StatusGatewayTimeout:      {entities.ErrorCodeGatewayTimeout, true, "Gateway timeout: %s"},
}

// Normalize turns any failure of a backend call into the standard error record.
// Failures carrying a response are classified by status, failures of a sent request
// become NETWORK_ERROR and anything that happened before a request existed becomes
// UNKNOWN_ERROR. Records that are already normalized pass through untouched.
func Normalize(err error, provider string, verbose bool) *entities.APIError {
	if err == nil {
		return nil
	}

	var normalized *entities.APIError
	if errors.As(err, &normalized) {
		return normalized
	}

	var responseErr *ResponseError
	var requestErr *RequestError
	switch {
	case errors.As(err, &responseErr):
		normalized = fromResponse(responseErr, provider, err)
	case errors.As(err, &requestErr):
		normalized = &entities.APIError{
			Code:      entities.ErrorCodeNetwork,
			Message:   fmt.Sprintf("%s: no response received: %v", provider, requestErr.Cause),
			Provider:  provider,
			Retryable: true,
			Cause:     err,
		}
	default:
		normalized = &entities.APIError{
			Code:     entities.ErrorCodeUnknown,
			Message:  fmt.Sprintf("%s: %v", provider, err),
			Provider: provider,
			Cause:    err,
		}
	}

	if verbose {
		logger.WithFields(logger.Fields{
			"provider":  normalized.Provider,
			"code":      normalized.Code,
			"status":    normalized.StatusCode,
			"retryable": normalized.Retryable,
			"stack":     string(debug.Stack()),
		}).Debug(normalized.Message)
	}

	return normalized
}

func fromResponse(responseErr *ResponseError, provider string, cause error) *entities.APIError {
	detail := extractDetail(responseErr.Body, responseErr.StatusCode)

	rule, known := statusRules[responseErr.StatusCode]
	if !known {
		rule = statusRule{
			code:     entities.HTTPStatusCode(responseErr.StatusCode),
			template: fmt.Sprintf("Unexpected status %d: %%s", responseErr.StatusCode),
		}
	}

	template := rule.template
	switch responseErr.StatusCode {
	case http.StatusNotFound:
		if strings.Contains(detail, "user") || strings.Contains(detail, "User") {
			template = "User not found: %s"
		}
	case http.StatusConflict:
		switch {
		case strings.Contains(detail, "already exists"):
			template = "Resource already exists: %s"
		case strings.Contains(detail, "Conflict"):
			template = "Conflict: %s"
		}
	}

	return &entities.APIError{
		Code:       rule.code,
		Message:    provider + ": " + fmt.Sprintf(template, detail),
		Provider:   provider,
		StatusCode: responseErr.StatusCode,
		Retryable:  rule.retryable,
		Cause:      cause,
	}
}

// extractDetail prefers the body's "message" field, then "error", then the body text.
func extractDetail(body []byte, status int) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range []string{"message", "error"} {
			if text, ok := fields[key].(string); ok && text != "" {
				return text
			}
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" || strings.HasPrefix(text, "{") || strings.HasPrefix(text, "<") {
		if statusText := http.StatusText(status); statusText != "" {
			return statusText
		}
		return fmt.Sprintf("status %d", status)
	}
	if len(text) > maxDetailLength {
		cut := maxDetailLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text
}
