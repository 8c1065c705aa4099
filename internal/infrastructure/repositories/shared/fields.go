package shared

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
)

// FirstNonEmpty returns the first non-empty value, in priority order.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// OwnerType returns the explicit owner kind or the default.
func OwnerType(kind string) string {
	return FirstNonEmpty(kind, entities.DefaultOwnerType)
}

// ParseTime parses an RFC 3339 timestamp; empty or malformed values yield nil.
func ParseTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil || parsed.IsZero() {
		return nil
	}
	return &parsed
}

// TimePtr returns nil for the zero time.
func TimePtr(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	return &value
}

// DecodeContent decodes base64 file content; other encodings are returned as is.
func DecodeContent(content, encoding string) string {
	if encoding != "base64" {
		return content
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content, "\n", ""))
	if err != nil {
		return content
	}
	return string(decoded)
}

// EncodeContent encodes plain text for the contents APIs.
func EncodeContent(content string) string {
	return base64.StdEncoding.EncodeToString([]byte(content))
}

// AuthenticatedCloneURL embeds credentials into an HTTPS clone URL.
func AuthenticatedCloneURL(cloneURL, username, token string) string {
	if token == "" || !strings.HasPrefix(cloneURL, "https://") {
		return cloneURL
	}
	return strings.Replace(cloneURL, "https://", "https://"+username+":"+token+"@", 1)
}
