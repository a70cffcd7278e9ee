package validation

import (
	"fmt"
	"net/url"
	"strings"
)

const maxURLLength = 2048

// NormalizeBaseURL validates a backend base URL and returns it without a
// trailing slash. The scheme defaults to https when omitted.
func NormalizeBaseURL(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("base URL cannot be empty")
	}
	if len(input) > maxURLLength {
		return "", fmt.Errorf("base URL too long (max %d characters)", maxURLLength)
	}
	if strings.ContainsAny(input, "<>\"'`") {
		return "", fmt.Errorf("base URL contains invalid characters")
	}

	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		input = "https://" + input
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("base URL must use http or https")
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("base URL must have a hostname")
	}
	if parsed.User != nil {
		return "", fmt.Errorf("base URL must not carry credentials")
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return "", fmt.Errorf("base URL must not have a query or fragment")
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/")
	return parsed.String(), nil
}
