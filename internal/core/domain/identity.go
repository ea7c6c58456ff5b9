package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

// ParseIdentityHeader extracts the user email from an IAP header value such as
// "accounts.google.com:user@example.com". The email is the part after the last colon.
func ParseIdentityHeader(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrMissingIdentity
	}

	email := value
	if idx := strings.LastIndex(value, ":"); idx != -1 {
		email = value[idx+1:]
	}
	email = strings.TrimSpace(email)

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, value)
	}
	return strings.ToLower(email), nil
}
