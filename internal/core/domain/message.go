package domain

import (
	"errors"
	"strings"
)

// GenericErrorMessage is shown when an upstream error carries no usable text
const GenericErrorMessage = "an unexpected error occurred, please try again"

// UserMessage turns an upstream error into a message fit for display. Only the
// innermost cause is shown and vendor prefixes such as "Error: " are stripped, repeatedly.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUpstreamUnavailable) {
		return ErrUpstreamUnavailable.Error()
	}
	for next := errors.Unwrap(err); next != nil; next = errors.Unwrap(err) {
		err = next
	}
	return CleanMessage(err.Error())
}

// CleanMessage strips vendor prefixes from a raw message
func CleanMessage(msg string) string {
	msg = strings.TrimSpace(msg)
	for {
		trimmed := strings.TrimSpace(strings.TrimPrefix(msg, "Error:"))
		if trimmed == msg {
			break
		}
		msg = trimmed
	}
	if msg == "" {
		return GenericErrorMessage
	}
	return msg
}
