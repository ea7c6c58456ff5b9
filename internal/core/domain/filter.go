package domain

import (
	"fmt"
	"sort"
)

// MaxFilterTokens is the largest number of tokens a single contains-any query accepts
const MaxFilterTokens = 30

// LibraryFilter maps a field name to its selected values
type LibraryFilter map[string][]string

// FilterToken flattens a field value pair into the indexed token form
func FilterToken(field, value string) string {
	return field + "_" + value
}

// Tokens flattens the filter into sorted, unique field_value tokens.
// Fields without selected values do not participate.
func (f LibraryFilter) Tokens() ([]string, error) {
	seen := make(map[string]struct{})
	tokens := make([]string, 0)
	for field, values := range f {
		if field == "" {
			continue
		}
		for _, value := range values {
			if value == "" {
				continue
			}
			token := FilterToken(field, value)
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	if len(tokens) > MaxFilterTokens {
		return nil, fmt.Errorf("%w: %d selected, at most %d", ErrTooManyFilterValues, len(tokens), MaxFilterTokens)
	}
	sort.Strings(tokens)
	return tokens, nil
}

// IsEmpty reports whether no value is selected
func (f LibraryFilter) IsEmpty() bool {
	for _, values := range f {
		for _, v := range values {
			if v != "" {
				return false
			}
		}
	}
	return true
}
