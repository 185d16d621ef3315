// Package validator normalizes user-supplied text fields the same way for
// prompts, album names and captions: strip markup-ish characters, trim, then
// bound the length.
package validator

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// blacklist 与原表单校验保持一致
const blacklist = `&<>/{}().'";`

const maxTextLength = 100

var (
	ErrEmpty   = errors.New("value is required")
	ErrTooLong = errors.New("value must be less than 100 characters")
)

// NormalizeText strips blacklisted characters and surrounding whitespace,
// then enforces the 1-100 character bound. Returns the cleaned value.
func NormalizeText(value string) (string, error) {
	var sb strings.Builder
	for _, r := range value {
		if !strings.ContainsRune(blacklist, r) {
			sb.WriteRune(r)
		}
	}

	cleaned := strings.TrimSpace(sb.String())
	if cleaned == "" {
		return "", ErrEmpty
	}
	if utf8.RuneCountInString(cleaned) > maxTextLength {
		return "", ErrTooLong
	}
	return cleaned, nil
}
