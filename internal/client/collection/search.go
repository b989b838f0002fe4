package collection

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
)

type Field string

const (
	FieldName  Field = "name"
	FieldPhone Field = "phone"
)

func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldName, FieldPhone:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

// Query is the active search. A blank Term matches everything.
type Query struct {
	Field Field
	Term  string
}

// Matcher reports whether item satisfies a search on field. term is
// already trimmed and lower-cased.
type Matcher[T any] func(item T, field Field, term string) bool

// MatchUser matches on "first last", first or last name, or on the phone
// number, all as case-insensitive substrings.
func MatchUser(u models.User, field Field, term string) bool {
	switch field {
	case FieldName:
		first := strings.ToLower(u.FirstName)
		last := strings.ToLower(u.LastName)
		return strings.Contains(first+" "+last, term) ||
			strings.Contains(first, term) ||
			strings.Contains(last, term)
	case FieldPhone:
		return strings.Contains(strings.ToLower(u.PhoneNumber), term)
	default:
		return false
	}
}
