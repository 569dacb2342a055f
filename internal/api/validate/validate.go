package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers; each returns nil when the field is valid.

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

// LenBetween bounds the length in characters, not bytes, so multibyte
// names count the way users see them.
func LenBetween(field, value string, min, max int) *ErrField {
	if n := utf8.RuneCountInString(value); n < min || n > max {
		return &ErrField{Field: field, Msg: "length must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)}
	}
	return nil
}

func MaxLen(field, value string, max int) *ErrField {
	if utf8.RuneCountInString(value) > max {
		return &ErrField{Field: field, Msg: "length must be at most " + strconv.Itoa(max)}
	}
	return nil
}

func Matches(field, value string, re *regexp.Regexp, msg string) *ErrField {
	if !re.MatchString(value) {
		return &ErrField{Field: field, Msg: msg}
	}
	return nil
}

func IntBetween(field string, v, min, max int64) *ErrField {
	if v < min || v > max {
		return &ErrField{Field: field, Msg: "must be between " + strconv.FormatInt(min, 10) + " and " + strconv.FormatInt(max, 10)}
	}
	return nil
}

func UUID(field, value string) *ErrField {
	if _, err := uuid.Parse(value); err != nil {
		return &ErrField{Field: field, Msg: "must be a valid uuid"}
	}
	return nil
}
