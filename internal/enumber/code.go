package enumber

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidCode is returned by Parse when a string cannot be read as an E-number.
var ErrInvalidCode = errors.New("invalid E-number")

var (
	canonicalPattern = regexp.MustCompile(`^E\d{3,4}[A-Z]?$`)

	// spellingPattern accepts at most one separator, directly after the prefix.
	spellingPattern = regexp.MustCompile(`(?i)^(?:E[- ]?)?\d{3,4}[A-Z]?$`)
)

// Code is a canonical E-number such as "E100" or "E160A".
type Code string

// String returns the code as a plain string.
func (c Code) String() string {
	return string(c)
}

// Valid reports whether c is in canonical form.
func (c Code) Valid() bool {
	return canonicalPattern.MatchString(string(c))
}

// Normalize converts a matched token to its canonical spelling.
//
// Letters are upper-cased and the single "-" or space separator allowed
// between the prefix and the digits is removed. Tokens without the prefix
// (bare digit groups from lenient matching) receive one, so "E-200", "e200"
// and "200" all normalize to "E200".
//
// Normalize does not validate; use Parse for untrusted input.
func Normalize(token string) Code {
	var b strings.Builder
	b.Grow(len(token) + 1)
	for _, r := range token {
		if r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	s := b.String()
	if s != "" && s[0] != 'E' {
		s = "E" + s
	}
	return Code(s)
}

// Parse reads a single E-number written in any accepted spelling and returns
// its canonical form.
//
// Surrounding whitespace is ignored. Input is folded the same way Extract
// folds text, so fullwidth digits and typographic dashes are accepted. A
// single "-" or space may follow the E prefix; separators anywhere else make
// the input invalid.
//
// Returns an error wrapping ErrInvalidCode if s is not an E-number in one of
// these spellings.
func Parse(s string) (Code, error) {
	trimmed := strings.TrimSpace(Fold(s))
	if !spellingPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, s)
	}
	c := Normalize(trimmed)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, s)
	}
	return c, nil
}
