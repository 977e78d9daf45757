package shortener

import (
	"fmt"

	whatwg "github.com/nlnwa/whatwg-url/url"
)

// parser follows the WHATWG URL Standard, the algorithm browsers apply to a
// Location header, so a stored URL redirects exactly where it was parsed to.
var parser = whatwg.NewParser()

// OriginalURL is a validated, normalized absolute URL.
type OriginalURL struct {
	value string
}

// NewOriginalURL parses raw as an absolute URL with no base.
// The value keeps the parser's serialization: lowercased scheme and host,
// IDNA host encoding, canonical IPv4, default port dropped, dot segments
// resolved and surrounding whitespace stripped.
func NewOriginalURL(raw string) (OriginalURL, error) {
	u, err := parser.Parse(raw)
	if err != nil {
		return OriginalURL{}, &URLParseError{Raw: raw, Err: err}
	}

	return OriginalURL{value: u.Href(false)}, nil
}

// MustOriginalURL is like NewOriginalURL but panics on error. Intended for tests and constants.
func MustOriginalURL(raw string) OriginalURL {
	u, err := NewOriginalURL(raw)
	if err != nil {
		panic(fmt.Sprintf("shortener: %v", err))
	}

	return u
}

func (u OriginalURL) String() string {
	return u.value
}
