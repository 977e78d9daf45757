package shortener

// Code is the opaque, non-empty token that identifies a shortened URL.
type Code string

// NewCode validates raw as a short code. Any non-empty string is accepted.
func NewCode(raw string) (Code, error) {
	if raw == "" {
		return "", ErrEmptyCode
	}

	return Code(raw), nil
}

func (c Code) String() string {
	return string(c)
}

// CodeGenerator generates candidate short codes.
type CodeGenerator func() string
