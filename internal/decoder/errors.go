package decoder

import (
	"errors"
	"fmt"
)

// Decode failures. A failed decode never returns a partial tree.
var (
	ErrUnrecognizedRoot = errors.New("root element is not an AAS environment")
	ErrNoMarkupEntry    = errors.New("archive contains no markup document")
	ErrMalformedArchive = errors.New("archive cannot be read")
)

// ParseError reports which archive entry failed to decode.
type ParseError struct {
	Entry string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("decode markup: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Entry, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
