package options

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// Flag is one key=value pair read back out of an options string
type Flag struct {
	Key   string
	Value string
}

// ParseFlags reads an options string the way the engine does at startup: pairs are separated by ':',
// ',' or whitespace, and parsing stops at the first NUL.
func ParseFlags(s string) ([]Flag, error) {
	if end := strings.IndexByte(s, 0); end >= 0 {
		s = s[:end]
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ',' || unicode.IsSpace(r)
	})

	flags := make([]Flag, 0, len(fields))
	for _, field := range fields {
		key, value, found := strings.Cut(field, "=")
		if !found || key == "" {
			return nil, errors.Newf("expected key=value, found %q", field)
		}
		flags = append(flags, Flag{Key: key, Value: value})
	}

	return flags, nil
}
