package options

import "strings"

// Compile serializes entries in order as key=value: and appends a single NUL terminator. Repeated keys
// are kept as repeated entries.
func Compile(entries []Entry) string {
	var builder strings.Builder
	for _, entry := range entries {
		builder.WriteString(entry.Key)
		builder.WriteByte('=')
		builder.WriteString(entry.Value.Text)
		builder.WriteByte(':')
	}
	builder.WriteByte(0)

	return builder.String()
}
