package options

import "go/token"

const (
	valueMessage     = "expected a valid value like '3.14' or 'true'"
	placementMessage = DirectivePrefix + " is only allowed on func main"
)

// SyntaxError is returned for a malformed option list or a misplaced directive. Pos locates the
// offending token in the source file when the list came from a directive.
type SyntaxError struct {
	Pos token.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}

	return e.Msg
}
