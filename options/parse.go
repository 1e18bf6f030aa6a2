package options

import (
	"fmt"
	"go/scanner"
	"go/token"
)

// Parse parses a comma separated list of key = value entries. A trailing comma is allowed, and a list
// may continue on the next line after a comma. Error positions are relative to the start of src.
func Parse(src string) ([]Entry, error) {
	return parseList(src, token.Position{Line: 1, Column: 1})
}

type listParser struct {
	fset    *token.FileSet
	scanner scanner.Scanner
	start   token.Position
	err     *SyntaxError

	pos token.Pos
	tok token.Token
	lit string

	// pending holds a token read ahead while deciding whether a newline ends the list
	pending *scannedToken
}

type scannedToken struct {
	pos token.Pos
	tok token.Token
	lit string
}

// parseList parses src, reporting errors as if src began at start in some file.
func parseList(src string, start token.Position) ([]Entry, error) {
	p := &listParser{
		fset:  token.NewFileSet(),
		start: start,
	}

	file := p.fset.AddFile(start.Filename, -1, len(src))
	p.scanner.Init(file, []byte(src), func(pos token.Position, msg string) {
		if p.err == nil {
			p.err = &SyntaxError{Pos: p.translate(pos), Msg: msg}
		}
	}, 0)

	var entries []Entry
	p.next()
	for !p.atEnd() {
		entry, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)

		if p.atEnd() {
			break
		}
		if p.tok != token.COMMA {
			return nil, p.errorf(p.pos, "expected ',' between options, found %s", p.describe())
		}
		p.next()
	}

	if p.err != nil {
		return nil, p.err
	}

	return entries, nil
}

func (p *listParser) scan() (token.Pos, token.Token, string) {
	if p.pending != nil {
		pending := p.pending
		p.pending = nil
		return pending.pos, pending.tok, pending.lit
	}

	return p.scanner.Scan()
}

// next advances to the following token. The scanner inserts a semicolon at a newline that follows an
// identifier or literal; it ends the list only when nothing but whitespace comes after it. Otherwise it
// stays in the stream as a newline token, which is not a valid separator.
func (p *listParser) next() {
	p.pos, p.tok, p.lit = p.scan()
	if !p.isNewline() {
		return
	}

	pos, tok, lit := p.scan()
	if tok == token.EOF {
		p.pos, p.tok, p.lit = pos, tok, lit
		return
	}
	p.pending = &scannedToken{pos: pos, tok: tok, lit: lit}
}

func (p *listParser) isNewline() bool {
	return p.tok == token.SEMICOLON && p.lit == "\n"
}

func (p *listParser) atEnd() bool {
	return p.tok == token.EOF
}

func (p *listParser) describe() string {
	if p.isNewline() {
		return "newline"
	}
	if p.lit != "" && p.tok != token.SEMICOLON {
		return fmt.Sprintf("%q", p.lit)
	}

	return fmt.Sprintf("%q", p.tok.String())
}

func (p *listParser) translate(pos token.Position) token.Position {
	translated := token.Position{
		Filename: p.start.Filename,
		Offset:   p.start.Offset + pos.Offset,
		Line:     p.start.Line + pos.Line - 1,
		Column:   pos.Column,
	}
	if pos.Line == 1 {
		translated.Column = p.start.Column + pos.Offset
	}

	return translated
}

func (p *listParser) errorf(pos token.Pos, format string, args ...any) error {
	if p.err != nil {
		return p.err
	}

	return &SyntaxError{
		Pos: p.translate(p.fset.Position(pos)),
		Msg: fmt.Sprintf(format, args...),
	}
}

func (p *listParser) parseEntry() (Entry, error) {
	if p.tok != token.IDENT {
		return Entry{}, p.errorf(p.pos, "expected an option name, found %s", p.describe())
	}
	key := p.lit

	p.next()
	if p.tok != token.ASSIGN {
		return Entry{}, p.errorf(p.pos, "expected '=' after %s, found %s", key, p.describe())
	}

	p.next()
	value, err := p.parseValue()
	if err != nil {
		return Entry{}, err
	}

	return Entry{Key: key, Value: value}, nil
}

// parseValue consumes a value and the token after it. A literal that runs straight into another token,
// like 3.14x, is rejected as a whole.
func (p *listParser) parseValue() (Value, error) {
	valuePos := p.pos
	var value Value

	switch p.tok {
	case token.SUB:
		p.next()
		if p.tok != token.INT && p.tok != token.FLOAT {
			return Value{}, p.errorf(valuePos, valueMessage)
		}
		value = Value{Kind: ValueNumber, Text: "-" + p.lit}
	case token.INT, token.FLOAT:
		value = Value{Kind: ValueNumber, Text: p.lit}
	case token.IDENT:
		if p.lit != "true" && p.lit != "false" {
			return Value{}, p.errorf(valuePos, valueMessage)
		}
		value = Value{Kind: ValueBool, Text: p.lit}
	default:
		return Value{}, p.errorf(valuePos, valueMessage)
	}

	end := p.pos + token.Pos(len(p.lit))
	p.next()
	if p.err != nil {
		return Value{}, p.err
	}
	if !p.atEnd() && !p.isNewline() && p.tok != token.COMMA && p.pos == end {
		return Value{}, p.errorf(valuePos, valueMessage)
	}

	return value, nil
}
