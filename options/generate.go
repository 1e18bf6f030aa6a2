package options

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
)

const (
	// GeneratedFileName holds the compiled options as a Go constant and builds with or without cgo
	GeneratedFileName = "scudo_options_gen.go"
	// GeneratedHookFileName defines __scudo_default_options and only builds with cgo
	GeneratedHookFileName = "scudo_options_cgo_gen.go"
)

const generatedHeader = `// Code generated by scudo-options. DO NOT EDIT.

package {{.Package}}
`

var constantFile = template.Must(template.New(GeneratedFileName).Parse(generatedHeader + `
// scudoDefaultOptions is the NUL-terminated string __scudo_default_options hands to the engine.
const scudoDefaultOptions = {{.GoLiteral}}
`))

var hookFile = template.Must(template.New(GeneratedHookFileName).Parse(generatedHeader + `
/*
const char *__scudo_default_options(void) {
	return {{.CLiteral}};
}
*/
import "C"
`))

// cLiteral renders a NUL-terminated string as a C string literal. The literal's implicit terminator
// replaces the explicit one, so the engine sees exactly one NUL.
func cLiteral(compiled string) string {
	text := strings.TrimSuffix(compiled, "\x00")

	var builder strings.Builder
	builder.WriteByte('"')
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"' || c == '\\':
			builder.WriteByte('\\')
			builder.WriteByte(c)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&builder, "\\%03o", c)
		default:
			builder.WriteByte(c)
		}
	}
	builder.WriteByte('"')

	return builder.String()
}

// GenerateConstant writes the Go source of a file in package pkg declaring scudoDefaultOptions, the
// compiled entries including their NUL terminator.
func GenerateConstant(w io.Writer, pkg string, entries []Entry) error {
	return render(w, constantFile, pkg, entries)
}

// GenerateHook writes the Go source of a cgo file in package pkg that defines __scudo_default_options
// to return the compiled entries.
func GenerateHook(w io.Writer, pkg string, entries []Entry) error {
	return render(w, hookFile, pkg, entries)
}

func render(w io.Writer, file *template.Template, pkg string, entries []Entry) error {
	compiled := Compile(entries)

	var buffer bytes.Buffer
	err := file.Execute(&buffer, struct {
		Package   string
		CLiteral  string
		GoLiteral string
	}{
		Package:   pkg,
		CLiteral:  cLiteral(compiled),
		GoLiteral: strconv.Quote(compiled),
	})
	if err != nil {
		return errors.Wrapf(err, "executing %s template", file.Name())
	}

	source, err := format.Source(buffer.Bytes())
	if err != nil {
		return errors.Wrapf(err, "formatting %s", file.Name())
	}

	_, err = w.Write(source)
	return err
}
