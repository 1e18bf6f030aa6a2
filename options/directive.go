package options

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// DirectivePrefix starts a comment line that declares engine options
const DirectivePrefix = "//scudo:options"

// Directive is the option list declared on a program's func main
type Directive struct {
	Package string
	Pos     token.Position
	Entries []Entry
}

// FindDirective parses the non-test Go files in dir, skipping the generated options files, and returns
// the option list attached to func main. It returns nil if the package declares no options.
//
// A directive anywhere other than the doc comment of func main in package main is an error, since the
// generated hook is consulted once per process and belongs to the entry point.
func FindDirective(dir string) (*Directive, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}
	sort.Strings(paths)

	fset := token.NewFileSet()
	var files []*ast.File
	for _, path := range paths {
		name := filepath.Base(path)
		if strings.HasSuffix(name, "_test.go") || name == GeneratedFileName || name == GeneratedHookFileName {
			continue
		}

		file, err := parser.ParseFile(fset, path, nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		files = append(files, file)
	}

	return directiveFromFiles(fset, files)
}

func isDirective(comment *ast.Comment) bool {
	rest, found := strings.CutPrefix(comment.Text, DirectivePrefix)
	return found && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

func directiveFromFiles(fset *token.FileSet, files []*ast.File) (*Directive, error) {
	var directive *Directive
	claimed := make(map[*ast.Comment]bool)

	for _, file := range files {
		for _, decl := range file.Decls {
			fn, isFunc := decl.(*ast.FuncDecl)
			if !isFunc || fn.Doc == nil {
				continue
			}

			for _, comment := range fn.Doc.List {
				if !isDirective(comment) {
					continue
				}
				claimed[comment] = true

				if file.Name.Name != "main" || fn.Recv != nil || fn.Name.Name != "main" {
					return nil, &SyntaxError{Pos: fset.Position(comment.Slash), Msg: placementMessage}
				}

				start := fset.Position(comment.Slash)
				start.Offset += len(DirectivePrefix)
				start.Column += len(DirectivePrefix)

				entries, err := parseList(comment.Text[len(DirectivePrefix):], start)
				if err != nil {
					return nil, err
				}

				if directive == nil {
					directive = &Directive{
						Package: file.Name.Name,
						Pos:     fset.Position(comment.Slash),
					}
				}
				directive.Entries = append(directive.Entries, entries...)
			}
		}
	}

	// Anything left over is floating or attached to a declaration that is not a function.
	for _, file := range files {
		for _, group := range file.Comments {
			for _, comment := range group.List {
				if isDirective(comment) && !claimed[comment] {
					return nil, &SyntaxError{Pos: fset.Position(comment.Slash), Msg: placementMessage}
				}
			}
		}
	}

	return directive, nil
}
