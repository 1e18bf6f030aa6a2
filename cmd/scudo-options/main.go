// Command scudo-options compiles the //scudo:options directive on a program's func main into
// scudo_options_gen.go, holding the compiled string, and scudo_options_cgo_gen.go, which defines the
// __scudo_default_options hook the engine reads at startup.
//
// Run it through go:generate from the directory holding func main:
//
//	//go:generate go run github.com/vkngwrapper/scudo/cmd/scudo-options
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/scudo/options"
	"golang.org/x/exp/slog"
)

var cmd Cmd

// Cmd is the command line arguments
type Cmd struct {
	// Output is the directory the generated files are written to. Defaults to the package directory.
	Output string
	// Verbose enables debug logging
	Verbose bool
}

var rootCmd = &cobra.Command{
	Use:   "scudo-options [dir]",
	Short: "Generate __scudo_default_options from a //scudo:options directive",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		level := slog.LevelInfo
		if cmd.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		return run(logger, dir, cmd.Output)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&cmd.Output, "output", "o", "", "Directory for the generated files (default: the package directory)")
	rootCmd.Flags().BoolVarP(&cmd.Verbose, "verbose", "v", false, "Log every step")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, dir string, output string) error {
	directive, err := options.FindDirective(dir)
	if err != nil {
		return err
	}
	if directive == nil {
		return errors.Newf("no %s directive found on func main in %s", options.DirectivePrefix, dir)
	}

	logger.Debug("found directive",
		slog.String("Position", directive.Pos.String()),
		slog.Int("Entries", len(directive.Entries)),
	)

	if output == "" {
		output = dir
	}

	files := []struct {
		name     string
		generate func(io.Writer, string, []options.Entry) error
	}{
		{options.GeneratedFileName, options.GenerateConstant},
		{options.GeneratedHookFileName, options.GenerateHook},
	}
	for _, file := range files {
		path := filepath.Join(output, file.name)
		if err := writeGenerated(path, file.generate, directive); err != nil {
			return err
		}

		logger.Info("wrote engine options", slog.String("File", path))
	}

	logger.Debug("compiled options", slog.String("Options", options.Compile(directive.Entries)))
	return nil
}

func writeGenerated(path string, generate func(io.Writer, string, []options.Entry) error, directive *options.Directive) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer file.Close()

	if err := generate(file, directive.Package, directive.Entries); err != nil {
		return errors.Wrapf(err, "generating %s", path)
	}

	return file.Close()
}
