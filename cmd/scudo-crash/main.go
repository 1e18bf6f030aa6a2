// Command scudo-crash deliberately misuses the heap so tests can check that the engine terminates the
// process. Usage:
//
//	scudo-crash [--engine native|sim] <action>
package main

//go:generate go run github.com/vkngwrapper/scudo/cmd/scudo-options

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/scudo/engine"
	"github.com/vkngwrapper/scudo/engine/sim"
	"github.com/vkngwrapper/scudo/internal/crash"
	"golang.org/x/exp/slog"
)

var cmd Cmd

// Cmd is the command line arguments
type Cmd struct {
	// Engine selects the engine to misuse
	Engine string
}

var rootCmd = &cobra.Command{
	Use:       "scudo-crash <action>",
	Short:     "Misuse the heap to check that the engine aborts",
	Long:      "Actions: " + strings.Join(crash.Names(), ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: crash.Names(),
	RunE: func(_ *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		return run(logger, cmd.Engine, args[0])
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&cmd.Engine, "engine", "e", engineNames[0], "Engine to misuse: "+strings.Join(engineNames, " or "))
}

//scudo:options delete_size_mismatch = true, release_to_os_interval_ms = -1
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func newEngine(logger *slog.Logger, name string) (engine.Engine, error) {
	switch name {
	case "native":
		return newNativeEngine()
	case "sim":
		// The sim engine reads the same option string the native engine gets from __scudo_default_options
		return sim.New(logger, sim.Options{DefaultOptions: scudoDefaultOptions})
	default:
		return nil, errors.Newf("unknown engine %q", name)
	}
}

func run(logger *slog.Logger, engineName string, action string) error {
	e, err := newEngine(logger, engineName)
	if err != nil {
		return err
	}

	logger.Info("running crash action", slog.String("Engine", engineName), slog.String("Action", action))
	if err := crash.Run(e, action); err != nil {
		return err
	}

	return errors.Newf("action %s returned without the engine aborting", action)
}
