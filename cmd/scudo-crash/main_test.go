package main

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/scudo/internal/crash"
	"github.com/vkngwrapper/scudo/options"
	"golang.org/x/exp/slog"
)

const (
	actionEnv = "SCUDO_CRASH_ACTION"
	engineEnv = "SCUDO_CRASH_ENGINE"
)

// TestMain turns the test binary into the crash fixture when it is re-executed by runCrash
func TestMain(m *testing.M) {
	if action := os.Getenv(actionEnv); action != "" {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		if err := run(logger, os.Getenv(engineEnv), action); err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
		}
		os.Exit(0)
	}

	os.Exit(m.Run())
}

func runCrash(t *testing.T, engineName string, action string) (*exec.ExitError, string) {
	child := exec.Command(os.Args[0], "-test.run=^$")
	child.Env = append(os.Environ(), actionEnv+"="+action, engineEnv+"="+engineName)

	var stderr bytes.Buffer
	child.Stderr = &stderr

	err := child.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "action %s exited cleanly: %s", action, stderr.String())

	return exitErr, stderr.String()
}

func TestActionsAbort(t *testing.T) {
	for _, engineName := range engineNames {
		for _, action := range crash.Names() {
			t.Run(engineName+"/"+action, func(t *testing.T) {
				exitErr, stderr := runCrash(t, engineName, action)
				require.False(t, exitErr.Success())
				require.Contains(t, stderr, "Scudo ERROR")
			})
		}
	}
}

func TestGeneratedOptionsMatchDirective(t *testing.T) {
	directive, err := options.FindDirective(".")
	require.NoError(t, err)
	require.NotNil(t, directive)
	require.Equal(t, "main", directive.Package)
	require.Equal(t, options.Compile(directive.Entries), scudoDefaultOptions)
}

func TestRunRejectsUnknownInput(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.EqualError(t, run(logger, "glibc", "double_free"), `unknown engine "glibc"`)
	require.ErrorContains(t, run(logger, "sim", "use_after_free"), "could not find an action")
}

func TestSimEngineReadsGeneratedOptions(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e, err := newEngine(logger, "sim")
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Contains(t, logs.String(), `"DeleteSizeMismatch":true`)
}
