package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/runner"
)

// createLogger configures the application logger. Interactive sessions log
// warnings and above unless debugging, so prompts stay readable.
func createLogger(debug bool, level string, interactive bool) (*slog.Logger, error) {
	if debug {
		return logging.New(slog.LevelDebug), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if interactive && lvl < slog.LevelWarn {
		lvl = slog.LevelWarn
	}
	return logging.New(lvl), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether both streams are attached to a terminal.
func isTerminal(in io.Reader, out io.Writer) bool {
	fi, ok := in.(*os.File)
	if !ok {
		return false
	}
	fo, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(fi.Fd())) && term.IsTerminal(int(fo.Fd()))
}

// choosePrompter picks interactive widgets on a terminal and the line
// prompter otherwise.
func choosePrompter(plain bool, in io.Reader, out io.Writer) (runner.Prompter, bool) {
	if !plain && isTerminal(in, out) {
		return runner.NewSurveyPrompter(), true
	}
	return runner.NewTextPrompter(in, out), false
}
