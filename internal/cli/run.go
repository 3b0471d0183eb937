package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/aretw0/stepwise/internal/config"
	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	FormPath  string
	SessionID string
	// Fresh discards a saved session before starting.
	Fresh bool
	// Plain forces the line prompter even on a terminal.
	Plain  bool
	Output string
	Debug  bool
	Quiet  bool
	Config config.Config
}

// RunSession fills in the form interactively. Progress is persisted under
// the session ID; without one, a random ID is used with the in-memory store.
func RunSession(ctx context.Context, opts RunOptions, in io.Reader, out io.Writer) error {
	logger, err := createLogger(opts.Debug, opts.Config.LogLevel, true)
	if err != nil {
		return err
	}

	cfg := opts.Config
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
		cfg.Store = config.StoreMemory
	}

	backend, err := OpenBackend(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	engine, cleanup, err := createEngine(ctx, EngineOptions{FormPath: opts.FormPath, Output: opts.Output, Debug: opts.Debug, Redact: opts.Config.LogRedact}, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	sessions := backend.Sessions(logger)
	if opts.Fresh {
		if err := sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	state, created, err := sessions.LoadOrStart(ctx, sessionID, engine)
	if err != nil {
		return fmt.Errorf("failed to init session: %w", err)
	}

	prompter, interactive := choosePrompter(opts.Plain, in, out)
	runnerOpts := []runner.Option{
		runner.WithPrompter(prompter),
		runner.WithLogger(logger),
		runner.WithSessionID(sessionID),
		runner.WithStore(backend.Store),
	}
	if interactive {
		if render, err := tui.NewRenderer(""); err == nil {
			runnerOpts = append(runnerOpts, runner.WithRenderer(render))
		} else {
			logger.Warn("markdown rendering disabled", "err", err)
		}
		runnerOpts = append(runnerOpts, runner.WithHeaderStyle(tui.HeaderStyle(out)))
	}

	if !opts.Quiet {
		tui.PrintBanner(out, engine.Inspect().Title)
		if created {
			if opts.SessionID != "" {
				printSystemMessage(out, "Session '%s' active.", sessionID)
			}
		} else {
			printSystemMessage(out, "Resuming at step %d.", state.CurrentStep)
		}
	}

	interrupts := runner.WatchInterrupts(ctx)
	defer interrupts.Stop()

	final, runErr := runner.New(runnerOpts...).Run(interrupts.Context(), engine, state)
	if final == nil {
		final = state
	}

	switch {
	case interrupts.Settle(runErr):
		if !opts.Quiet {
			fmt.Fprintln(out)
			printSystemMessage(out, "Interrupted at step %d.", final.CurrentStep)
		}
		return nil
	case runErr != nil:
		return runErr
	}

	if !opts.Quiet && final.Status != domain.StatusSubmitted && opts.SessionID != "" {
		printSystemMessage(out, "Progress saved at step %d. Resume with --session %s.", final.CurrentStep, sessionID)
	}
	return nil
}
