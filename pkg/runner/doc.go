/*
Package runner drives a wizard session in a terminal.

It renders each step through a Prompter, feeds the answers to the engine,
offers the navigation actions the current view enables and persists the
state after every change when a store is configured.

# Key Components

  - Runner: the loop (render, prompt, apply, save).
  - Prompter: how fields and action menus are asked.
  - TextPrompter: line-based prompts, suitable for pipes and tests.
  - SurveyPrompter: interactive widgets for a real terminal.

# Usage

	r := runner.New(
		runner.WithPrompter(runner.NewSurveyPrompter()),
		runner.WithStore(store),
		runner.WithSessionID("user-1"),
	)

	state, err := r.Run(ctx, engine, nil)
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
