/*
Package stepwise is a multi-step form wizard engine.

A form is an ordered list of steps, each grouping fields, and ends with a
read-only summary step. The engine is a stateless state machine: it decides
which fields are visible (conditional rules over other field values), whether
the current step is complete, which navigation actions are enabled, and what
the recap shows. Hosts own the I/O: a terminal runner, an HTTP API and an MCP
server are provided.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/stepwise"
		"github.com/aretw0/stepwise/pkg/domain"
	)

	func main() {
		ctx := context.Background()
		eng, err := stepwise.New(ctx, "./form.yaml")
		if err != nil {
			log.Fatal(err)
		}

		state, err := eng.Start(ctx, "session-123")
		if err != nil {
			log.Fatal(err)
		}

		state, _ = eng.Update(ctx, state, "email", domain.TextValue("a@b.com"))
		state, _ = eng.Advance(ctx, state) // inert until the step is complete

		view, _ := eng.Render(ctx, state)
		fmt.Println(view.Title, view.CanAdvance, view.Hint)
	}
*/
package stepwise
