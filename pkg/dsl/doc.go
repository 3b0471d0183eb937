/*
Package dsl provides a fluent Go API for defining Stepwise forms in code.

It is an alternative to YAML or JSON definitions, useful for forms generated
at runtime, for tests and for IDE completion.

Example usage:

	package main

	import (
		"github.com/aretw0/stepwise"
		"github.com/aretw0/stepwise/pkg/dsl"
	)

	func main() {
		b := dsl.New("Signup")

		account := b.Step("account", "Account")
		account.Email("email", "Email").Required()
		account.Checkbox("employed", "Currently employed")
		account.Text("company", "Company").Required().When("employed", true)

		b.Summary("review", "Review")

		loader, err := b.Build()
		if err != nil {
			panic(err)
		}
		engine, err := stepwise.New(ctx, "", stepwise.WithLoader(loader))
		// ...
	}
*/
package dsl
