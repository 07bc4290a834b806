/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing rule catalogs.

It allows developers to declare rules with a fluent builder instead of relying on
external YAML or JSON files. This is useful for embedded catalogs, generated
rules and unit tests.

Example usage:

	package main

	import (
		"github.com/aretw0/deduce"
		"github.com/aretw0/deduce/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Rule("R1").
			If("fever", "cough", "sore throat").
			Then("flu").
			Because("Classic influenza triad.")

		b.Rule("R2").If("flu").Then("rest_required")

		// The resulting loader can be passed to deduce.New(...)
		loader, _ := b.Build()
		eng, _ := deduce.New("", deduce.WithLoader(loader))
		_ = eng
	}
*/
package dsl
