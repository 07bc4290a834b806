/*
Package deduce is a propositional forward-chaining inference engine.

A catalog of IF-THEN rules (a conjunction of antecedent facts implying one
consequent fact) is swept repeatedly over a set of known facts. Every rule
whose antecedents all hold adds its consequent, tagged with the rule that
produced it, until a sweep derives nothing new or every requested goal holds.
Each rule fires at most once per run, so every run terminates and yields an
ordered derivation log that explains where each fact came from.

# Concept

Facts are plain strings compared case-insensitively after trimming. Every fact
carries a provenance: facts supplied by the caller are "user" facts, derived
facts are "inferred_by:<rule id>". The log records, per firing, which
antecedents matched, where each came from, and the facts known right after.

The engine follows a Hexagonal Architecture: rule catalogs come from
RuleLoader adapters (YAML/JSON files, Loam document directories, in-memory
builders) and finished reports go to ReportStore adapters (memory, file,
Redis). The same engine backs the CLI, the HTTP API and the MCP server.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/deduce"
	)

	func main() {
		// Empty path: use the built-in symptom catalog.
		eng, err := deduce.New("")
		if err != nil {
			log.Fatal(err)
		}

		report, err := eng.Infer(context.Background(), []string{"fever", "cough", "sore throat"})
		if err != nil {
			log.Fatal(err)
		}

		for _, entry := range report.Result.Log {
			fmt.Printf("%d) %s: %s\n", entry.Step, entry.RuleID, entry.Consequent)
		}
	}
*/
package deduce
