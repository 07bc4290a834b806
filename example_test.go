package deduce_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/deduce"
	"github.com/aretw0/deduce/pkg/dsl"
)

// ExampleNew_memory builds a catalog in Go and runs it without touching the
// file system.
func ExampleNew_memory() {
	b := dsl.New()
	b.Rule("cold").If("runny nose", "sneezing").Then("common cold")
	b.Rule("rest").If("common cold").Then("rest_required")

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	// The path is empty because the loader is provided.
	engine, err := deduce.New("", deduce.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	report, err := engine.Infer(context.Background(), []string{"Runny Nose", "sneezing"})
	if err != nil {
		log.Fatal(err)
	}

	for _, entry := range report.Result.Log {
		fmt.Printf("%d) %s: %s\n", entry.Step, entry.RuleID, entry.Consequent)
	}
	fmt.Println("Facts:", report.Result.Facts)
	fmt.Println("Stop:", report.Result.StopReason)

	// Output:
	// 1) cold: common cold
	// 2) rest: rest_required
	// Facts: [common cold rest_required runny nose sneezing]
	// Stop: fixpoint
}

// ExampleEngine_Infer_goals stops as soon as the requested facts hold.
func ExampleEngine_Infer_goals() {
	b := dsl.New()
	b.Rule("cold").If("runny nose", "sneezing").Then("common cold")
	b.Rule("rest").If("common cold").Then("rest_required")

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	engine, err := deduce.New("", deduce.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	report, err := engine.Infer(context.Background(), []string{"runny nose", "sneezing"}, "common cold")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Stop:", report.Result.StopReason, "after", report.Result.Sweeps, "sweep")

	// Output:
	// Stop: goals_reached after 1 sweep
}
