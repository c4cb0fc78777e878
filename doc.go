/*
Package cellfill is a small cell generator built around a single reduction rule.

Each create action draws a uniform random boolean and appends an Alive (true) or
Dead (false) cell to the session's sequence. The last three cells are then
inspected:

  - three Alive cells spawn a derived Life cell;
  - three Dead cells prune the run of Alive cells immediately before them.

The rule itself lives in package domain as a pure function. This package wraps
it in a Generator that owns one sequence, injects the random source and fires
lifecycle hooks, so that any host (terminal, HTTP API, MCP server) can drive it.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/cellfill"
		"github.com/aretw0/cellfill/pkg/random"
	)

	func main() {
		gen := cellfill.New(cellfill.WithSource(random.NewScript(true, true, true)))
		for i := 0; i < 3; i++ {
			if _, err := gen.Create(context.Background()); err != nil {
				panic(err)
			}
		}
		fmt.Println(gen.Cells()) // [alive alive alive life]
	}

# Hosts

  - cmd/cellfill run: interactive terminal list with auto-scroll.
  - cmd/cellfill serve: JSON API over HTTP with Prometheus metrics.
  - cmd/cellfill mcp: Model Context Protocol tools for agents.
*/
package cellfill
