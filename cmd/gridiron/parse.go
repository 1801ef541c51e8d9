package main

import (
	"fmt"

	"github.com/fwojciec/gridiron"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	sources, err := resolveFiles(c.Files)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gridiron.ErrorMessage(err))
		return err
	}

	result, err := deps.Scraper.Run(deps.Ctx, sources, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error parsing: %v\n", err)
		return err
	}

	return publish(deps, result, c.Out, c.Indent)
}
