package main

import (
	"fmt"

	"github.com/fwojciec/menuboard"
)

// Run executes the ask command. The index is built first if it is empty.
func (c *AskCmd) Run(deps *Dependencies) error {
	if deps.Builder != nil {
		if _, err := deps.Builder.Build(deps.Ctx, loadCatalog(deps).All(), false); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", menuboard.ErrorMessage(err))
			return err
		}
	}

	answer, err := deps.Asker.Ask(deps.Ctx, c.Question, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuboard.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
