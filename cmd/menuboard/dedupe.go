package main

import (
	"fmt"

	"github.com/fwojciec/menuboard"
)

// Run executes the dedupe command.
func (c *DedupeCmd) Run(deps *Dependencies) error {
	brand, err := menuboard.ParseBrand(c.Brand)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuboard.ErrorMessage(err))
		return err
	}

	res, err := deps.Normalizer.Run(deps.Ctx, brand)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuboard.ErrorMessage(err))
		return err
	}

	if res.Modified == 0 {
		fmt.Fprintf(deps.Stdout, "%s: nothing to change (%d duplicate names)\n", brand, res.Groups)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "%s: renamed %d items in %d duplicate groups\n", brand, res.Modified, res.Groups)
	return nil
}
