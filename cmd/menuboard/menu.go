package main

import (
	"fmt"

	"github.com/fwojciec/menuboard"
)

// Run executes the menu command.
func (c *MenuCmd) Run(deps *Dependencies) error {
	brand, err := menuboard.ParseBrand(c.Brand)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuboard.ErrorMessage(err))
		return err
	}

	records, err := deps.Store.Load(deps.Ctx, brand)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuboard.ErrorMessage(err))
		return err
	}

	catalog := menuboard.NewCatalog()
	catalog.Set(brand, records)
	listing := catalog.Filter(brand, c.Category)
	if len(listing) == 0 {
		fmt.Fprintf(deps.Stdout, "No %s menu items found.\n", brand.DisplayName())
		return nil
	}

	for i, r := range listing {
		if r.Category != "" {
			fmt.Fprintf(deps.Stdout, "%3d. %s [%s]\n", i+1, r.Name, r.Category)
		} else {
			fmt.Fprintf(deps.Stdout, "%3d. %s\n", i+1, r.Name)
		}
		if !c.Full {
			continue
		}
		if r.Description != "" {
			fmt.Fprintf(deps.Stdout, "     %s\n", r.Description)
		}
		if len(r.Nutrition) > 0 {
			fmt.Fprintf(deps.Stdout, "     %s\n", menuboard.FormatNutrition(r.Nutrition))
		}
	}
	return nil
}
