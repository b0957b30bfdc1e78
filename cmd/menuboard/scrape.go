package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	brands, err := c.brands()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuboard.ErrorMessage(err))
		return err
	}

	progress := func(p menuboard.ScrapeProgress) {
		fmt.Fprintln(deps.Stdout, scrape.FormatProgress(p))
	}

	var errs []error
	for _, b := range brands {
		s, ok := deps.Scrapers[b]
		if !ok {
			return menuboard.Errorf(menuboard.EINTERNAL, "no scraper for %s", b)
		}

		res, err := scrape.Run(deps.Ctx, s, deps.Store, progress)
		if res != nil {
			fmt.Fprintf(deps.Stdout, "%s: saved %d menu items (%d failed)\n", b, res.Saved, res.Failed)
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", b, menuboard.ErrorMessage(err))
			errs = append(errs, err)
			if deps.Ctx.Err() != nil {
				break
			}
		}
	}
	return errors.Join(errs...)
}

func (c *ScrapeCmd) brands() ([]menuboard.Brand, error) {
	if c.All {
		return menuboard.Brands(), nil
	}
	if len(c.Brands) == 0 {
		return nil, menuboard.Errorf(menuboard.EINVALID, "name at least one brand or use --all")
	}
	brands := make([]menuboard.Brand, 0, len(c.Brands))
	for _, s := range c.Brands {
		b, err := menuboard.ParseBrand(s)
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, nil
}
