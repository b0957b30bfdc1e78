package main

import (
	"fmt"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/rag"
	"github.com/fwojciec/menuboard/scrape"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	catalog := loadCatalog(deps)

	res, err := deps.Builder.Build(deps.Ctx, catalog.All(), c.Rebuild)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuboard.ErrorMessage(err))
		return err
	}
	printBuild(deps, res)
	return nil
}

func loadCatalog(deps *Dependencies) *menuboard.Catalog {
	catalog, _ := loadCatalogWarnings(deps)
	return catalog
}

// loadCatalogWarnings loads every brand's menu. Missing or malformed files
// leave that brand empty and are printed and returned as warnings.
func loadCatalogWarnings(deps *Dependencies) (*menuboard.Catalog, []string) {
	catalog, errs := menuboard.LoadCatalog(deps.Ctx, deps.Store, menuboard.Brands())
	warnings := make([]string, 0, len(errs))
	for _, err := range errs {
		msg := menuboard.ErrorMessage(err)
		fmt.Fprintf(deps.Stderr, "warning: %s\n", msg)
		warnings = append(warnings, msg)
	}
	return catalog, warnings
}

func printBuild(deps *Dependencies, res *rag.BuildResult) {
	switch {
	case res.Reused:
		fmt.Fprintf(deps.Stdout, "Using existing index (%d documents)\n", res.Documents)
	case res.Tokens > 0:
		fmt.Fprintf(deps.Stdout, "Indexed %d documents (%s)\n", res.Documents, scrape.FormatTokens(res.Tokens))
	default:
		fmt.Fprintf(deps.Stdout, "Indexed %d documents\n", res.Documents)
	}
}
