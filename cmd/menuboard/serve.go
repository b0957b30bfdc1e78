package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/fs"
	mbhttp "github.com/fwojciec/menuboard/http"
)

// QuestionsFile is the suggested questions file inside the data directory.
const QuestionsFile = "recommended_questions.json"

// Run executes the serve command. It loads the menus, makes the index
// ready, then serves until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	catalog, warnings := loadCatalogWarnings(deps)

	if deps.Builder != nil {
		res, err := deps.Builder.Build(deps.Ctx, catalog.All(), false)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", menuboard.ErrorMessage(err))
			return err
		}
		printBuild(deps, res)
	}

	questions := c.Questions
	if questions == "" {
		questions = filepath.Join(deps.DataDir, QuestionsFile)
	}

	s := mbhttp.NewServer()
	s.Addr = c.Addr
	s.Catalog = catalog
	s.Asker = deps.Asker
	s.Questions = fs.LoadQuestions(questions, deps.Logger)
	s.Warnings = warnings
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", menuboard.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Serving on %s\n", s.URL())

	<-deps.Ctx.Done()
	return s.Close()
}
