package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/dedupe"
	"github.com/fwojciec/menuboard/rag"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// DataDir is the directory holding menu and questions files.
	DataDir string

	Store      menuboard.MenuStore
	Scrapers   map[menuboard.Brand]menuboard.Scraper
	Normalizer *dedupe.Normalizer
	Builder    *rag.Builder
	Asker      menuboard.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DataDir   string `name:"data" env:"MENUBOARD_DATA" default:"data" help:"Directory holding the brand menu files"`
	IndexPath string `name:"index-path" env:"MENUBOARD_INDEX" default:"data/index.db" help:"SQLite vector index path"`
	Qdrant    string `env:"MENUBOARD_QDRANT" help:"Qdrant gRPC address; replaces the SQLite index when set"`
	Verbose   bool   `short:"v" help:"Log progress to stderr"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape brand menus into the data directory"`
	Dedupe DedupeCmd `cmd:"" help:"Mark decaffeinated duplicates in a brand's menu"`
	Menu   MenuCmd   `cmd:"" help:"Print a brand's menu"`
	Index  IndexCmd  `cmd:"" help:"Build the vector index from the menu files"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about the menus"`
	Serve  ServeCmd  `cmd:"" help:"Serve the kiosk UI"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Brands    []string `arg:"" optional:"" help:"Brands to scrape (starbucks, ediya, gongcha)"`
	All       bool     `short:"a" help:"Scrape every brand"`
	NoSandbox bool     `env:"MENUBOARD_NO_SANDBOX" help:"Run Chrome without its sandbox (containers)"`
}

// DedupeCmd is the "dedupe" subcommand.
type DedupeCmd struct {
	Brand string `arg:"" optional:"" default:"ediya" help:"Brand to normalize"`
}

// MenuCmd is the "menu" subcommand.
type MenuCmd struct {
	Brand    string `arg:"" help:"Brand to show"`
	Category string `short:"c" help:"Only show this category"`
	Full     bool   `help:"Show descriptions and nutrition"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Rebuild bool `help:"Discard the existing index and rebuild it"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the menus"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string `env:"MENUBOARD_ADDR" default:":8501" help:"Listen address"`
	Questions string `help:"Suggested questions file (default: recommended_questions.json in the data directory)"`
}
