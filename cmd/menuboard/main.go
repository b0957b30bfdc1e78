package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/dedupe"
	"github.com/fwojciec/menuboard/fs"
	"github.com/fwojciec/menuboard/gemini"
	"github.com/fwojciec/menuboard/qdrant"
	"github.com/fwojciec/menuboard/rag"
	"github.com/fwojciec/menuboard/rod"
	"github.com/fwojciec/menuboard/scrape"
	mbslog "github.com/fwojciec/menuboard/slog"
	"github.com/fwojciec/menuboard/sqlite"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// APIKeyEnv names the environment variable holding the Gemini API key.
const APIKeyEnv = "GEMINI_API_KEY"

// ErrMissingAPIKey is returned when a command needs the model and no key is set.
var ErrMissingAPIKey = menuboard.Errorf(menuboard.EUNAVAILABLE, "%s not set. Get a key at https://aistudio.google.com/apikey", APIKeyEnv)

// scrapeRate is the page loads per second allowed per site.
const scrapeRate = 1.0

// Main represents the program.
type Main struct {
	// Getenv reads the environment. Replaced in tests.
	Getenv func(string) string

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Close releases everything opened by Run, last opened first.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("menuboard"),
		kong.Description("Coffee menu scraper and kiosk assistant."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'menuboard --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.DataDir = cli.DataDir
	deps.Store = fs.NewMenuStore(cli.DataDir)

	defer m.Close()

	switch cmd {
	case "scrape":
		if err := m.wireScrapers(deps, &cli.Scrape); err != nil {
			return err
		}
	case "dedupe":
		deps.Normalizer = dedupe.NewNormalizer(deps.Store, deps.Logger)
	case "index", "ask", "serve":
		// The model is required; stop before opening anything else.
		apiKey := m.Getenv(APIKeyEnv)
		if apiKey == "" {
			fmt.Fprintf(stderr, "fatal: %s environment variable not set\n", APIKeyEnv)
			fmt.Fprintln(stderr, "Hint: add it to your environment or a .env file")
			return ErrMissingAPIKey
		}
		if err := m.wireRAG(deps, cli, apiKey); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) wireScrapers(deps *Dependencies, c *ScrapeCmd) error {
	var opts []rod.ManagerOption
	if c.NoSandbox {
		opts = append(opts, rod.WithNoSandbox())
	}
	browser, err := rod.NewBrowser(opts...)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	m.closers = append(m.closers, browser)

	logged := mbslog.NewLoggingBrowser(browser, deps.Logger)
	limiter := scrape.NewDomainLimiter(scrapeRate)
	deps.Scrapers = map[menuboard.Brand]menuboard.Scraper{
		menuboard.BrandStarbucks: scrape.NewStarbucks(logged, limiter, deps.Logger),
		menuboard.BrandEdiya:     scrape.NewEdiya(logged, limiter, deps.Logger),
		menuboard.BrandGongCha:   scrape.NewGongCha(logged, limiter, deps.Logger),
	}
	return nil
}

func (m *Main) wireRAG(deps *Dependencies, cli *CLI, apiKey string) error {
	client, err := genai.NewClient(deps.Ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Check your %s is valid\n", APIKeyEnv)
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	index, err := m.openIndex(deps, cli)
	if err != nil {
		return err
	}

	embedder := gemini.NewEmbedder(client)
	tokens, err := gemini.NewTokenCounter(tokenizerModel)
	if err != nil {
		// Token counts are informational only.
		deps.Logger.Warn("token counting disabled", "err", err)
	}

	deps.Builder = &rag.Builder{
		Embedder: embedder,
		Index:    index,
		Logger:   deps.Logger,
	}
	if tokens != nil {
		deps.Builder.TokenCounter = tokens
	}

	search := mbslog.NewLoggingSearchService(rag.NewRetriever(embedder, index), deps.Logger)
	deps.Asker = mbslog.NewLoggingAsker(gemini.NewAsker(client, search), deps.Logger)
	return nil
}

// openIndex opens the Qdrant collection when an address is configured and
// the SQLite index otherwise.
func (m *Main) openIndex(deps *Dependencies, cli *CLI) (menuboard.VectorIndex, error) {
	if cli.Qdrant != "" {
		idx, err := qdrant.New(cli.Qdrant, qdrant.DefaultCollection)
		if err != nil {
			return nil, err
		}
		m.closers = append(m.closers, idx)
		return idx, nil
	}

	if dir := filepath.Dir(cli.IndexPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create index directory: %w", err)
		}
	}
	idx, err := sqlite.OpenIndex(cli.IndexPath, deps.Logger)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Set MENUBOARD_INDEX to use a different index path")
		return nil, fmt.Errorf("failed to open index at %q: %w", cli.IndexPath, err)
	}
	m.closers = append(m.closers, idx)
	return idx, nil
}

// tokenizerModel is used for token counting; the local tokenizer supports
// fewer models than the API.
const tokenizerModel = "gemini-2.5-flash"
