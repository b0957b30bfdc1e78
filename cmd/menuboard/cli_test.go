package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/menuboard/cmd/menuboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"scrape", "dedupe", "menu", "index", "ask", "serve"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range commands {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"--help"}, {"-h"}, {"help"}} {
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), args, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage:")
		assert.Contains(t, stdout.String(), "Flags:")
		for _, cmd := range commands {
			assert.Contains(t, stdout.String(), cmd)
		}
	}
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_MissingAPIKey(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{"index", "serve", "ask"} {
		t.Run(cmd+" halts before opening the index", func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			indexPath := filepath.Join(dir, "sub", "index.db")
			m := main.NewMain()
			m.Getenv = func(string) string { return "" }

			args := []string{"--data", dir, "--index-path", indexPath, cmd}
			if cmd == "ask" {
				args = append(args, "디카페인 메뉴 있어?")
			}
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

			err := m.Run(context.Background(), args, stdout, stderr)

			require.ErrorIs(t, err, main.ErrMissingAPIKey)
			assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
			assert.Empty(t, stdout.String())
			_, statErr := os.Stat(filepath.Dir(indexPath))
			assert.True(t, os.IsNotExist(statErr), "index directory must not be created")
		})
	}
}

func TestMain_Run_MenuReadsDataDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ediya_menu.json"), []byte(`[
    {"brand": "Ediya", "name": "토피넛 라떼", "image_url": "", "description": "", "price": "Price not found.", "nutrition": {}}
]`), 0o644))
	stdout := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--data", dir, "menu", "ediya"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "토피넛 라떼")
}
