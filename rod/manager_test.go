//go:build integration

package rod_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fwojciec/menuboard/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_RecyclesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(3))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	manager.IncrementPageCount()
	manager.IncrementPageCount()
	manager.IncrementPageCount()

	secondBrowser := manager.Browser()
	require.NotNil(t, secondBrowser)
	assert.NotSame(t, firstBrowser, secondBrowser)
}

func TestBrowserManager_DoesNotRecycleBeforeMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	manager.IncrementPageCount()
	manager.IncrementPageCount()

	assert.Same(t, firstBrowser, manager.Browser())
}

func TestBrowserManager_SendsConfiguredUserAgent(t *testing.T) {
	t.Parallel()

	const ua = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) menuboard-test"

	var (
		mu   sync.Mutex
		seen string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = r.Header.Get("User-Agent")
		mu.Unlock()
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	t.Cleanup(srv.Close)

	manager, err := rod.NewBrowserManager(rod.WithUserAgent(ua), rod.WithNoSandbox())
	require.NoError(t, err)
	defer manager.Close()

	page := manager.Browser().MustPage(srv.URL)
	defer page.MustClose()
	page.MustWaitLoad()

	assert.Equal(t, ua, page.MustEval("() => navigator.userAgent").String())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, ua, seen)
}

func TestBrowserManager_Closed(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithNoSandbox())
	require.NoError(t, err)

	assert.False(t, manager.Closed())
	require.NoError(t, manager.Close())
	assert.True(t, manager.Closed())

	// A second Close is a no-op.
	require.NoError(t, manager.Close())
	assert.True(t, manager.Closed())
}
