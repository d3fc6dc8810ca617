package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"profile-roast/internal/auth"
	"profile-roast/internal/config"
)

type stubs struct {
	mu        sync.Mutex
	usernames []string
	provider  *httptest.Server
	llm       *httptest.Server
}

func (s *stubs) providerCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.usernames)
}

func newStubs(t *testing.T) *stubs {
	t.Helper()
	s := &stubs{}
	s.provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/info":
			s.mu.Lock()
			s.usernames = append(s.usernames, r.URL.Query().Get("userName"))
			s.mu.Unlock()
			_, _ = w.Write([]byte(`{"status":"success","data":{"id":"42","description":"hello"}}`))
		case "/user/last_tweets":
			_, _ = w.Write([]byte(`{"status":"success","data":{"tweets":[{"type":"tweet","text":"gm"}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	s.llm = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"certified poster"}}]}`))
	}))
	t.Cleanup(s.provider.Close)
	t.Cleanup(s.llm.Close)
	return s
}

func testConfig(t *testing.T, s *stubs) *config.Config {
	t.Helper()
	return &config.Config{
		XAPIKey:            "x",
		XAPIBaseURL:        s.provider.URL,
		OpenAIURL:          s.llm.URL,
		OpenAIKey:          "o",
		OpenAIModel:        "m",
		EnableCache:        true,
		CacheExpireMinutes: 30,
		CacheDBPath:        filepath.Join(t.TempDir(), "cache.db"),
		LogLevel:           "error",
		HTTPAddr:           "127.0.0.1:0",
		HTTPTimeout:        5 * time.Second,
		JWTSecret:          "test-secret-0123456789",
		JWTIssuer:          "profile-roast",
		JWTAudience:        "clients",
	}
}

func run(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmdWithConfig("test", func() (*config.Config, error) { return cfg, nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_AnalyzesAndCaches(t *testing.T) {
	s := newStubs(t)
	cfg := testConfig(t, s)

	out, err := run(t, cfg, "", "--username", "@alice")
	require.NoError(t, err)
	require.Contains(t, out, "@alice")
	require.Contains(t, out, "certified poster")

	_, err = run(t, cfg, "", "-u", "alice")
	require.NoError(t, err)
	require.Equal(t, 1, s.providerCalls(), "second run is served from the cache file")

	_, err = run(t, cfg, "", "-u", "alice", "--no-cache")
	require.NoError(t, err)
	require.Equal(t, 2, s.providerCalls())

	_, err = run(t, cfg, "", "-u", "alice", "--clear-cache")
	require.NoError(t, err)
	require.Equal(t, 3, s.providerCalls())
}

func TestRoot_CacheDisabledByConfig(t *testing.T) {
	s := newStubs(t)
	cfg := testConfig(t, s)
	cfg.EnableCache = false

	for i := 0; i < 2; i++ {
		_, err := run(t, cfg, "", "-u", "bob")
		require.NoError(t, err)
	}
	require.Equal(t, 2, s.providerCalls())
}

func TestRoot_PromptsForUsername(t *testing.T) {
	s := newStubs(t)
	cfg := testConfig(t, s)

	out, err := run(t, cfg, "carol\n")
	require.NoError(t, err)
	require.Contains(t, out, "Username to analyze")

	_, err = run(t, cfg, "\n")
	require.NoError(t, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	require.Equal(t, []string{"carol", DefaultUsername}, s.usernames)
}

func TestCacheClearCommand(t *testing.T) {
	s := newStubs(t)
	cfg := testConfig(t, s)

	_, err := run(t, cfg, "", "-u", "alice")
	require.NoError(t, err)

	out, err := run(t, cfg, "", "cache", "clear")
	require.NoError(t, err)
	require.Contains(t, out, "cache cleared")

	_, err = run(t, cfg, "", "-u", "alice")
	require.NoError(t, err)
	require.Equal(t, 2, s.providerCalls())
}

func TestCacheSweepCommand(t *testing.T) {
	s := newStubs(t)
	cfg := testConfig(t, s)

	_, err := run(t, cfg, "", "-u", "alice")
	require.NoError(t, err)

	out, err := run(t, cfg, "", "cache", "sweep")
	require.NoError(t, err)
	require.Contains(t, out, "expired entries cleared")

	_, err = run(t, cfg, "", "-u", "alice")
	require.NoError(t, err)
	require.Equal(t, 1, s.providerCalls(), "fresh entries survive a sweep")
}

func TestTokenCommand(t *testing.T) {
	cfg := testConfig(t, newStubs(t))

	out, err := run(t, cfg, "", "token", "--subject", "ops")
	require.NoError(t, err)

	claims, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	require.Equal(t, "ops", claims.Subject)
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t, newStubs(t))
	cfg.CacheSweepSchedule = "@every 1h"
	a, err := newApp(cfg, true)
	require.NoError(t, err)
	t.Cleanup(a.close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, a) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_InvalidSweepSchedule(t *testing.T) {
	cfg := testConfig(t, newStubs(t))
	cfg.CacheSweepSchedule = "whenever"
	a, err := newApp(cfg, false)
	require.NoError(t, err)
	t.Cleanup(a.close)

	require.Error(t, serve(context.Background(), a))
}

func TestPromptUsername(t *testing.T) {
	var out bytes.Buffer
	name, err := promptUsername(strings.NewReader("  dave \n"), &out)
	require.NoError(t, err)
	require.Equal(t, "dave", name)

	name, err = promptUsername(strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Equal(t, DefaultUsername, name)
}
