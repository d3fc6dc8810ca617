package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

func TestComplete_Success(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.Equal(t, "Profile Roast", r.Header.Get("X-Title"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"what a bio"}}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL + "/v1/", APIKey: "key", Model: "m-1", Title: "Profile Roast"})
	out, err := c.Complete(context.Background(), []Message{
		{Role: "system", Content: "be witty"},
		{Role: "user", Content: "bio: 你好"},
	})
	require.NoError(t, err)
	require.Equal(t, "what a bio", out)
	require.Equal(t, "m-1", got.Model)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "bio: 你好", got.Messages[1].Content)
}

func TestComplete_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(strings.Repeat("x", 2000)))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, Model: "m"})
	_, err := c.Complete(context.Background(), nil)
	require.ErrorIs(t, err, ErrAPI)
	require.Contains(t, err.Error(), "status 401")
	require.Less(t, len(err.Error()), 700)
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, Model: "m"})
	_, err := c.Complete(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyCompletion)
}
