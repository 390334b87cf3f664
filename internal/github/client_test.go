package github_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calbret/showcase/internal/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListDirectory(t *testing.T) {
	t.Parallel()

	t.Run("decodes entries", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/o/r/contents/projects", r.URL.Path)
			assert.Equal(t, "main", r.URL.Query().Get("ref"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"name":"alpha","path":"projects/alpha","type":"dir","html_url":"https://example.com/alpha"},
				{"name":"readme.md","path":"projects/readme.md","type":"file","download_url":"https://example.com/raw/readme.md"},
				{"name":"link","path":"projects/link","type":"symlink"}
			]`))
		}))
		defer server.Close()

		client := github.NewClient("o", "r", "main", github.WithBaseURL(server.URL))

		entries, err := client.ListDirectory(context.Background(), "projects")
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, "alpha", entries[0].Name)
		assert.Equal(t, github.KindDir, entries[0].Kind)
		assert.Equal(t, "https://example.com/alpha", entries[0].HTMLURL)

		assert.Equal(t, github.KindFile, entries[1].Kind)
		assert.Equal(t, "https://example.com/raw/readme.md", entries[1].DownloadURL)

		assert.Equal(t, github.KindOther, entries[2].Kind)
	})

	t.Run("non-success becomes RemoteError", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
		}))
		defer server.Close()

		client := github.NewClient("o", "r", "", github.WithBaseURL(server.URL))

		entries, err := client.ListDirectory(context.Background(), "projects")
		require.Error(t, err)
		assert.Nil(t, entries, "a non-success response must not look like an empty listing")

		var remoteErr *github.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, http.StatusForbidden, remoteErr.StatusCode)
		assert.Contains(t, remoteErr.Snippet, "rate limit")
	})

	t.Run("transport failure is not a RemoteError", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused from here on

		client := github.NewClient("o", "r", "", github.WithBaseURL(server.URL))

		_, err := client.ListDirectory(context.Background(), "projects")
		require.Error(t, err)

		var remoteErr *github.RemoteError
		assert.False(t, errors.As(err, &remoteErr))
	})
}

func TestClient_ReadText(t *testing.T) {
	t.Parallel()

	t.Run("returns raw body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("  a description\n"))
		}))
		defer server.Close()

		client := github.NewClient("o", "r", "")

		text, err := client.ReadText(context.Background(), server.URL+"/raw/description.txt")
		require.NoError(t, err)
		assert.Equal(t, "  a description\n", text, "content is returned verbatim")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		}))
		defer server.Close()

		client := github.NewClient("o", "r", "")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := client.ReadText(ctx, server.URL)
		require.Error(t, err)
	})
}
