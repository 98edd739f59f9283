package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakadenta/dompet"
	"github.com/rakadenta/dompet/client"
)

func newTestClient(t *testing.T, handler http.Handler) (*client.Client, *dompet.MemoryStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := dompet.NewMemoryStore()
	api, err := client.New(server.URL, store)
	require.NoError(t, err)
	return api, store, server
}

func TestNew(t *testing.T) {
	store := dompet.NewMemoryStore()

	t.Run("rejects relative base URL", func(t *testing.T) {
		_, err := client.New("localhost:8080/api", store)
		assert.Error(t, err)
	})

	t.Run("accepts absolute base URL", func(t *testing.T) {
		api, err := client.New("http://localhost:8080", store)
		require.NoError(t, err)
		assert.NotNil(t, api)
	})
}

func TestBearerAttachment(t *testing.T) {
	t.Run("token present is attached", func(t *testing.T) {
		var got string
		api, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		require.NoError(t, store.Set("tok-123"))

		require.NoError(t, api.Get(context.Background(), "/api/users/me", nil))
		assert.Equal(t, "Bearer tok-123", got)
	})

	t.Run("absent token sends an unauthenticated request", func(t *testing.T) {
		var got string
		api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))

		require.NoError(t, api.Get(context.Background(), "/api/users/me", nil))
		assert.Empty(t, got)
	})

	t.Run("every request carries a request id", func(t *testing.T) {
		var got string
		api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("X-Request-ID")
			w.Write([]byte(`{}`))
		}))

		require.NoError(t, api.Get(context.Background(), "/api/wallets", nil))
		assert.NotEmpty(t, got)
	})

	t.Run("per-call header overrides the default", func(t *testing.T) {
		var got string
		api, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		require.NoError(t, store.Set("stored-token"))

		require.NoError(t, api.Get(context.Background(), "/api/users/me", nil,
			client.WithHeader("Authorization", "Bearer explicit")))
		assert.Equal(t, "Bearer explicit", got)
	})
}

func TestUnauthorizedHandler(t *testing.T) {
	t.Run("fires exactly once per failing response, then the error propagates", func(t *testing.T) {
		api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		var fired int
		api.SetUnauthorizedHandler(func() { fired++ })

		err := api.Get(context.Background(), "/api/wallets", nil)
		require.Error(t, err)
		assert.True(t, client.IsUnauthorizedError(err))
		assert.Equal(t, 1, fired)

		err = api.Get(context.Background(), "/api/wallets", nil)
		require.Error(t, err)
		assert.Equal(t, 2, fired, "each failing response notifies once")
	})

	t.Run("no handler registered is fine", func(t *testing.T) {
		api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		err := api.Get(context.Background(), "/api/wallets", nil)
		assert.True(t, client.IsUnauthorizedError(err))
	})

	t.Run("last registration wins", func(t *testing.T) {
		api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		var first, second int
		api.SetUnauthorizedHandler(func() { first++ })
		api.SetUnauthorizedHandler(func() { second++ })

		_ = api.Get(context.Background(), "/api/wallets", nil)

		assert.Zero(t, first)
		assert.Equal(t, 1, second)
	})

	t.Run("other statuses never notify", func(t *testing.T) {
		api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		var fired int
		api.SetUnauthorizedHandler(func() { fired++ })

		err := api.Get(context.Background(), "/api/wallets", nil)
		require.Error(t, err)
		assert.Zero(t, fired)
	})
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		category errors.Category
	}{
		{"not found", http.StatusNotFound, `{"message":"wallet not found"}`, errors.CategoryNotFound},
		{"conflict", http.StatusConflict, `{"message":"username already taken"}`, errors.CategoryConflict},
		{"bad request", http.StatusBadRequest, `{"message":"name is required"}`, errors.CategoryValidation},
		{"server error", http.StatusInternalServerError, ``, errors.CategoryInternal},
		{"rate limited", http.StatusTooManyRequests, ``, errors.CategoryRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			err := api.Get(context.Background(), "/api/wallets", nil)
			require.Error(t, err)

			var richErr *errors.Error
			require.True(t, errors.As(err, &richErr))
			assert.Equal(t, tt.category, richErr.Category)
		})
	}
}

func TestNetworkErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	store := dompet.NewMemoryStore()
	api, err := client.New(server.URL, store)
	require.NoError(t, err)
	server.Close() // nobody listening anymore

	getErr := api.Get(context.Background(), "/api/wallets", nil)
	require.Error(t, getErr)
	assert.True(t, client.IsNetworkError(getErr))
	assert.False(t, client.IsUnauthorizedError(getErr))
}

func TestVerbsAndDecoding(t *testing.T) {
	type echo struct {
		Method string `json:"method"`
		Path   string `json:"path"`
		Query  string `json:"query"`
		Body   string `json:"body"`
	}

	api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		resp := echo{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)}
		payload, _ := json.Marshal(resp)
		w.Write(payload)
	}))

	t.Run("get with query", func(t *testing.T) {
		var out echo
		require.NoError(t, api.Get(context.Background(), "/api/wallets/transactions", &out,
			client.WithQuery("walletId", "7")))
		assert.Equal(t, http.MethodGet, out.Method)
		assert.Equal(t, "/api/wallets/transactions", out.Path)
		assert.Equal(t, "walletId=7", out.Query)
	})

	t.Run("post carries the JSON body", func(t *testing.T) {
		var out echo
		require.NoError(t, api.Post(context.Background(), "/api/wallets",
			map[string]string{"name": "cash"}, &out))
		assert.Equal(t, http.MethodPost, out.Method)
		assert.JSONEq(t, `{"name":"cash"}`, out.Body)
	})

	t.Run("put and delete hit the right method", func(t *testing.T) {
		var out echo
		require.NoError(t, api.Put(context.Background(), "/api/wallets/3", map[string]string{}, &out))
		assert.Equal(t, http.MethodPut, out.Method)

		require.NoError(t, api.Delete(context.Background(), "/api/wallets/3", &out))
		assert.Equal(t, http.MethodDelete, out.Method)
	})

	t.Run("nil out discards the body", func(t *testing.T) {
		assert.NoError(t, api.Get(context.Background(), "/api/wallets", nil))
	})
}
