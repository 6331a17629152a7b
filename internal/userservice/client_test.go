package userservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themeswitch/internal/model"
)

func TestClient_GetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, MePath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Len(t, r.Header.Get(RequestIDHeader), 26)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","theme":{"theme":"dark","palette":",,,,"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", time.Second)
	u, err := c.GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "dark", u.Theme.Theme)
	assert.Equal(t, model.EmptyPalette, u.Theme.Palette)
}

func TestClient_UpdateUser(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-123", r.Header.Get(RequestIDHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"id":"u1","theme":{"theme":"light"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	theme := model.UserTheme{Theme: "light", Palette: model.EmptyPalette}

	ctx := WithRequestID(context.Background(), "req-123")
	u, err := c.UpdateUser(ctx, model.UserUpdate{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, "light", u.Theme.Theme)

	require.Contains(t, got, "theme")
	sent := got["theme"].(map[string]any)
	assert.Equal(t, "light", sent["theme"])
	assert.Equal(t, ",,,,", sent["palette"])
	assert.NotContains(t, got, "id", "only the theme is sent")
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not signed in", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.GetUser(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "not signed in", apiErr.Body)
}

func TestClient_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.UpdateUser(context.Background(), model.UserUpdate{})
	assert.NoError(t, err)
}

func TestClient_NoBaseURL(t *testing.T) {
	c := NewClient("  ", "", 0)
	_, err := c.GetUser(context.Background())
	assert.ErrorIs(t, err, ErrNoBaseURL)
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
	assert.NotEqual(t, NewRequestID(), NewRequestID())
}
