package anki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeSendsEnvelope(t *testing.T) {
	var got envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"result": 6, "error": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	raw, err := c.Invoke(context.Background(), "version", nil)
	require.NoError(t, err)
	assert.JSONEq(t, "6", string(raw))

	assert.Equal(t, "version", got.Action)
	assert.Equal(t, apiVersion, got.Version)
	assert.NotNil(t, got.Params, "nil params must be sent as an empty object")
}

func TestInvokeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": null, "error": "deck was not found: Nope"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Invoke(context.Background(), "deckNames", nil)
	require.Error(t, err)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "deckNames", upErr.Action)
	assert.Equal(t, "deck was not found: Nope", upErr.Message)
}

func TestInvokeNullErrorIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": ["Default"], "error": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	raw, err := c.Invoke(context.Background(), "deckNames", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `["Default"]`, string(raw))
}

func TestInvokeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond)
	_, err := c.Invoke(context.Background(), "sync", nil)
	require.Error(t, err)

	var toErr *TimeoutError
	require.ErrorAs(t, err, &toErr)
	assert.Equal(t, "sync", toErr.Action)
	assert.Contains(t, toErr.Error(), "sync")
}

func TestInvokeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	_, err := c.Invoke(context.Background(), "version", nil)
	require.Error(t, err)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Contains(t, connErr.Error(), "Anki is currently running")
	assert.Contains(t, connErr.Error(), "2055492159")
}

func TestInvokeHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Invoke(context.Background(), "version", nil)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Contains(t, upErr.Message, "500")
}

func TestClientDefaults(t *testing.T) {
	c := NewClient("", 0)
	assert.Equal(t, DefaultURL, c.URL())
	assert.Equal(t, DefaultTimeout, c.timeout)
}

func TestHTTPClientIsReused(t *testing.T) {
	c := NewClient(DefaultURL, time.Second)
	first := c.httpClient()
	second := c.httpClient()
	assert.Same(t, first, second)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": 6, "error": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, v)
}
