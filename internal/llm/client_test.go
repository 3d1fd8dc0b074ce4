package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComplete_SendsRequest(t *testing.T) {
	var got chatRequest
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"## Report"}}],"usage":{"prompt_tokens":10,"completion_tokens":3}}`))
	}))
	defer srv.Close()

	c := NewClient("sk-test", srv.URL+"/v1/", time.Second)
	text, err := c.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "hi"},
	}, Params{Temperature: 0.7, MaxTokens: 2048, TopP: 1})
	require.NoError(t, err)
	require.Equal(t, "## Report", text)

	require.Equal(t, "Bearer sk-test", auth)
	require.Equal(t, "/v1/chat/completions", path)
	require.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 2)
	require.Equal(t, RoleUser, got.Messages[1].Role)
	require.InDelta(t, 0.7, got.Temperature, 1e-9)
	require.Equal(t, 2048, got.MaxTokens)
	require.InDelta(t, 1.0, got.TopP, 1e-9)
}

func TestComplete_ModelOverride(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, time.Second).WithModel("gpt-4o")
	_, err := c.Complete(context.Background(), nil, Params{})
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", got.Model)

	_, err = c.Complete(context.Background(), nil, Params{Model: "other"})
	require.NoError(t, err)
	require.Equal(t, "other", got.Model)
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("bad", srv.URL, time.Second).Complete(context.Background(), nil, Params{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Incorrect API key provided", apiErr.Message)
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", srv.URL, time.Second).Complete(context.Background(), nil, Params{})
	require.ErrorIs(t, err, ErrNoContent)
}

func TestComplete_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient("k", url, time.Second).Complete(context.Background(), nil, Params{})
	require.Error(t, err)
	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr))
}
