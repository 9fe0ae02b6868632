package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHFClient(url string) *HuggingFaceClient {
	c := NewHuggingFaceClient("hf-key", "", 5*time.Second)
	c.baseURL = url
	return c
}

func TestHuggingFaceGenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+DefaultHFModel, r.URL.Path)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))

		var req hfRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, strings.HasPrefix(req.Inputs, "[INST] Plan a trip"))
		assert.True(t, strings.HasSuffix(req.Inputs, "[/INST]"))
		assert.False(t, req.Parameters.ReturnFullText)

		_, _ = io.WriteString(w, `[{"generated_text": "Day 1: arrive"}]`)
	}))
	defer server.Close()

	text, err := newTestHFClient(server.URL).GenerateContent(context.Background(), "Plan a trip\n")
	require.NoError(t, err)
	assert.Equal(t, "Day 1: arrive", text)
}

func TestHuggingFaceErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"model loading", http.StatusServiceUnavailable, `{"error": "loading"}`, "AI model is loading"},
		{"bad request", http.StatusBadRequest, `{"error": "bad"}`, "HuggingFace API error (400)"},
		{"empty", http.StatusOK, `[]`, "empty response from AI"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer server.Close()

			_, err := newTestHFClient(server.URL).GenerateContent(context.Background(), "hi")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestHuggingFaceWithoutKey(t *testing.T) {
	_, err := NewHuggingFaceClient("", "", time.Second).GenerateContent(context.Background(), "hi")
	assert.EqualError(t, err, "huggingface API key not configured")
}
