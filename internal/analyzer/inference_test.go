package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPInference_Sentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sentiment", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req sentimentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"me encanta", "horrible"}, req.Inputs)

		json.NewEncoder(w).Encode([]Label{{Label: "POSITIVE", Score: 0.99}, {Label: "NEGATIVE", Score: 0.97}})
	}))
	defer srv.Close()

	h := NewHTTPInference(srv.URL+"/", "tok")
	labels, err := h.Sentiment(context.Background(), []string{"me encanta", "horrible"})
	require.NoError(t, err)
	assert.Equal(t, "POSITIVE", labels[0].Label)
	assert.Equal(t, "NEGATIVE", labels[1].Label)
}

func TestHTTPInference_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 150, req.Parameters["max_length"])
		json.NewEncoder(w).Encode([]generated{{GeneratedText: req.Inputs + "fin."}})
	}))
	defer srv.Close()

	text, err := NewHTTPInference(srv.URL, "").Generate(context.Background(), "hola ", 150)
	require.NoError(t, err)
	assert.Equal(t, "hola fin.", text)
}

func TestHTTPInference_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPInference(srv.URL, "").Sentiment(context.Background(), []string{"x"})
	assert.ErrorContains(t, err, "status code 503")
}

func TestHTTPInference_LabelCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Label{{Label: "POSITIVE"}})
	}))
	defer srv.Close()

	_, err := NewHTTPInference(srv.URL, "").Sentiment(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}
