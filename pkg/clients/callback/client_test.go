package callback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdsim/internal/config"
)

func TestDeliver_PostsEnvelopeWithToken(t *testing.T) {
	var gotAuth string
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hooks/herd", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(config.CallbackConfig{URL: srv.URL + "/hooks/herd", Token: "secret"})
	err := c.Deliver(context.Background(), Message{Type: "PROJECTION_DIGEST", Payload: map[string]int{"totalBuffaloes": 120}})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "PROJECTION_DIGEST", got["type"])
	assert.Equal(t, float64(120), got["payload"].(map[string]any)["totalBuffaloes"])
}

func TestDeliver_ReportsShellErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"shell asleep"}`))
	}))
	defer srv.Close()

	c := NewClient(config.CallbackConfig{URL: srv.URL})
	err := c.Deliver(context.Background(), Message{Type: "PROJECTION_DIGEST"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=502")
	assert.Contains(t, err.Error(), "shell asleep")
}
