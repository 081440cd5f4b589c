package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) *EmbeddingService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewEmbeddingService(EmbeddingConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return svc
}

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(EmbeddingConfig{})
	assert.Error(t, err)
}

func TestEmbed(t *testing.T) {
	var gotReq embedContentRequest
	var gotPath string

	svc := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"embedding":{"values":[0.1,0.2,0.3]}}`)) //nolint:errcheck
	})

	vec, err := svc.Embed(context.Background(), "some text")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "/models/text-embedding-004:embedContent", gotPath)
	require.Len(t, gotReq.Content.Parts, 1)
	assert.Equal(t, "some text", gotReq.Content.Parts[0].Text)
}

func TestEmbed_APIError(t *testing.T) {
	svc := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"key invalid","status":"PERMISSION_DENIED"}}`)) //nolint:errcheck
	})

	_, err := svc.Embed(context.Background(), "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "key invalid")
}

func TestEmbed_EmptyEmbedding(t *testing.T) {
	svc := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embedding":{"values":[]}}`)) //nolint:errcheck
	})

	_, err := svc.Embed(context.Background(), "text")

	assert.Error(t, err)
}
