package classify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/logger"
)

func embeddingSidecar(t *testing.T, role string, confidence float64) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/classify":
			require.Equal(t, http.MethodPost, r.Method)
			w.Header().Set("Content-Type", "application/json")
			err := json.NewEncoder(w).Encode(embeddingResponse{RoleType: role, Confidence: confidence})
			require.NoError(t, err)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPEmbeddingClassifier_Classify(t *testing.T) {
	server := embeddingSidecar(t, "Developer", 0.9)
	client := NewHTTPEmbeddingClassifier(server.URL, logger.NewNop())

	assert.True(t, client.Available())

	role, err := client.Classify("Tvůrce digitálních zážitků", "Budete psát kód.")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDeveloper, role)
}

func TestHTTPEmbeddingClassifier_LowConfidenceMapsToOther(t *testing.T) {
	server := embeddingSidecar(t, "Developer", 0.2)
	client := NewHTTPEmbeddingClassifier(server.URL, logger.NewNop())

	role, err := client.Classify("Nejasná pozice", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOther, role)
}

func TestHTTPEmbeddingClassifier_RejectsUnknownRole(t *testing.T) {
	server := embeddingSidecar(t, "Astronaut", 0.99)
	client := NewHTTPEmbeddingClassifier(server.URL, logger.NewNop())

	role, err := client.Classify("Kosmonaut", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOther, role)
}

func TestHTTPEmbeddingClassifier_Unreachable(t *testing.T) {
	server := embeddingSidecar(t, "Developer", 0.9)
	baseURL := server.URL
	server.Close()

	client := NewHTTPEmbeddingClassifier(baseURL, logger.NewNop())

	assert.False(t, client.Available())

	_, err := client.Classify("Pozice", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
}
