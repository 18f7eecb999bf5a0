package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/logger"
)

const (
	embeddingTimeout = 5 * time.Second

	// healthCacheTTL bounds how often Available probes the sidecar. The
	// keyword layers handle the vast majority of titles, so a stale
	// negative only delays the fallback, never blocks classification.
	healthCacheTTL = 30 * time.Second
)

// ErrEmbeddingUnavailable indicates the embedding sidecar is unreachable.
var ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

// HTTPEmbeddingClassifier calls an external embedding sidecar for titles
// the keyword layers could not place. Implements EmbeddingClassifier.
type HTTPEmbeddingClassifier struct {
	baseURL string
	client  *http.Client
	log     logger.Logger

	mu          sync.Mutex
	lastProbe   time.Time
	lastHealthy bool
}

// embeddingRequest is the body of POST /classify on the sidecar.
type embeddingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// embeddingResponse is the sidecar's answer.
type embeddingResponse struct {
	RoleType   string  `json:"role_type"`
	Confidence float64 `json:"confidence"`
}

// minEmbeddingConfidence rejects low-confidence sidecar answers in favour
// of the Other fallback.
const minEmbeddingConfidence = 0.5

// NewHTTPEmbeddingClassifier creates a sidecar-backed fallback classifier.
func NewHTTPEmbeddingClassifier(baseURL string, log logger.Logger) *HTTPEmbeddingClassifier {
	return &HTTPEmbeddingClassifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: embeddingTimeout},
		log:     log,
	}
}

// Available reports whether the sidecar answered a recent health probe.
func (c *HTTPEmbeddingClassifier) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Since(c.lastProbe) < healthCacheTTL {
		return c.lastHealthy
	}

	ctx, cancel := context.WithTimeout(context.Background(), embeddingTimeout)
	defer cancel()

	c.lastProbe = time.Now()
	c.lastHealthy = c.probe(ctx) == nil
	if !c.lastHealthy {
		c.log.Debug("embedding sidecar unavailable", logger.String("base_url", c.baseURL))
	}
	return c.lastHealthy
}

// Classify asks the sidecar to place a title the keyword layers missed.
// Answers outside the closed role set or below the confidence floor map
// to Other.
func (c *HTTPEmbeddingClassifier) Classify(title, description string) (domain.RoleType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), embeddingTimeout)
	defer cancel()

	body, err := json.Marshal(embeddingRequest{Title: title, Description: description})
	if err != nil {
		return domain.RoleOther, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return domain.RoleOther, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.RoleOther, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return domain.RoleOther, fmt.Errorf("embedding service returned %d", resp.StatusCode)
	}

	var decoded embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RoleOther, fmt.Errorf("decode response: %w", err)
	}

	role := domain.RoleType(decoded.RoleType)
	if !role.Valid() || decoded.Confidence < minEmbeddingConfidence {
		return domain.RoleOther, nil
	}

	c.log.Debug("embedding fallback classified",
		logger.String("role", string(role)),
		logger.Float64("confidence", decoded.Confidence))
	return role, nil
}

func (c *HTTPEmbeddingClassifier) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy status: %d", resp.StatusCode)
	}
	return nil
}
