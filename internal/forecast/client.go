// Package forecast talks to the external price-prediction service and
// builds the feature vectors it expects.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"
)

// Client calls the forecaster over HTTP. The service exposes its training
// feature columns on /features and scores one vector per /predict call.
type Client struct {
	host       string
	httpClient *http.Client

	mu      sync.Mutex
	columns []string
}

func NewClient(host string, timeout time.Duration) *Client {
	return &Client{
		host:       host,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type featuresResponse struct {
	Columns []string `json:"columns"`
}

type predictRequest struct {
	Features map[string]float64 `json:"features"`
}

type predictResponse struct {
	Price float64 `json:"price"`
}

// FeatureColumns returns the forecaster's feature-column names. The set is
// fixed at training time, so it is fetched once and cached. The lock only
// guards the cached slice, never the round-trip: concurrent first calls may
// fetch twice, and the last write wins.
func (c *Client) FeatureColumns(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	columns := c.columns
	c.mu.Unlock()
	if columns != nil {
		return columns, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/features", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feature columns: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecaster returned status %d for /features", resp.StatusCode)
	}

	var fr featuresResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, fmt.Errorf("failed to decode feature columns: %w", err)
	}
	if len(fr.Columns) == 0 {
		return nil, fmt.Errorf("forecaster reported no feature columns")
	}

	c.mu.Lock()
	c.columns = fr.Columns
	c.mu.Unlock()
	return fr.Columns, nil
}

// Predict scores one feature vector and returns the predicted unit price.
func (c *Client) Predict(ctx context.Context, features map[string]float64) (float64, error) {
	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call forecaster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("forecaster returned status %d for /predict", resp.StatusCode)
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return 0, fmt.Errorf("failed to decode prediction: %w", err)
	}
	if math.IsNaN(pr.Price) || math.IsInf(pr.Price, 0) {
		return 0, fmt.Errorf("forecaster returned invalid price")
	}

	return pr.Price, nil
}
