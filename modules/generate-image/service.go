package generateimage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
)

const predictionsPath = "/predictions"

// Service - client for the external prediction service
type Service struct {
	httpClient *http.Client
	intn       func(n int) int
}

// Option - Service setting
type Option func(*Service)

// WithHTTPClient - replace the outbound HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		s.httpClient = c
	}
}

// WithRandIntn - replace the random source used for seeds. intn must be safe for concurrent use.
func WithRandIntn(intn func(n int) int) Option {
	return func(s *Service) {
		s.intn = intn
	}
}

// NewService - the outbound call has no timeout of its own; it ends with the caller's context
func NewService(opts ...Option) *Service {
	s := &Service{
		httpClient: &http.Client{},
		intn:       rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveSeed - seed when set and non-zero, otherwise a random value in [0, MaxSeed)
func (s *Service) ResolveSeed(seed *int64) int64 {
	if seed != nil && *seed != 0 {
		return *seed
	}
	return int64(s.intn(MaxSeed))
}

// Predict - POST {baseURL}/predictions and decode the result.
// The response status code is not checked; a body without output is an error.
func (s *Service) Predict(ctx context.Context, baseURL string, input PredictionInput) (*PredictionResult, error) {
	body, err := json.Marshal(PredictionRequest{Input: input})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+predictionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	var result PredictionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response (status %d): %w", resp.StatusCode, err)
	}

	if result.Output == nil {
		if result.Error != nil && *result.Error != "" {
			return nil, fmt.Errorf("%w (status %d, %s): %s", ErrNoOutput, resp.StatusCode, result.Status, *result.Error)
		}
		return nil, fmt.Errorf("%w (status %d, %s)", ErrNoOutput, resp.StatusCode, result.Status)
	}

	return &result, nil
}
