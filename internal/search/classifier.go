package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClassifier calls a zero-shot classification endpoint that speaks the
// Hugging Face inference payload.
type HTTPClassifier struct {
	url    string
	apiKey string
	client *http.Client
}

// NewHTTPClassifier creates a classifier for the given endpoint.
func NewHTTPClassifier(url, apiKey string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters classifyParameters `json:"parameters"`
}

type classifyParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

// classifyResponse is the classic pipeline output.
type classifyResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// labelScore is the list form returned by newer inference endpoints.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns the highest scoring label for text.
func (c *HTTPClassifier) Classify(ctx context.Context, text string, labels []string) (string, error) {
	if len(labels) == 0 {
		return "", errors.New("no candidate labels given")
	}

	body, err := json.Marshal(classifyRequest{
		Inputs:     text,
		Parameters: classifyParameters{CandidateLabels: labels},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call classifier: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read classifier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	return topLabel(raw)
}

func topLabel(raw []byte) (string, error) {
	var classic classifyResponse
	if err := json.Unmarshal(raw, &classic); err == nil && len(classic.Labels) > 0 {
		best := 0
		for i := range classic.Labels {
			if i < len(classic.Scores) && best < len(classic.Scores) && classic.Scores[i] > classic.Scores[best] {
				best = i
			}
		}
		return classic.Labels[best], nil
	}

	var scored []labelScore
	if err := json.Unmarshal(raw, &scored); err == nil && len(scored) > 0 {
		best := scored[0]
		for _, s := range scored[1:] {
			if s.Score > best.Score {
				best = s
			}
		}
		return best.Label, nil
	}

	return "", fmt.Errorf("unexpected classifier response: %s", truncate(raw, 200))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
