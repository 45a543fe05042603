package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gearmatch/internal/domain"
)

// RemoteFilterClient calls a candidate pre-filter endpoint and implements
// app.CandidateFilter. Callers treat every error as "use the full catalog".
type RemoteFilterClient struct {
	baseURL string
	client  *http.Client
}

func NewRemoteFilterClient(baseURL string) *RemoteFilterClient {
	return &RemoteFilterClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *RemoteFilterClient) CandidateIDs(ctx context.Context, category domain.Category, answers domain.Answers) ([]string, error) {
	body, err := json.Marshal(FilterRequest{
		Category: string(category),
		Answers:  answers,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/products/filter", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("filter endpoint returned %d", resp.StatusCode)
	}

	var parsed FilterResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.CandidateIDs, nil
}
