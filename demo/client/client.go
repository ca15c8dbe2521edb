// Package client is a small HTTP client for the analysis API, used by the
// interactive demo.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"techatlas/orchestrator"
	"techatlas/types"
)

// Client talks to a running analysis server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new analysis API client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// StartResponse is the 202 payload returned when an analysis is accepted.
type StartResponse struct {
	TaskID         string `json:"task_id"`
	Status         string `json:"status"`
	CheckStatusURL string `json:"check_status_url"`
}

// StatusResponse is the task status payload, with results once completed.
type StatusResponse struct {
	TaskID   string                  `json:"task_id"`
	Status   orchestrator.TaskStatus `json:"status"`
	Progress int                     `json:"progress"`
	Message  string                  `json:"message"`
	Error    string                  `json:"error,omitempty"`
	Results  *types.AnalysisResult   `json:"results,omitempty"`
}

// StartAnalysis submits an analysis request and returns the accepted task.
func (c *Client) StartAnalysis(req types.AnalysisRequest) (*StartResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Post(c.baseURL+"/api/analysis", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to submit analysis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}
	var out StartResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// GetStatus polls the status of a previously submitted task.
func (c *Client) GetStatus(taskID string) (*StatusResponse, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/api/analysis/status/" + taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to poll status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}
	var out StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	return &out, nil
}
