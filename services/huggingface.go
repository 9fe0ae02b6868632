package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tripwise/metrics"
)

const (
	DefaultHFModel  = "mistralai/Mistral-7B-Instruct-v0.3"
	hfInferenceBase = "https://api-inference.huggingface.co/models"
	hfMaxNewTokens  = 1500
	hfTemperature   = 0.6
)

// HuggingFaceClient is a Generator backed by the HuggingFace inference API.
type HuggingFaceClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewHuggingFaceClient(apiKey, model string, timeout time.Duration) *HuggingFaceClient {
	if model == "" {
		model = DefaultHFModel
	}
	return &HuggingFaceClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: hfInferenceBase,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// GenerateContent wraps prompt in the instruction markers Mistral-style
// models expect and returns the first generated text.
func (c *HuggingFaceClient) GenerateContent(ctx context.Context, prompt string) (text string, err error) {
	if c.apiKey == "" {
		return "", errors.New("huggingface API key not configured")
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstream("huggingface", start, err) }()

	reqBody := hfRequest{
		Inputs: "[INST] " + strings.TrimSpace(prompt) + " [/INST]",
		Parameters: hfParameters{
			MaxNewTokens:   hfMaxNewTokens,
			Temperature:    hfTemperature,
			ReturnFullText: false,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(c.baseURL, "/"), c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", errors.New("AI model is loading, please retry in a few seconds")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HuggingFace API error (%d): %s", resp.StatusCode, string(body))
	}

	var hfResp hfResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %w", err)
	}
	if len(hfResp) == 0 || hfResp[0].GeneratedText == "" {
		return "", errors.New("empty response from AI")
	}
	return hfResp[0].GeneratedText, nil
}
