package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go-ekyc-ocr/images"
)

const (
	PaddleEngineName = "paddle"
	paddleImageFile  = 1
)

// PaddleClient talks to a PaddleOCR serving endpoint.
type PaddleClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPaddleClient creates a new instance of PaddleClient
func NewPaddleClient(baseURL string) *PaddleClient {
	return &PaddleClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *PaddleClient) Name() string {
	return PaddleEngineName
}

type paddleResponse struct {
	ErrorCode int    `json:"errorCode"`
	ErrorMsg  string `json:"errorMsg"`
	Result    struct {
		OCRResults []struct {
			PrunedResult struct {
				RecTexts  []string  `json:"rec_texts"`
				RecScores []float64 `json:"rec_scores"`
			} `json:"prunedResult"`
		} `json:"ocrResults"`
	} `json:"result"`
}

// Recognize sends the image to the OCR pipeline and returns its text lines.
func (c *PaddleClient) Recognize(ctx context.Context, png []byte) (Result, error) {
	url := fmt.Sprintf("%s/ocr", c.baseURL)

	requestBody := map[string]any{
		"file":     images.EncodeBase64(png),
		"fileType": paddleImageFile,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to execute ocr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("ocr failed with status %d: %s", resp.StatusCode, string(body))
	}

	var paddle paddleResponse
	if err := json.NewDecoder(resp.Body).Decode(&paddle); err != nil {
		return Result{}, fmt.Errorf("failed to decode ocr response: %w", err)
	}
	if paddle.ErrorCode != 0 {
		return Result{}, fmt.Errorf("ocr failed with error code %d: %s", paddle.ErrorCode, paddle.ErrorMsg)
	}

	var result Result
	if len(paddle.Result.OCRResults) > 0 {
		pruned := paddle.Result.OCRResults[0].PrunedResult
		result.Tokens = pruned.RecTexts
		result.Scores = pruned.RecScores
	}
	result.Confidence = Mean(result.Scores)

	slog.Debug("Paddle OCR completed", "tokens", len(result.Tokens), "confidence", result.Confidence)
	return result, nil
}

// HealthCheck verifies the OCR service is available
func (c *PaddleClient) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute health check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check failed with status %d: %s", resp.StatusCode, string(body))
	}

	slog.Info("Paddle OCR health check passed")
	return nil
}
