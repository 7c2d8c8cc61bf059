package providers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com"

	imageModel   = "dall-e-3"
	imageSize    = "1024x1024"
	imageQuality = "standard"
)

type ImageGenerator interface {
	// GenerateImage returns the URL of a freshly generated image.
	GenerateImage(ctx context.Context, prompt string) (string, error)
	DownloadImage(ctx context.Context, imageURL string) ([]byte, error)
}

type imageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type openAIImageGenerator struct {
	accessToken string
	baseURL     string
	generate    *upstream
	download    *upstream
}

// NewOpenAIImageGenerator builds an image client. The generation call can
// take far longer than ordinary API calls, so callers usually pass a larger
// Timeout than for the other providers.
func NewOpenAIImageGenerator(accessToken string, opts ClientOptions) ImageGenerator {
	opts = opts.withDefaults(DefaultOpenAIBaseURL)

	return &openAIImageGenerator{
		accessToken: accessToken,
		baseURL:     opts.BaseURL,
		generate:    newUpstream("openai-images", opts, openAIErrorDetail),
		download:    newUpstream("openai-image-download", opts, nil),
	}
}

func openAIErrorDetail(body []byte) string {
	var resp openAIErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error.Message
}

func (g *openAIImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(imageGenerationRequest{
		Model:          imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           imageSize,
		Quality:        imageQuality,
		ResponseFormat: "url",
	})
	if err != nil {
		return "", fmt.Errorf("encode image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/images/generations", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.accessToken)
	req.Header.Set("Content-Type", "application/json")

	body, err := g.generate.do(req)
	if err != nil {
		return "", err
	}

	var resp imageGenerationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", g.generate.malformed("%v", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", g.generate.malformed("no image url")
	}

	return resp.Data[0].URL, nil
}

func (g *openAIImageGenerator) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build image download request: %w", err)
	}

	body, err := g.download.do(req)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, g.download.malformed("empty image")
	}

	return body, nil
}
