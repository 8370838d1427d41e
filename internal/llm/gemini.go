package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient on the Gemini API through the genai SDK.
type geminiClient struct {
	cfg      LLMConfig
	model    string
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates an LLMClient backed by Gemini. cfg.Endpoint, when
// set to something other than the Ollama default, replaces the API base URL.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini requires an api key", ErrProviderConfig)
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{},
	}
	if cfg.Endpoint != "" && cfg.Endpoint != DefaultConfig().Endpoint {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{
		cfg:      cfg,
		model:    cfg.EffectiveModel(),
		client:   client,
		observer: observer,
	}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.sampling(req)
	temp32 := float32(temp)
	gc := &genai.GenerateContentConfig{
		Temperature:     &temp32,
		MaxOutputTokens: int32(maxTok),
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	cl := call{cfg: c.cfg, provider: ProviderGemini, model: c.model, observer: c.observer}
	return cl.run(ctx, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.UserPrompt), gc)
		if err != nil {
			var apiErr genai.APIError
			if errors.As(err, &apiErr) && !retryableStatus(apiErr.Code) {
				return "", "", permanent(err)
			}
			return "", "", err
		}
		return resp.Text(), resp.ModelVersion, nil
	})
}

func (c *geminiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := c.client.Models.Get(ctx, c.model, nil)
	return err == nil
}
