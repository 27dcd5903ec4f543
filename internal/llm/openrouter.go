package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"golang.org/x/time/rate"
)

const (
	openRouterBaseURL        = "https://openrouter.ai/api/v1/"
	defaultOpenRouterModel   = "google/gemini-2.0-flash-exp:free"
	defaultMaxTokens         = 2000
	defaultTemperature       = 0.3
	defaultUpstreamTimeout   = 30 * time.Second
	defaultReferer           = "http://localhost:3000"
	defaultTitle             = "English to Python Translator"
	openRouterRequestsPerSec = 5
	openRouterBurst          = 10
)

const systemPrompt = `You are an expert Python programmer. Convert natural language descriptions to clean, efficient Python code.

Guidelines:
- Provide complete, working Python code
- Include proper documentation and comments
- Use best practices and clean coding standards
- Add example usage when helpful
- For functions, include docstrings
- For classes, include proper __init__ methods
- Handle edge cases appropriately
- Use meaningful variable names
- Provide only the code with minimal explanation unless asked`

type OpenRouterConfig struct {
	APIKey      string
	Model       string
	BaseURL     string // override for tests and self-hosted gateways
	MaxTokens   int64
	Temperature float64
	Timeout     time.Duration // time allowed until response headers arrive
	Referer     string
	Title       string
}

// streams chat completions from OpenRouter's OpenAI-compatible API
type OpenRouterGenerator struct {
	config  OpenRouterConfig
	client  openai.Client
	limiter *rate.Limiter
}

func NewOpenRouterGenerator(config OpenRouterConfig) *OpenRouterGenerator {
	if config.Model == "" {
		config.Model = defaultOpenRouterModel
	}

	if config.BaseURL == "" {
		config.BaseURL = openRouterBaseURL
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}

	if config.Temperature == 0 {
		config.Temperature = defaultTemperature
	}

	if config.Timeout == 0 {
		config.Timeout = defaultUpstreamTimeout
	}

	if config.Referer == "" {
		config.Referer = defaultReferer
	}

	if config.Title == "" {
		config.Title = defaultTitle
	}

	// no overall client timeout: it would cut long streams short
	httpClient := &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: config.Timeout,
		},
	}

	client := openai.NewClient(
		option.WithAPIKey(config.APIKey),
		option.WithBaseURL(config.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithHeader("HTTP-Referer", config.Referer),
		option.WithHeader("X-Title", config.Title),
		option.WithMaxRetries(0),
	)

	return &OpenRouterGenerator{
		config:  config,
		client:  client,
		limiter: rate.NewLimiter(openRouterRequestsPerSec, openRouterBurst),
	}
}

func (g *OpenRouterGenerator) Name() string {
	return "openrouter:" + g.config.Model
}

func (g *OpenRouterGenerator) Stream(ctx context.Context, prompt string, emit func(fragment string) error) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.config.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(g.config.MaxTokens),
		Temperature: openai.Float(g.config.Temperature),
	}

	stream := g.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close() //nolint:errcheck

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}

		content := chunk.Choices[0].Delta.Content
		if content == "" {
			continue
		}

		if err := emit(content); err != nil {
			return err
		}
	}

	if err := stream.Err(); err != nil {
		return classifyUpstreamError(ctx, err)
	}

	return nil
}

// maps transport and API failures onto StatusError, ErrTimeout and ErrNetwork
func classifyUpstreamError(ctx context.Context, err error) error {
	// the caller went away; not an upstream fault
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return ctx.Err()
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &StatusError{StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	return fmt.Errorf("openrouter streaming error: %w", err)
}
