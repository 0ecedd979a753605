package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// Request is one call to the generative content service.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Model        string
	MaxTokens    int
	Temperature  float64
}

// LLMClient is the interface all generator backends satisfy.
type LLMClient interface {
	Generate(ctx context.Context, req Request) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// NewClient selects the LLM backend from the environment: the claude CLI
// for local plans, mock data for offline dev, or the Anthropic API.
func NewClient() LLMClient {
	if os.Getenv("USE_CLI_GENERATOR") == "true" {
		cliPath := os.Getenv("CLAUDE_CLI_PATH")
		if cliPath == "" {
			cliPath = "claude"
		}
		log.Println("Generator using Claude CLI (local plan)")
		return NewCLIClient(cliPath)
	}
	if os.Getenv("MOCK_GENERATOR") == "true" {
		log.Println("Generator using mock data")
		return NewMockClient()
	}
	log.Println("Generator using Anthropic API")
	return NewAPIClient()
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
}

func NewAPIClient() *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client}
}

func (c *APIClient) Generate(ctx context.Context, req Request) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: param.NewOpt(req.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, req Request) (*LLMResponse, error) {
	mockJSON := fmt.Sprintf(`{
  "content": "[Mock] A student investigates the effect of temperature on reaction rate. Describe a method the student could use, and explain the result you would expect.",
  "marks": 4,
  "solution": "[Mock] As temperature increases, particles gain kinetic energy, collide more frequently and with more energy, so the rate of reaction increases.",
  "mark_scheme": [
    "B1 method names the independent and dependent variables",
    "B1 at least one controlled variable identified",
    "B1 higher temperature increases collision frequency",
    "B1 more collisions exceed the activation energy"
  ]
}`)
	return &LLMResponse{
		Content:      mockJSON,
		PromptTokens: 900,
		OutputTokens: 400,
	}, nil
}
