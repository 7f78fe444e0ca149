package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/cyberbobjr/javadoc-ai/internal/javaparse"
)

const systemPrompt = `You are an expert Java developer writing clear, comprehensive Javadoc comments. Generate professional Javadoc that:
- starts with a concise summary of what the element does
- includes @param tags for all parameters
- includes a @return tag for non-void methods
- includes @throws tags for declared exceptions
- follows standard Javadoc conventions and stays concise
Do NOT include the opening /** or closing */ markers and do NOT wrap the output in markdown code blocks.`

// OpenAIOptions configures the chat-completion generator.
type OpenAIOptions struct {
	APIKey      string
	BaseURL     string // optional OpenAI-compatible endpoint
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// OpenAIGenerator generates javadoc bodies through a chat-completion API.
type OpenAIGenerator struct {
	client *openai.Client
	opts   OpenAIOptions
	logger *slog.Logger
}

// NewOpenAI builds the generator. BaseURL allows internal OpenAI-compatible
// endpoints; the key is still passed through.
func NewOpenAI(opts OpenAIOptions, logger *slog.Logger) (*OpenAIGenerator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("llm api key is required")
	}
	if opts.Model == "" {
		opts.Model = openai.GPT4oMini
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(cfg), opts: opts, logger: logger}, nil
}

// Generate asks the model for a javadoc body. A timeout or an empty reply is
// a per-element skip, not a failure of the file.
func (g *OpenAIGenerator) Generate(ctx context.Context, el javaparse.Element, filePath, codeContext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	userPrompt := fmt.Sprintf(
		"Generate a Javadoc comment for this Java %s.\n\nFile: %s\nName: %s\nSignature: %s\n\nCode context:\n%s\n\nGenerate only the Javadoc content without /** and */ markers.",
		el.Kind, filePath, el.Name, el.Signature, codeContext,
	)

	req := openai.ChatCompletionRequest{
		Model:       g.opts.Model,
		Temperature: g.opts.Temperature,
		MaxTokens:   g.opts.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion for %s %s: %w", el.Kind, el.Name, err)
	}
	if len(resp.Choices) == 0 {
		g.logger.Warn("model returned no choices", "element", el.Name, "file", filePath)
		return "", nil
	}

	body := FormatBody(resp.Choices[0].Message.Content)
	if strings.TrimSpace(body) == "" {
		return "", nil
	}
	return body, nil
}
