package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-gen/internal/domain"
	"quiz-gen/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LangchainQuizGenerator implements domain.QuestionGenerator on any langchaingo model.
type LangchainQuizGenerator struct {
	llm         llms.Model
	provider    string
	temperature float64
}

// NewLangchainQuizGenerator wraps an already constructed model.
func NewLangchainQuizGenerator(llm llms.Model, provider string, temperature float64) (*LangchainQuizGenerator, error) {
	if llm == nil {
		return nil, errors.New("llm client cannot be nil")
	}
	return &LangchainQuizGenerator{llm: llm, provider: provider, temperature: temperature}, nil
}

// NewOllamaQuizGenerator creates a generator backed by a local Ollama server.
func NewOllamaQuizGenerator(serverURL, modelName string, temperature float64) (*LangchainQuizGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return NewLangchainQuizGenerator(llm, "ollama", temperature)
}

// NewOpenAIQuizGenerator creates a generator backed by the OpenAI chat API.
func NewOpenAIQuizGenerator(apiKey, modelName string, temperature float64) (*LangchainQuizGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("openai model name cannot be empty")
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return NewLangchainQuizGenerator(llm, "openai", temperature)
}

// GenerateQuestions implements domain.QuestionGenerator
func (g *LangchainQuizGenerator) GenerateQuestions(ctx context.Context, req domain.GenerationRequest) (string, error) {
	l := logger.Get()
	prompt := BuildPrompt(req)

	start := time.Now()
	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.String("provider", g.provider), zap.Error(err))
			return "", fmt.Errorf("%s request timed out: %w", g.provider, err)
		}
		l.Error("Failed to get response from LLM", zap.String("provider", g.provider), zap.Error(err))
		return "", fmt.Errorf("%s call failed: %w", g.provider, err)
	}

	l.Debug("LLM response received",
		zap.String("provider", g.provider),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("length", len(response)))
	return response, nil
}

var _ domain.QuestionGenerator = (*LangchainQuizGenerator)(nil)
