package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-gen/internal/domain"
	"quiz-gen/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiQuizGenerator implements domain.QuestionGenerator using the Gemini API.
type GeminiQuizGenerator struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGeminiQuizGenerator creates a new instance of GeminiQuizGenerator.
func NewGeminiQuizGenerator(ctx context.Context, apiKey, modelName string, temperature float64) (*GeminiQuizGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	return newGeminiQuizGenerator(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, modelName, temperature)
}

func newGeminiQuizGenerator(ctx context.Context, clientCfg *genai.ClientConfig, modelName string, temperature float64) (*GeminiQuizGenerator, error) {
	if modelName == "" {
		return nil, fmt.Errorf("gemini model name cannot be empty")
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	logger.Get().Info("Initializing GeminiQuizGenerator", zap.String("model", modelName))
	return &GeminiQuizGenerator{
		client:      client,
		modelName:   modelName,
		temperature: float32(temperature),
	}, nil
}

// GenerateQuestions implements domain.QuestionGenerator
func (g *GeminiQuizGenerator) GenerateQuestions(ctx context.Context, req domain.GenerationRequest) (string, error) {
	l := logger.Get()
	prompt := BuildPrompt(req)

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("Gemini request timed out", zap.String("model", g.modelName), zap.Error(err))
			return "", fmt.Errorf("gemini request timed out: %w", err)
		}
		l.Error("Gemini request failed", zap.String("model", g.modelName), zap.Error(err))
		return "", fmt.Errorf("gemini call failed: %w", err)
	}

	text := result.Text()
	l.Debug("Gemini response received",
		zap.String("model", g.modelName),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("length", len(text)))
	return text, nil
}

var _ domain.QuestionGenerator = (*GeminiQuizGenerator)(nil)
