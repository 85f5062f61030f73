package quizgen

import (
	"context"
	"fmt"

	"quiz-gen/internal/config"
	"quiz-gen/internal/domain"
)

// NewFromConfig builds the generator selected by cfg.Provider.
func NewFromConfig(ctx context.Context, cfg config.GeneratorConfig) (domain.QuestionGenerator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := NewGeminiQuizGenerator(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderOllama:
		g, err := NewOllamaQuizGenerator(cfg.OllamaServer, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderOpenAI:
		g, err := NewOpenAIQuizGenerator(cfg.APIKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}
