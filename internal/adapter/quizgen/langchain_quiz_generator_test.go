package quizgen_test

import (
	"context"
	"errors"
	"testing"

	"quiz-gen/internal/adapter/quizgen"
	"quiz-gen/internal/config"
	"quiz-gen/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an llms.Model that records the prompt and returns a canned reply.
type fakeModel struct {
	reply       string
	err         error
	prompt      string
	temperature float64
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}
	f.temperature = opts.Temperature
	for _, m := range messages {
		for _, p := range m.Parts {
			if tc, ok := p.(llms.TextContent); ok {
				f.prompt += tc.Text
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestBuildPrompt(t *testing.T) {
	prompt := quizgen.BuildPrompt(domain.GenerationRequest{Topic: "History", NumQuestions: 5, Difficulty: domain.DifficultyEasy})
	assert.Contains(t, prompt, "Generate 5 multiple-choice questions on 'History' at easy level.")
	assert.Contains(t, prompt, `"correct": "A"`)
	assert.Contains(t, prompt, "No extra text.")
}

func TestLangchainQuizGenerator_GenerateQuestions(t *testing.T) {
	model := &fakeModel{reply: `[{"question":"q"}]`}
	gen, err := quizgen.NewLangchainQuizGenerator(model, "fake", 0.3)
	require.NoError(t, err)

	out, err := gen.GenerateQuestions(context.Background(), domain.GenerationRequest{Topic: "Go", NumQuestions: 7, Difficulty: domain.DifficultyHard})
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"q"}]`, out)
	assert.Contains(t, model.prompt, "Generate 7 multiple-choice questions on 'Go' at hard level.")
	assert.InDelta(t, 0.3, model.temperature, 1e-9)
}

func TestLangchainQuizGenerator_Errors(t *testing.T) {
	gen, err := quizgen.NewLangchainQuizGenerator(&fakeModel{err: errors.New("model not found")}, "fake", 0.7)
	require.NoError(t, err)
	_, err = gen.GenerateQuestions(context.Background(), domain.GenerationRequest{Topic: "Go", NumQuestions: 5})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fake call failed")

	gen, err = quizgen.NewLangchainQuizGenerator(&fakeModel{err: context.DeadlineExceeded}, "fake", 0.7)
	require.NoError(t, err)
	_, err = gen.GenerateQuestions(context.Background(), domain.GenerationRequest{Topic: "Go", NumQuestions: 5})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = quizgen.NewLangchainQuizGenerator(nil, "fake", 0.7)
	assert.Error(t, err)
}

func TestNewOllamaQuizGenerator(t *testing.T) {
	gen, err := quizgen.NewOllamaQuizGenerator("http://localhost:11434", "llama3", 0.7)
	assert.NoError(t, err)
	assert.NotNil(t, gen)

	_, err = quizgen.NewOllamaQuizGenerator("", "llama3", 0.7)
	assert.ErrorContains(t, err, "server URL cannot be empty")

	_, err = quizgen.NewOllamaQuizGenerator("http://localhost:11434", "", 0.7)
	assert.ErrorContains(t, err, "model name cannot be empty")
}

func TestNewOpenAIQuizGenerator(t *testing.T) {
	gen, err := quizgen.NewOpenAIQuizGenerator("sk-test", "gpt-4o-mini", 0.7)
	assert.NoError(t, err)
	assert.NotNil(t, gen)

	_, err = quizgen.NewOpenAIQuizGenerator("", "gpt-4o-mini", 0.7)
	assert.ErrorContains(t, err, "API key cannot be empty")
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()

	gen, err := quizgen.NewFromConfig(ctx, config.GeneratorConfig{Provider: config.ProviderOllama, Model: "llama3", OllamaServer: "http://localhost:11434"})
	require.NoError(t, err)
	assert.IsType(t, &quizgen.LangchainQuizGenerator{}, gen)

	gen, err = quizgen.NewFromConfig(ctx, config.GeneratorConfig{Provider: config.ProviderGemini, Model: "gemini-2.0-flash", APIKey: "test-key"})
	require.NoError(t, err)
	assert.IsType(t, &quizgen.GeminiQuizGenerator{}, gen)

	gen, err = quizgen.NewFromConfig(ctx, config.GeneratorConfig{Provider: config.ProviderGemini, Model: "gemini-2.0-flash"})
	assert.Error(t, err)
	assert.Nil(t, gen)

	_, err = quizgen.NewFromConfig(ctx, config.GeneratorConfig{Provider: "bard"})
	assert.ErrorContains(t, err, "unknown generator provider")
}
