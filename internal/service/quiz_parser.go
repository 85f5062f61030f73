package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"quiz-gen/internal/domain"
	"quiz-gen/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrEmptyGeneratorOutput = errors.New("generator returned no content")
	ErrNoJSONArray          = errors.New("generator output contains no JSON array")
	ErrTooFewQuestions      = errors.New("generator returned fewer questions than requested")
)

// CleanGeneratorOutput strips code fences and <think> blocks and returns the outermost
// JSON array found in raw, or an empty string when there is none.
func CleanGeneratorOutput(raw string) string {
	cleaned := strings.TrimSpace(raw)

	for {
		thinkStart := strings.Index(cleaned, "<think>")
		if thinkStart == -1 {
			break
		}
		thinkEnd := strings.Index(cleaned[thinkStart:], "</think>")
		if thinkEnd == -1 {
			cleaned = cleaned[:thinkStart]
			break
		}
		cleaned = cleaned[:thinkStart] + cleaned[thinkStart+thinkEnd+len("</think>"):]
	}

	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return cleaned[start : end+1]
}

// ParseGeneratedQuestions decodes generator output into exactly want questions.
// Extra records are dropped; fewer records or any invalid record is an error.
func ParseGeneratedQuestions(raw string, want int) ([]domain.GeneratedQuestion, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyGeneratorOutput
	}

	payload := CleanGeneratorOutput(raw)
	if payload == "" {
		return nil, ErrNoJSONArray
	}

	var records []domain.GeneratedQuestion
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		logger.Get().Debug("Failed to decode generator output", zap.String("payload", payload), zap.Error(err))
		return nil, fmt.Errorf("failed to decode generator output: %w", err)
	}

	if len(records) < want {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrTooFewQuestions, len(records), want)
	}
	if len(records) > want {
		logger.Get().Debug("Dropping extra generated questions", zap.Int("got", len(records)), zap.Int("want", want))
		records = records[:want]
	}

	for i := range records {
		r := &records[i]
		r.Question = strings.TrimSpace(r.Question)
		r.A = strings.TrimSpace(r.A)
		r.B = strings.TrimSpace(r.B)
		r.C = strings.TrimSpace(r.C)
		r.D = strings.TrimSpace(r.D)
		if r.Question == "" || r.A == "" || r.B == "" || r.C == "" || r.D == "" {
			return nil, fmt.Errorf("generated question %d has blank fields", i+1)
		}
		letter, ok := domain.NormalizeOption(r.Correct)
		if !ok {
			return nil, fmt.Errorf("generated question %d has invalid correct option %q", i+1, r.Correct)
		}
		r.Correct = letter
	}

	return records, nil
}
