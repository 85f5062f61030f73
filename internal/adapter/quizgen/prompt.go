package quizgen

import (
	"fmt"

	"quiz-gen/internal/domain"
)

const promptTemplate = `Generate %d multiple-choice questions on '%s' at %s level. ` +
	`Each question should have 4 options (A,B,C,D) and indicate the correct one. ` +
	`Format strictly as JSON array: [{"question": "text", "a": "optA", "b": "optB", "c": "optC", "d": "optD", "correct": "A"}, ...]. ` +
	`No extra text.`

// BuildPrompt renders the generation instruction for req.
func BuildPrompt(req domain.GenerationRequest) string {
	return fmt.Sprintf(promptTemplate, req.NumQuestions, req.Topic, req.Difficulty)
}
