package domain

import "context"

// GenerationRequest describes the quiz a generator is asked to write.
type GenerationRequest struct {
	Topic        string
	NumQuestions int
	Difficulty   Difficulty
}

// QuestionGenerator produces raw generated text for a request. The text is expected to
// contain a JSON array of GeneratedQuestion records, possibly wrapped in extra formatting.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, req GenerationRequest) (string, error)
}

// GeneratedQuestion is the record shape generators are prompted to emit.
type GeneratedQuestion struct {
	Question string `json:"question"`
	A        string `json:"a"`
	B        string `json:"b"`
	C        string `json:"c"`
	D        string `json:"d"`
	Correct  string `json:"correct"`
}
