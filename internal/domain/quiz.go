package domain

import (
	"strings"
	"time"
)

const (
	MinQuestions     = 5
	MaxQuestions     = 20
	DefaultQuestions = 5
	MaxTopicLength   = 200
)

// Difficulty is the requested level of a generated quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts easy/medium/hard in any case. Empty input means easy.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DifficultyEasy, true
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	default:
		return "", false
	}
}

// NormalizeOption upper-cases and trims an option letter and reports whether it is one of A-D.
func NormalizeOption(s string) (string, bool) {
	letter := strings.ToUpper(strings.TrimSpace(s))
	switch letter {
	case "A", "B", "C", "D":
		return letter, true
	default:
		return letter, false
	}
}

// Quiz is a set of generated questions owned by one user.
type Quiz struct {
	ID           string
	UserID       string
	Topic        string
	NumQuestions int
	Difficulty   Difficulty
	CreatedAt    time.Time
	Questions    []*Question
	Owner        *User
}

// Question is one multiple-choice item. CorrectOption is always an upper-case letter A-D.
type Question struct {
	ID            string
	QuizID        string
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
}

// QuestionIndex maps question ids to questions of the quiz.
func (q *Quiz) QuestionIndex() map[string]*Question {
	idx := make(map[string]*Question, len(q.Questions))
	for _, question := range q.Questions {
		idx[question.ID] = question
	}
	return idx
}

// QuizResult is an immutable scored submission.
type QuizResult struct {
	ID          string
	UserID      string
	QuizID      string
	Score       int
	CompletedAt time.Time
	Answers     map[string]string
	Quiz        *Quiz
	Owner       *User
}
