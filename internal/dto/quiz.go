package dto

import (
	"time"

	"quiz-gen/internal/domain"
)

// CreateQuizRequest represents the request body for generating a quiz.
// @Description Request body for creating a quiz
type CreateQuizRequest struct {
	Topic        string `json:"topic"`
	NumQuestions *int   `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

// SubmitQuizRequest maps question id to the chosen option letter.
// @Description Request body for submitting quiz answers
type SubmitQuizRequest struct {
	Answers map[string]string `json:"answers"`
}

// UserResponse is the owner annotation attached to quizzes and results.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// QuestionResponse represents a generated question.
type QuestionResponse struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
}

// QuizResponse represents a quiz in the API response
// @Description Quiz information
type QuizResponse struct {
	ID           string             `json:"id"`
	Topic        string             `json:"topic"`
	NumQuestions int                `json:"num_questions"`
	Difficulty   string             `json:"difficulty"`
	CreatedAt    time.Time          `json:"created_at"`
	Questions    []QuestionResponse `json:"questions"`
	User         *UserResponse      `json:"user,omitempty"`
}

// QuizResultResponse represents a scored submission.
// @Description Quiz result information
type QuizResultResponse struct {
	ID          string            `json:"id"`
	Quiz        *QuizResponse     `json:"quiz"`
	Score       int               `json:"score"`
	CompletedAt time.Time         `json:"completed_at"`
	Answers     map[string]string `json:"answers"`
	User        *UserResponse     `json:"user,omitempty"`
}

func NewUserResponse(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func NewQuizResponse(q *domain.Quiz) *QuizResponse {
	if q == nil {
		return nil
	}
	questions := make([]QuestionResponse, 0, len(q.Questions))
	for _, qs := range q.Questions {
		questions = append(questions, QuestionResponse{
			ID:            qs.ID,
			Text:          qs.Text,
			OptionA:       qs.OptionA,
			OptionB:       qs.OptionB,
			OptionC:       qs.OptionC,
			OptionD:       qs.OptionD,
			CorrectOption: qs.CorrectOption,
		})
	}
	return &QuizResponse{
		ID:           q.ID,
		Topic:        q.Topic,
		NumQuestions: q.NumQuestions,
		Difficulty:   string(q.Difficulty),
		CreatedAt:    q.CreatedAt,
		Questions:    questions,
		User:         NewUserResponse(q.Owner),
	}
}

func NewQuizResultResponse(r *domain.QuizResult) *QuizResultResponse {
	if r == nil {
		return nil
	}
	answers := r.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	return &QuizResultResponse{
		ID:          r.ID,
		Quiz:        NewQuizResponse(r.Quiz),
		Score:       r.Score,
		CompletedAt: r.CompletedAt,
		Answers:     answers,
		User:        NewUserResponse(r.Owner),
	}
}
