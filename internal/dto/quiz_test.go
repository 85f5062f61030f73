package dto

import (
	"testing"
	"time"

	"quiz-gen/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuizResultResponse(t *testing.T) {
	now := time.Now()
	owner := &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", PasswordHash: "secret"}
	quiz := &domain.Quiz{
		ID: "qz1", Topic: "History", NumQuestions: 5, Difficulty: domain.DifficultyEasy, CreatedAt: now,
		Questions: []*domain.Question{{ID: "q1", Text: "When?", OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4", CorrectOption: "C"}},
		Owner:     owner,
	}
	result := &domain.QuizResult{ID: "r1", Score: 1, CompletedAt: now, Quiz: quiz, Owner: owner}

	resp := NewQuizResultResponse(result)
	require.NotNil(t, resp)
	assert.Equal(t, "r1", resp.ID)
	assert.Equal(t, "easy", resp.Quiz.Difficulty)
	require.Len(t, resp.Quiz.Questions, 1)
	assert.Equal(t, "C", resp.Quiz.Questions[0].CorrectOption)
	assert.Equal(t, &UserResponse{ID: "u1", Username: "alice", Email: "alice@example.com"}, resp.User)
	assert.NotNil(t, resp.Answers)

	assert.Nil(t, NewQuizResultResponse(nil))
	assert.Nil(t, NewQuizResponse(nil))
	assert.Nil(t, NewUserResponse(nil))
}

func TestNewQuizResponse_EmptyQuestions(t *testing.T) {
	resp := NewQuizResponse(&domain.Quiz{ID: "qz1"})
	assert.NotNil(t, resp.Questions)
	assert.Empty(t, resp.Questions)
	assert.Nil(t, resp.User)
}
