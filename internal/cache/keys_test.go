package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "quiz",
			identifier:  "123",
			expectedKey: "quizgen:quiz:quiz:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "quiz",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "quizgen:quiz:quiz:123",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "result",
			objectType:  "list",
			identifier:  "abc",
			paramsKey:   []string{"p1", "p2"},
			expectedKey: "quizgen:result:list:abc:p1_p2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}

func TestQuizKey(t *testing.T) {
	assert.Equal(t, "quizgen:quiz:quiz:Q1:U1", QuizKey("U1", "Q1"))
	assert.NotEqual(t, QuizKey("U1", "Q1"), QuizKey("U2", "Q1"))
}
