package cache

import "strings"

const (
	GlobalKeyPrefix = "quizgen"
)

// GenerateCacheKey builds "quizgen:<service>:<object>:<id>[:<params joined by _>]".
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizKey is the cache key of one owner's view of a quiz.
func QuizKey(userID, quizID string) string {
	return GenerateCacheKey("quiz", "quiz", quizID, userID)
}
