package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"quiz-gen/internal/domain"
)

const (
	maxUsernameLength = 150
	maxPasswordLength = 72 // bcrypt input limit
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRegisterRequest validates account creation input.
func (v *Validator) ValidateRegisterRequest(username, email, password string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(username) == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	} else if n := utf8.RuneCountInString(username); n > maxUsernameLength {
		errors = append(errors, domain.NewOutOfRangeError("username", n, 1, maxUsernameLength))
	}

	if strings.TrimSpace(email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !emailPattern.MatchString(email) {
		errors = append(errors, domain.NewInvalidFormatError("email", "not a valid email address"))
	}

	if password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(password) > maxPasswordLength {
		errors = append(errors, domain.NewOutOfRangeError("password", len(password), 1, maxPasswordLength))
	}

	return errors
}

// ValidateCreateQuizRequest validates topic, question count and difficulty.
func (v *Validator) ValidateCreateQuizRequest(topic string, numQuestions int, difficulty string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if n := utf8.RuneCountInString(topic); n > domain.MaxTopicLength {
		errors = append(errors, domain.NewOutOfRangeError("topic", n, 1, domain.MaxTopicLength))
	}

	if numQuestions < domain.MinQuestions || numQuestions > domain.MaxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", numQuestions, domain.MinQuestions, domain.MaxQuestions))
	}

	if _, ok := domain.ParseDifficulty(difficulty); !ok {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", "must be one of easy, medium, hard"))
	}

	return errors
}

// ValidateSubmission checks every answer against the quiz's questions and returns the
// answers with normalized upper-case letters. Any error rejects the whole submission.
func (v *Validator) ValidateSubmission(questions map[string]*domain.Question, answers map[string]string) (map[string]string, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	normalized := make(map[string]string, len(answers))

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		field := fmt.Sprintf("answers.%s", id)
		if _, ok := questions[id]; !ok {
			errors = append(errors, domain.NewInvalidFormatError(field, "question does not belong to this quiz"))
			continue
		}
		letter, ok := domain.NormalizeOption(answers[id])
		if !ok {
			errors = append(errors, domain.NewInvalidFormatError(field, "must be one of A, B, C, D"))
			continue
		}
		normalized[id] = letter
	}

	if len(errors) > 0 {
		return nil, errors
	}
	return normalized, nil
}
