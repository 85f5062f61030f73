package domain

import (
	"context"
	"errors"
)

// ErrResultQuizMissing is returned by CreateResult when the referenced quiz does not
// exist for the result's user.
var ErrResultQuizMissing = errors.New("quiz does not exist for this user")

// QuizRepository persists quizzes and their questions. Every read and delete is scoped
// to the owner in the same predicate; a quiz owned by someone else is reported as missing.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	CreateQuestions(ctx context.Context, questions []*Question) error
	// GetQuizByIDAndOwner returns (nil, nil) when no quiz matches both id and owner.
	GetQuizByIDAndOwner(ctx context.Context, quizID, userID string) (*Quiz, error)
	ListQuizzesByOwner(ctx context.Context, userID string) ([]*Quiz, error)
	// DeleteQuizByIDAndOwner reports whether a row was deleted.
	DeleteQuizByIDAndOwner(ctx context.Context, quizID, userID string) (bool, error)
}

// QuizResultRepository persists scored submissions.
type QuizResultRepository interface {
	// CreateResult fails with ErrResultQuizMissing when the quiz is gone or owned by someone else.
	CreateResult(ctx context.Context, result *QuizResult) error
	ListResultsByOwner(ctx context.Context, userID string) ([]*QuizResult, error)
}

// TransactionManager runs fn in a transaction carried by the context passed to it.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
