package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"quiz-gen/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resultRowColumns = []string{"ID", "USER_ID", "QUIZ_ID", "SCORE", "COMPLETED_AT", "ANSWERS"}

func TestQuizResultRepository_CreateResult(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizResultRepository(db)

	now := time.Now()
	result := &domain.QuizResult{
		ID: "r1", UserID: "u1", QuizID: "qz1", Score: 3, CompletedAt: now,
		Answers: map[string]string{"q1": "A"},
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO quiz_results (id, user_id, quiz_id, score, completed_at, answers)`)).
		WithArgs("r1", "u1", "qz1", 3, now, `{"q1":"A"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.CreateResult(context.Background(), result))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizResultRepository_CreateResult_Error(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizResultRepository(db)

	mock.ExpectExec(`INSERT INTO quiz_results`).WillReturnError(errors.New("ORA-12899: value too large for column"))

	err := repo.CreateResult(context.Background(), &domain.QuizResult{ID: "r1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create quiz result")
	assert.NotErrorIs(t, err, domain.ErrResultQuizMissing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizResultRepository_CreateResult_QuizMissing(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizResultRepository(db)

	mock.ExpectExec(`INSERT INTO quiz_results`).
		WillReturnError(errors.New("ORA-02291: integrity constraint (QUIZ.FK_QUIZ_RESULTS_QUIZ) violated - parent key not found"))

	err := repo.CreateResult(context.Background(), &domain.QuizResult{ID: "r1", UserID: "u-bob", QuizID: "q-alice"})
	assert.ErrorIs(t, err, domain.ErrResultQuizMissing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizResultRepository_ListResultsByOwner(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizResultRepository(db)

	t1 := time.Now().Add(-time.Minute)
	t2 := time.Now()
	mock.ExpectQuery(`FROM quiz_results\s+WHERE user_id = \? ORDER BY completed_at, id`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(resultRowColumns).
			AddRow("r1", "u1", "qz1", 5, t1, `{"q1":"A","q2":"B"}`).
			AddRow("r2", "u1", "qz1", 0, t2, nil))

	results, err := repo.ListResultsByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "r1", results[0].ID)
	assert.Equal(t, map[string]string{"q1": "A", "q2": "B"}, results[0].Answers)
	assert.Equal(t, 0, results[1].Score)
	assert.NotNil(t, results[1].Answers)
	assert.Empty(t, results[1].Answers)
	assert.NoError(t, mock.ExpectationsWereMet())
}
