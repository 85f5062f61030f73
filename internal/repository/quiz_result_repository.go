package repository

import (
	"context"
	"fmt"
	"strings"

	"quiz-gen/internal/domain"
	"quiz-gen/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizResultRepository implements domain.QuizResultRepository using sqlx.
type sqlxQuizResultRepository struct {
	db DBTX
}

func NewSQLXQuizResultRepository(db *sqlx.DB) domain.QuizResultRepository {
	return &sqlxQuizResultRepository{db: db}
}

func toModelQuizResult(r *domain.QuizResult) *models.QuizResult {
	return &models.QuizResult{
		ID:          r.ID,
		UserID:      r.UserID,
		QuizID:      r.QuizID,
		Score:       r.Score,
		CompletedAt: r.CompletedAt,
		Answers:     models.AnswerMap(r.Answers),
	}
}

func toDomainQuizResult(m *models.QuizResult) *domain.QuizResult {
	answers := map[string]string(m.Answers)
	if answers == nil {
		answers = map[string]string{}
	}
	return &domain.QuizResult{
		ID:          m.ID,
		UserID:      m.UserID,
		QuizID:      m.QuizID,
		Score:       m.Score,
		CompletedAt: m.CompletedAt,
		Answers:     answers,
	}
}

func (r *sqlxQuizResultRepository) CreateResult(ctx context.Context, result *domain.QuizResult) error {
	query := `INSERT INTO quiz_results (id, user_id, quiz_id, score, completed_at, answers)
	          VALUES (:ID, :USER_ID, :QUIZ_ID, :SCORE, :COMPLETED_AT, :ANSWERS)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, toModelQuizResult(result)); err != nil {
		// ORA-02291: parent key not found on fk_quiz_results_quiz (quiz_id, user_id)
		if strings.Contains(err.Error(), "ORA-02291") {
			return fmt.Errorf("failed to create quiz result: %w: %v", domain.ErrResultQuizMissing, err)
		}
		return fmt.Errorf("failed to create quiz result: %w", err)
	}
	return nil
}

// ListResultsByOwner returns the owner's results in completion order.
func (r *sqlxQuizResultRepository) ListResultsByOwner(ctx context.Context, userID string) ([]*domain.QuizResult, error) {
	exec := GetExecutor(ctx, r.db)

	var rows []models.QuizResult
	query := exec.Rebind(`SELECT id, user_id, quiz_id, score, completed_at, answers FROM quiz_results
	          WHERE user_id = ? ORDER BY completed_at, id`)
	if err := exec.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}

	results := make([]*domain.QuizResult, 0, len(rows))
	for i := range rows {
		results = append(results, toDomainQuizResult(&rows[i]))
	}
	return results, nil
}
