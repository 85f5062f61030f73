package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quiz-gen/internal/domain"
	"quiz-gen/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const (
	quizColumns     = `id, user_id, topic, num_questions, difficulty, created_at`
	questionColumns = `id, quiz_id, position, text, option_a, option_b, option_c, option_d, correct_option`

	// Oracle rejects IN lists longer than 1000 expressions.
	maxInListSize = 500
)

// QuizDatabaseAdapter implements domain.QuizRepository on Oracle via sqlx.
type QuizDatabaseAdapter struct {
	db DBTX
}

func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:           q.ID,
		UserID:       q.UserID,
		Topic:        q.Topic,
		NumQuestions: q.NumQuestions,
		Difficulty:   string(q.Difficulty),
		CreatedAt:    q.CreatedAt,
	}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:           m.ID,
		UserID:       m.UserID,
		Topic:        m.Topic,
		NumQuestions: m.NumQuestions,
		Difficulty:   domain.Difficulty(m.Difficulty),
		CreatedAt:    m.CreatedAt,
		Questions:    []*domain.Question{},
	}
}

func toModelQuestion(q *domain.Question, position int) *models.Question {
	return &models.Question{
		ID:            q.ID,
		QuizID:        q.QuizID,
		Position:      position,
		Text:          q.Text,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectOption: q.CorrectOption,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Text:          m.Text,
		OptionA:       m.OptionA,
		OptionB:       m.OptionB,
		OptionC:       m.OptionC,
		OptionD:       m.OptionD,
		CorrectOption: m.CorrectOption,
	}
}

func (a *QuizDatabaseAdapter) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	query := `INSERT INTO quizzes (id, user_id, topic, num_questions, difficulty, created_at)
	          VALUES (:ID, :USER_ID, :TOPIC, :NUM_QUESTIONS, :DIFFICULTY, :CREATED_AT)`

	if _, err := GetExecutor(ctx, a.db).NamedExecContext(ctx, query, toModelQuiz(quiz)); err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// CreateQuestions inserts questions one row at a time; slice order becomes the stored position.
func (a *QuizDatabaseAdapter) CreateQuestions(ctx context.Context, questions []*domain.Question) error {
	query := `INSERT INTO questions (id, quiz_id, position, text, option_a, option_b, option_c, option_d, correct_option)
	          VALUES (:ID, :QUIZ_ID, :POSITION, :TEXT, :OPTION_A, :OPTION_B, :OPTION_C, :OPTION_D, :CORRECT_OPTION)`

	exec := GetExecutor(ctx, a.db)
	for i, q := range questions {
		if _, err := exec.NamedExecContext(ctx, query, toModelQuestion(q, i+1)); err != nil {
			return fmt.Errorf("failed to create question %d of quiz %s: %w", i+1, q.QuizID, err)
		}
	}
	return nil
}

// GetQuizByIDAndOwner loads a quiz and its questions. Returns (nil, nil) when absent or not owned.
func (a *QuizDatabaseAdapter) GetQuizByIDAndOwner(ctx context.Context, quizID, userID string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Quiz
	query := exec.Rebind(`SELECT ` + quizColumns + ` FROM quizzes WHERE id = ? AND user_id = ?`)
	if err := exec.GetContext(ctx, &m, query, quizID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", quizID, err)
	}

	quiz := toDomainQuiz(&m)
	if err := a.attachQuestions(ctx, []*domain.Quiz{quiz}); err != nil {
		return nil, err
	}
	return quiz, nil
}

// ListQuizzesByOwner returns the owner's quizzes oldest first, questions attached.
func (a *QuizDatabaseAdapter) ListQuizzesByOwner(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.Quiz
	query := exec.Rebind(`SELECT ` + quizColumns + ` FROM quizzes WHERE user_id = ? ORDER BY created_at, id`)
	if err := exec.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	if err := a.attachQuestions(ctx, quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// DeleteQuizByIDAndOwner deletes the quiz; questions and results go with it through ON DELETE CASCADE.
func (a *QuizDatabaseAdapter) DeleteQuizByIDAndOwner(ctx context.Context, quizID, userID string) (bool, error) {
	exec := GetExecutor(ctx, a.db)

	result, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM quizzes WHERE id = ? AND user_id = ?`), quizID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete quiz %s: %w", quizID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (a *QuizDatabaseAdapter) attachQuestions(ctx context.Context, quizzes []*domain.Quiz) error {
	if len(quizzes) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Quiz, len(quizzes))
	ids := make([]string, 0, len(quizzes))
	for _, q := range quizzes {
		byID[q.ID] = q
		ids = append(ids, q.ID)
	}

	exec := GetExecutor(ctx, a.db)
	for start := 0; start < len(ids); start += maxInListSize {
		end := start + maxInListSize
		if end > len(ids) {
			end = len(ids)
		}

		query, args, err := sqlx.In(`SELECT `+questionColumns+` FROM questions WHERE quiz_id IN (?) ORDER BY quiz_id, position`, ids[start:end])
		if err != nil {
			return fmt.Errorf("failed to build questions query: %w", err)
		}

		var rows []models.Question
		if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
			return fmt.Errorf("failed to load questions: %w", err)
		}
		for i := range rows {
			if quiz, ok := byID[rows[i].QuizID]; ok {
				quiz.Questions = append(quiz.Questions, toDomainQuestion(&rows[i]))
			}
		}
	}
	return nil
}
