package service

import (
	"context"
	"errors"
	"time"

	"quiz-gen/internal/config"
	"quiz-gen/internal/domain"
	"quiz-gen/internal/dto"
	"quiz-gen/internal/logger"
	"quiz-gen/internal/util"
	"quiz-gen/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the quiz lifecycle: generation, retrieval, deletion, submission and scoring.
// Every operation is scoped to the authenticated user.
type QuizService interface {
	CreateQuiz(ctx context.Context, userID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, userID, quizID string) (*dto.QuizResponse, error)
	ListQuizzes(ctx context.Context, userID string) ([]*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, userID, quizID string) error
	SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error)
	ListResults(ctx context.Context, userID string) ([]*dto.QuizResultResponse, error)
}

type quizService struct {
	quizRepo   domain.QuizRepository
	resultRepo domain.QuizResultRepository
	userRepo   domain.UserRepository
	txManager  domain.TransactionManager
	generator  domain.QuestionGenerator
	validator  *validation.Validator
	quizCache  *quizCache
	genTimeout time.Duration
}

// NewQuizService creates a new instance of quizService. cache may be nil.
func NewQuizService(
	quizRepo domain.QuizRepository,
	resultRepo domain.QuizResultRepository,
	userRepo domain.UserRepository,
	txManager domain.TransactionManager,
	generator domain.QuestionGenerator,
	cache domain.Cache,
	validator *validation.Validator,
	cfg *config.Config,
) QuizService {
	if validator == nil {
		validator = validation.NewValidator()
	}
	var genTimeout, quizTTL time.Duration
	if cfg != nil {
		genTimeout = cfg.Generator.Timeout
		quizTTL = cfg.Cache.QuizTTL
	}
	return &quizService{
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		generator:  generator,
		validator:  validator,
		quizCache:  newQuizCache(cache, quizTTL),
		genTimeout: genTimeout,
	}
}

func (s *quizService) loadOwner(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("User no longer exists")
	}
	return user, nil
}

// CreateQuiz implements QuizService
func (s *quizService) CreateQuiz(ctx context.Context, userID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	numQuestions := domain.DefaultQuestions
	if req.NumQuestions != nil {
		numQuestions = *req.NumQuestions
	}
	if errs := s.validator.ValidateCreateQuizRequest(req.Topic, numQuestions, req.Difficulty); len(errs) > 0 {
		return nil, errs
	}
	difficulty, _ := domain.ParseDifficulty(req.Difficulty)

	owner, err := s.loadOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	genReq := domain.GenerationRequest{
		Topic:        req.Topic,
		NumQuestions: numQuestions,
		Difficulty:   difficulty,
	}

	genCtx := ctx
	if s.genTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.genTimeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.generator.GenerateQuestions(genCtx, genReq)
	if err != nil {
		logger.Get().Error("Question generation failed",
			zap.String("userID", userID),
			zap.String("topic", req.Topic),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, domain.NewGenerationError("Failed to generate quiz questions", err)
	}

	records, err := ParseGeneratedQuestions(raw, numQuestions)
	if err != nil {
		logger.Get().Error("Generator output rejected", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewGenerationError("Generator returned invalid questions", err)
	}

	quiz := &domain.Quiz{
		ID:           util.NewULID(),
		UserID:       userID,
		Topic:        req.Topic,
		NumQuestions: numQuestions,
		Difficulty:   difficulty,
		CreatedAt:    time.Now().UTC(),
		Questions:    make([]*domain.Question, 0, len(records)),
		Owner:        owner,
	}
	for _, r := range records {
		quiz.Questions = append(quiz.Questions, &domain.Question{
			ID:            util.NewULID(),
			QuizID:        quiz.ID,
			Text:          r.Question,
			OptionA:       r.A,
			OptionB:       r.B,
			OptionC:       r.C,
			OptionD:       r.D,
			CorrectOption: r.Correct,
		})
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.quizRepo.CreateQuiz(txCtx, quiz); err != nil {
			return err
		}
		return s.quizRepo.CreateQuestions(txCtx, quiz.Questions)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("userID", userID),
		zap.Int("questions", len(quiz.Questions)),
		zap.Duration("generation", time.Since(start)))
	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) getOwnedQuiz(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
	if !util.IsULID(quizID) {
		return nil, domain.NewNotFoundError("Quiz not found").WithContext("quiz_id", quizID)
	}
	quiz, err := s.quizRepo.GetQuizByIDAndOwner(ctx, quizID, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("Quiz not found").WithContext("quiz_id", quizID)
	}
	return quiz, nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, userID, quizID string) (*dto.QuizResponse, error) {
	return s.quizCache.getOrLoad(ctx, userID, quizID, func(ctx context.Context) (*dto.QuizResponse, error) {
		quiz, err := s.getOwnedQuiz(ctx, userID, quizID)
		if err != nil {
			return nil, err
		}
		owner, err := s.loadOwner(ctx, userID)
		if err != nil {
			return nil, err
		}
		quiz.Owner = owner
		return dto.NewQuizResponse(quiz), nil
	})
}

// ListQuizzes implements QuizService
func (s *quizService) ListQuizzes(ctx context.Context, userID string) ([]*dto.QuizResponse, error) {
	owner, err := s.loadOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.quizRepo.ListQuizzesByOwner(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}

	resp := make([]*dto.QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		q.Owner = owner
		resp = append(resp, dto.NewQuizResponse(q))
	}
	return resp, nil
}

// DeleteQuiz implements QuizService
func (s *quizService) DeleteQuiz(ctx context.Context, userID, quizID string) error {
	if !util.IsULID(quizID) {
		return domain.NewNotFoundError("Quiz not found").WithContext("quiz_id", quizID)
	}
	deleted, err := s.quizRepo.DeleteQuizByIDAndOwner(ctx, quizID, userID)
	if err != nil {
		return domain.NewInternalError("Failed to delete quiz", err)
	}
	if !deleted {
		return domain.NewNotFoundError("Quiz not found").WithContext("quiz_id", quizID)
	}
	s.quizCache.evict(ctx, userID, quizID)

	logger.Get().Info("Quiz deleted", zap.String("quizID", quizID), zap.String("userID", userID))
	return nil
}

// SubmitQuiz implements QuizService. The ownership check and the insert share one
// transaction; the store's (quiz_id, user_id) foreign key rejects a result for a quiz
// deleted in between, which is reported as not found.
func (s *quizService) SubmitQuiz(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error) {
	var (
		quiz   *domain.Quiz
		owner  *domain.User
		result *domain.QuizResult
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		quiz, err = s.getOwnedQuiz(txCtx, userID, quizID)
		if err != nil {
			return err
		}

		index := quiz.QuestionIndex()
		answers, errs := s.validator.ValidateSubmission(index, req.Answers)
		if len(errs) > 0 {
			return errs
		}

		score := 0
		for questionID, letter := range answers {
			if index[questionID].CorrectOption == letter {
				score++
			}
		}

		if owner, err = s.loadOwner(txCtx, userID); err != nil {
			return err
		}

		result = &domain.QuizResult{
			ID:          util.NewULID(),
			UserID:      userID,
			QuizID:      quiz.ID,
			Score:       score,
			CompletedAt: time.Now().UTC(),
			Answers:     answers,
		}
		if err := s.resultRepo.CreateResult(txCtx, result); err != nil {
			if errors.Is(err, domain.ErrResultQuizMissing) {
				return domain.NewNotFoundError("Quiz not found").WithContext("quiz_id", quizID)
			}
			return domain.NewInternalError("Failed to save quiz result", err)
		}
		return nil
	})
	if err != nil {
		var verrs domain.ValidationErrors
		var derr *domain.DomainError
		if errors.As(err, &verrs) || errors.As(err, &derr) {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to save quiz result", err)
	}

	quiz.Owner = owner
	result.Quiz = quiz
	result.Owner = owner

	logger.Get().Info("Quiz submitted",
		zap.String("quizID", quiz.ID),
		zap.String("userID", userID),
		zap.Int("score", result.Score),
		zap.Int("questions", len(quiz.Questions)))
	return dto.NewQuizResultResponse(result), nil
}

// ListResults implements QuizService
func (s *quizService) ListResults(ctx context.Context, userID string) ([]*dto.QuizResultResponse, error) {
	owner, err := s.loadOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.ListResultsByOwner(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quiz results", err)
	}
	if len(results) == 0 {
		return []*dto.QuizResultResponse{}, nil
	}

	quizzes, err := s.quizRepo.ListQuizzesByOwner(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quizzes for results", err)
	}
	byID := make(map[string]*domain.Quiz, len(quizzes))
	for _, q := range quizzes {
		q.Owner = owner
		byID[q.ID] = q
	}

	resp := make([]*dto.QuizResultResponse, 0, len(results))
	for _, r := range results {
		r.Quiz = byID[r.QuizID]
		r.Owner = owner
		resp = append(resp, dto.NewQuizResultResponse(r))
	}
	return resp, nil
}
