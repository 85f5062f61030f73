package handler

import (
	"quiz-gen/internal/middleware"
	"quiz-gen/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API on router (normally the /api group).
func RegisterRoutes(router fiber.Router, authService service.AuthService, authHandler *AuthHandler, quizHandler *QuizHandler, healthHandler *HealthHandler) {
	if healthHandler != nil {
		router.Get("/healthz", healthHandler.Health)
	}

	// Auth routes
	router.Post("/register", authHandler.Register)
	router.Post("/login", authHandler.Login)
	router.Post("/token/refresh", authHandler.RefreshToken)

	// Quiz routes (all protected)
	protected := middleware.Protected(authService)
	router.Get("/quizzes", protected, quizHandler.ListQuizzes)
	router.Post("/quizzes/create", protected, quizHandler.CreateQuiz)
	router.Get("/quizzes/:id", protected, quizHandler.GetQuiz)
	router.Delete("/quizzes/:id", protected, quizHandler.DeleteQuiz)
	router.Post("/quizzes/:id/submit", protected, quizHandler.SubmitQuiz)
	router.Get("/results", protected, quizHandler.ListResults)
}
