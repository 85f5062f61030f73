package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-gen/internal/domain"
	"quiz-gen/internal/dto"
	"quiz-gen/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockAuthService is a manual mock of service.AuthService for middleware tests
type ManualMockAuthService struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) Login(ctx context.Context, username, password string) (string, string, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func (m *ManualMockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	panic("not implemented in mock")
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

func decodeError(t *testing.T, body io.Reader) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{"validation list", domain.ValidationErrors{domain.NewMissingFieldError("topic")}, 400, "VALIDATION_ERROR", "topic: is required"},
		{"validation", domain.NewValidationError("bad input"), 400, "VALIDATION_ERROR", "bad input"},
		{"unauthorized", domain.NewUnauthorizedError("Invalid credentials"), 401, "UNAUTHORIZED", "Invalid credentials"},
		{"not found", domain.NewNotFoundError("Quiz not found"), 404, "NOT_FOUND", "Quiz not found"},
		{"generation", domain.NewGenerationError("Failed to generate quiz questions", errors.New("secret upstream detail")), 500, "GENERATION_ERROR", "Failed to generate quiz questions"},
		{"internal", domain.NewInternalError("Failed to save quiz", errors.New("ORA-00600")), 500, "INTERNAL_ERROR", "Failed to save quiz"},
		{"wrapped domain", fmt.Errorf("outer: %w", domain.NewNotFoundError("gone")), 404, "NOT_FOUND", "gone"},
		{"fiber", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), 405, "HTTP_ERROR", "nope"},
		{"unknown", errors.New("boom"), 500, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeError(t, resp.Body)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantError, body.Error)
			assert.NotContains(t, body.Error, "secret upstream detail")
		})
	}
}

func TestErrorHandler_ContextStaysInLogs(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return domain.NewNotFoundError("Quiz not found").WithContext("quiz_id", "internal-lookup-key")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "internal-lookup-key")
	assert.NotContains(t, string(raw), "details")
}

func TestProtected(t *testing.T) {
	mockAuthSvc := &ManualMockAuthService{}

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(mockSvc *ManualMockAuthService)
		expectedStatus int
		expectedUserID string
	}{
		{
			name:           "Missing header",
			authHeader:     "",
			setupMock:      func(mockSvc *ManualMockAuthService) {},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme",
			authHeader:     "Basic abc",
			setupMock:      func(mockSvc *ManualMockAuthService) {},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Invalid token",
			authHeader: "Bearer broken",
			setupMock: func(mockSvc *ManualMockAuthService) {
				mockSvc.ValidateJWTFunc = func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
					return nil, errors.New("invalid jwt token")
				}
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Refresh token rejected",
			authHeader: "Bearer refresh_token",
			setupMock: func(mockSvc *ManualMockAuthService) {
				mockSvc.ValidateJWTFunc = func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
					return &dto.AuthClaims{UserID: "user123", TokenType: "refresh"}, nil
				}
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Valid access token",
			authHeader: "Bearer valid_access_token",
			setupMock: func(mockSvc *ManualMockAuthService) {
				mockSvc.ValidateJWTFunc = func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
					assert.Equal(t, "valid_access_token", tokenString)
					return &dto.AuthClaims{UserID: "user123", TokenType: "access"}, nil
				}
			},
			expectedStatus: fiber.StatusOK,
			expectedUserID: "user123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuthSvc.ValidateJWTFunc = nil
			tt.setupMock(mockAuthSvc)

			app := newTestApp()
			app.Get("/protected", middleware.Protected(mockAuthSvc), func(c *fiber.Ctx) error {
				userID, ok := middleware.UserID(c)
				assert.True(t, ok)
				return c.SendString(userID)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.expectedUserID, string(body))
			} else {
				assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp.Body).Code)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	app := newTestApp()
	app.Use(middleware.RequestLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return domain.NewNotFoundError("missing") })

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	req := httptest.NewRequest("GET", "/missing", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(middleware.RequestIDHeader))
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Code)
}
