package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "notekeeper/internal/errors"
	"notekeeper/internal/model"
)

func TestUserRoutes_Register(t *testing.T) {
	t.Run("returns the created user without secret material", func(t *testing.T) {
		e, _, mockAuth, _ := setupServer(t)
		mockAuth.On("Register", mock.Anything, "A", "a@x.com", "password123", 30).Return(&model.User{
			ID:           primitive.NewObjectID(),
			Name:         "A",
			Email:        "a@x.com",
			PasswordHash: "$2a$10$secret-material",
			Age:          30,
		}, nil)

		body := `{"name":"A","email":"a@x.com","password":"password123","age":30}`
		req := httptest.NewRequest(http.MethodPost, "/user/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"email":"a@x.com"`)
		// the hash is excluded structurally, not filtered at the call site
		assert.NotContains(t, rec.Body.String(), "secret-material")
		assert.NotContains(t, rec.Body.String(), "password")
		mockAuth.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		e, _, mockAuth, _ := setupServer(t)
		mockAuth.On("Register", mock.Anything, "A", "a@x.com", "password123", 0).Return(nil, apperrors.ErrEmailTaken)

		body := `{"name":"A","email":"a@x.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/user/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")
		mockAuth.AssertExpectations(t)
	})

	t.Run("malformed email is rejected before the service", func(t *testing.T) {
		e, _, mockAuth, _ := setupServer(t)

		body := `{"name":"A","email":"not-an-email","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/user/register", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockAuth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserRoutes_Login(t *testing.T) {
	t.Run("successful login returns a token", func(t *testing.T) {
		e, _, mockAuth, _ := setupServer(t)
		mockAuth.On("Login", mock.Anything, "a@x.com", "password123").Return("a.b.c", &model.User{
			ID:    primitive.NewObjectID(),
			Email: "a@x.com",
		}, nil)

		body := `{"email":"a@x.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "login successful")
		assert.Contains(t, rec.Body.String(), `"token":"a.b.c"`)
		mockAuth.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		e, _, mockAuth, _ := setupServer(t)
		mockAuth.On("Login", mock.Anything, "a@x.com", "wrong").Return("", nil, apperrors.ErrInvalidCredentials)

		body := `{"email":"a@x.com","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
		assert.NotContains(t, rec.Body.String(), "token")
		mockAuth.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		e, _, mockAuth, _ := setupServer(t)
		mockAuth.On("Login", mock.Anything, "nobody@x.com", "password123").Return("", nil, apperrors.ErrUserNotFound)

		body := `{"email":"nobody@x.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "USER_NOT_FOUND")
		mockAuth.AssertExpectations(t)
	})
}
