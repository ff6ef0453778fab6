// Package auth содержит HTTP обработчики регистрации, входа и профиля.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/auth/domain/services"
	"notekeeper/internal/auth/ports/api"
	"notekeeper/internal/gateway/adapters/http/middleware"
	"notekeeper/internal/gateway/adapters/http/response"
	"notekeeper/internal/gateway/app/dto"
	"notekeeper/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreateAccount = "auth handler: create account"
	LogHandlerLogin         = "auth handler: login"
	LogHandlerLogout        = "auth handler: logout"
	LogHandlerGetUser       = "auth handler: get user"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Сообщения ответов.
const (
	MsgFullNameRequired     = "Full name is required"
	MsgEmailRequired        = "Email is required"
	MsgPasswordRequired     = "Password is required"
	MsgPasswordTooLong      = "Password is too long"
	MsgUserAlreadyExist     = "User already exist"
	MsgRegistrationSuccess  = "Registration Succesfull"
	MsgUserNotFound         = "User not found"
	MsgInvalidCredentials   = "Invalid Credentials"
	MsgLoginSuccess         = "Login Successfull"
	MsgLogoutSuccess        = "Logged out successfully"
	msgEmptyProfileResponse = ""
)

var validationMessages = []struct {
	err error
	msg string
}{
	{services.ErrFullNameRequired, MsgFullNameRequired},
	{services.ErrEmailRequired, MsgEmailRequired},
	{services.ErrPasswordRequired, MsgPasswordRequired},
	{services.ErrPasswordTooLong, MsgPasswordTooLong},
}

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// CreateAccount обрабатывает POST /create-account.
func (h *Handler) CreateAccount(ctx fiber.Ctx) error {
	requestCtx := middleware.UserContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateAccount"))
	log.Debug(requestCtx, LogHandlerCreateAccount)

	var req dto.CreateAccountRequest
	if err := response.Bind(ctx, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	result, err := h.authUseCase.Register(requestCtx, req.FullName, req.Email, req.Password)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return response.Error(ctx, fiber.StatusBadRequest, msg)
		}
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			return response.Error(ctx, fiber.StatusOK, MsgUserAlreadyExist)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Internal(ctx)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.CreateAccountResponse{
		Error:       false,
		User:        dto.NewUser(result.User),
		AccessToken: result.AccessToken,
		Message:     MsgRegistrationSuccess,
	})
}

// Login обрабатывает POST /login.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.UserContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Login"))
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := response.Bind(ctx, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Error(ctx, fiber.StatusBadRequest, response.MsgInvalidRequestBody)
	}

	result, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return response.Error(ctx, fiber.StatusBadRequest, msg)
		}
		switch {
		case errors.Is(err, entities.ErrUserNotFound):
			return response.JSON(ctx, fiber.StatusBadRequest, response.MessageBody{Message: MsgUserNotFound})
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Error(ctx, fiber.StatusBadRequest, MsgInvalidCredentials)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Internal(ctx)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.LoginResponse{
		Error:       false,
		Message:     MsgLoginSuccess,
		Email:       result.User.Email,
		AccessToken: result.AccessToken,
	})
}

// GetUser обрабатывает GET /get-user.
func (h *Handler) GetUser(ctx fiber.Ctx) error {
	requestCtx := middleware.UserContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetUser"))
	log.Debug(requestCtx, LogHandlerGetUser)

	claims, ok := middleware.ClaimsFromContext(requestCtx)
	if !ok {
		return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
	}

	user, err := h.userUseCase.GetUserProfile(requestCtx, claims.Identity.ID)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Internal(ctx)
	}

	return response.JSON(ctx, fiber.StatusOK, dto.GetUserResponse{
		User:    dto.NewUser(user),
		Message: msgEmptyProfileResponse,
	})
}

// Logout обрабатывает POST /logout: токен запроса отзывается до истечения срока.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.UserContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Logout"))
	log.Debug(requestCtx, LogHandlerLogout)

	claims, ok := middleware.ClaimsFromContext(requestCtx)
	if !ok {
		return response.Error(ctx, fiber.StatusUnauthorized, response.MsgUnauthorized)
	}

	if err := h.authUseCase.Logout(requestCtx, claims); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return response.Internal(ctx)
	}

	return response.Message(ctx, MsgLogoutSuccess)
}

func validationMessage(err error) (string, bool) {
	for _, v := range validationMessages {
		if errors.Is(err, v.err) {
			return v.msg, true
		}
	}
	return "", false
}
