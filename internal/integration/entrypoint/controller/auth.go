// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spaarbot/backend/internal/application/usecase/auth"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
	"github.com/spaarbot/backend/internal/integration/entrypoint/dto"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	authenticateUseCase *auth.AuthenticateUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(authenticateUseCase *auth.AuthenticateUseCase) *AuthController {
	return &AuthController{
		authenticateUseCase: authenticateUseCase,
	}
}

// Authenticate handles POST /auth/telegram requests. The client posts its raw
// Mini App init data and receives a session token.
func (c *AuthController) Authenticate(ctx *gin.Context) {
	var req dto.AuthenticateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingInitData),
		})
		return
	}

	input := auth.AuthenticateInput{
		InitData: req.InitData,
	}

	output, err := c.authenticateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.IsNew {
		status = http.StatusCreated
	}

	ctx.JSON(status, dto.AuthResponse{
		Token: output.Token,
		User:  dto.ToUserResponse(output.User),
		IsNew: output.IsNew,
	})
}

// handleAuthError handles auth errors and returns appropriate HTTP responses.
func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(c.getStatusCodeForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func (c *AuthController) getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingInitData:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidInitData,
		domainerror.ErrCodeExpiredInitData,
		domainerror.ErrCodeMissingToken,
		domainerror.ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
