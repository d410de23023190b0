// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spaarbot/backend/internal/application/usecase/chat"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
	"github.com/spaarbot/backend/internal/integration/entrypoint/dto"
	"github.com/spaarbot/backend/internal/integration/entrypoint/middleware"
)

// ChatController handles AI assistant chat endpoints.
type ChatController struct {
	sendMessageUseCase *chat.SendMessageUseCase
	getHistoryUseCase  *chat.GetHistoryUseCase
}

// NewChatController creates a new chat controller instance.
func NewChatController(
	sendMessageUseCase *chat.SendMessageUseCase,
	getHistoryUseCase *chat.GetHistoryUseCase,
) *ChatController {
	return &ChatController{
		sendMessageUseCase: sendMessageUseCase,
		getHistoryUseCase:  getHistoryUseCase,
	}
}

// SendMessage handles POST /chat requests.
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	var req dto.SendChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeEmptyChatMessage),
		})
		return
	}

	input := chat.SendMessageInput{
		UserID:       userID,
		Message:      req.Message,
		LanguageCode: req.LanguageCode,
	}

	output, err := c.sendMessageUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleChatError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToChatMessageResponse(output.Reply))
}

// History handles GET /chat/history requests.
func (c *ChatController) History(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondNotAuthenticated(ctx)
		return
	}

	input := chat.GetHistoryInput{
		UserID: userID,
	}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.getHistoryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleChatError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToChatHistoryResponse(output.Messages))
}

// handleChatError handles chat errors and returns appropriate HTTP responses.
func (c *ChatController) handleChatError(ctx *gin.Context, err error) {
	var chatErr *domainerror.ChatError
	if errors.As(err, &chatErr) {
		ctx.JSON(c.getStatusCodeForChatError(chatErr.Code), dto.ErrorResponse{
			Error: chatErr.Message,
			Code:  string(chatErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForChatError maps chat error codes to HTTP status codes.
func (c *ChatController) getStatusCodeForChatError(code domainerror.ChatErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmptyChatMessage,
		domainerror.ErrCodeChatMessageTooLong:
		return http.StatusBadRequest
	case domainerror.ErrCodeAssistantUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
