package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookchatai/bookchat/internal/chat"
	"github.com/bookchatai/bookchat/internal/users"
)

// ChatHandler serves the conversation pipeline and chat CRUD.
type ChatHandler struct {
	service     *chat.Service
	userService *users.Service
	logger      *slog.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(log *slog.Logger, service *chat.Service, userService *users.Service) *ChatHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ChatHandler{
		service:     service,
		userService: userService,
		logger:      log.With(slog.String("handler", "chat")),
	}
}

// Register mounts the chat routes on the Echo instance.
func (h *ChatHandler) Register(e *echo.Echo) {
	e.POST("/chat", h.Send)

	group := e.Group("/chats")
	group.POST("", h.CreateChat)
	group.GET("", h.ListChats)
	group.GET("/:id", h.GetChat)
	group.PUT("/:id", h.UpdateChat)
	group.DELETE("/:id", h.DeleteChat)
	group.GET("/:id/messages", h.ListMessages)
}

// Send godoc
// @Summary Send a message
// @Description Send a message and receive the assistant reply with book recommendations
// @Tags chat
// @Param payload body chat.SendRequest true "Message payload"
// @Success 200 {object} chat.Reply
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Send(c echo.Context) error {
	user, err := requireUser(c, h.userService)
	if err != nil {
		return err
	}
	var req chat.SendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	reply, err := h.service.Send(c.Request().Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, chat.ErrChatNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chat not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reply)
}

// CreateChat godoc
// @Summary Create a chat
// @Description Start an empty chat with an optional title
// @Tags chats
// @Param payload body chat.UpdateChatRequest true "Chat payload"
// @Success 201 {object} chat.ChatView
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats [post]
func (h *ChatHandler) CreateChat(c echo.Context) error {
	user, err := requireUser(c, h.userService)
	if err != nil {
		return err
	}
	var req chat.UpdateChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := h.service.Create(c.Request().Context(), user.ID, strings.TrimSpace(req.Title))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, view)
}

// ListChats godoc
// @Summary List chats
// @Description List the current user's chats by most recent activity
// @Tags chats
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} chat.ChatView
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats [get]
func (h *ChatHandler) ListChats(c echo.Context) error {
	user, err := requireUser(c, h.userService)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}
	views, err := h.service.List(c.Request().Context(), user.ID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

// GetChat godoc
// @Summary Get a chat
// @Description Get one chat owned by the current user
// @Tags chats
// @Param id path string true "Chat ID"
// @Success 200 {object} chat.ChatView
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats/{id} [get]
func (h *ChatHandler) GetChat(c echo.Context) error {
	user, err := requireUser(c, h.userService)
	if err != nil {
		return err
	}
	view, err := h.service.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, chat.ErrChatNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chat not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateChat godoc
// @Summary Rename a chat
// @Description Set the title of a chat owned by the current user
// @Tags chats
// @Param id path string true "Chat ID"
// @Param payload body chat.UpdateChatRequest true "Chat payload"
// @Success 200 {object} chat.ChatView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats/{id} [put]
func (h *ChatHandler) UpdateChat(c echo.Context) error {
	user, err := requireUser(c, h.userService)
	if err != nil {
		return err
	}
	var req chat.UpdateChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	view, err := h.service.Rename(c.Request().Context(), user.ID, c.Param("id"), title)
	if err != nil {
		if errors.Is(err, chat.ErrChatNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chat not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// DeleteChat godoc
// @Summary Delete a chat
// @Description Delete a chat and its messages
// @Tags chats
// @Param id path string true "Chat ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats/{id} [delete]
func (h *ChatHandler) DeleteChat(c echo.Context) error {
	user, err := requireUser(c, h.userService)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		if errors.Is(err, chat.ErrChatNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chat not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMessages godoc
// @Summary List chat messages
// @Description List a chat's messages in chronological order
// @Tags chats
// @Param id path string true "Chat ID"
// @Success 200 {array} chat.MessageView
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /chats/{id}/messages [get]
func (h *ChatHandler) ListMessages(c echo.Context) error {
	user, err := requireUser(c, h.userService)
	if err != nil {
		return err
	}
	views, err := h.service.Messages(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, chat.ErrChatNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chat not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

func queryInt(c echo.Context, name string, fallback int32) (int32, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || value < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative integer")
	}
	return int32(value), nil
}
