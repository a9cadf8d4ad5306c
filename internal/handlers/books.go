package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookchatai/bookchat/internal/books"
)

// BooksHandler serves direct book search and detail lookups.
type BooksHandler struct {
	client *books.Client
	logger *slog.Logger
}

// NewBooksHandler creates a books handler.
func NewBooksHandler(log *slog.Logger, client *books.Client) *BooksHandler {
	if log == nil {
		log = slog.Default()
	}
	return &BooksHandler{
		client: client,
		logger: log.With(slog.String("handler", "books")),
	}
}

// Register mounts the book routes on the Echo instance.
func (h *BooksHandler) Register(e *echo.Echo) {
	group := e.Group("/books")
	group.GET("/search", h.Search)
	group.GET("/:id", h.Details)
}

// Search godoc
// @Summary Search books
// @Description Search the book catalog by free-text query
// @Tags books
// @Param q query string true "Search query"
// @Param max_results query int false "Result cap"
// @Success 200 {object} books.SearchResponse
// @Failure 400 {object} ErrorResponse
// @Router /books/search [get]
func (h *BooksHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	maxResults, err := queryInt(c, "max_results", 10)
	if err != nil {
		return err
	}
	items := h.client.Search(c.Request().Context(), query, int(maxResults))
	return c.JSON(http.StatusOK, books.SearchResponse{Items: items})
}

// Details godoc
// @Summary Get book details
// @Description Get the full record for one book
// @Tags books
// @Param id path string true "Book ID"
// @Success 200 {object} books.BookDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /books/{id} [get]
func (h *BooksHandler) Details(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "book id is required")
	}
	detail, ok := h.client.Details(c.Request().Context(), id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "book not found")
	}
	return c.JSON(http.StatusOK, detail)
}
