package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bookchatai/bookchat/internal/books"
)

// bookKeywords are the lowercase substrings that route a message to book
// search. Stems match their inflected forms ("книга", "книги", "прочитал").
var bookKeywords = []string{"книг", "прочита", "рекоменд", "автор", "жанр", "литератур"}

const (
	searchFetchLimit    = 10
	maxRecommendations  = 5
	maxListedInResponse = 3
)

const capabilityFallback = "Я получил ваше сообщение: '%s'. Как книжный помощник, " +
	"я могу помочь вам с рекомендациями книг, поиском авторов или обсуждением литературы. " +
	"Что вас интересует?"

// BookSearcher finds books for a free-text query.
type BookSearcher interface {
	Search(ctx context.Context, query string, maxResults int) []books.Book
}

// Completer produces a free-form assistant reply.
type Completer interface {
	Enabled() bool
	Complete(ctx context.Context, message string) string
}

// Resolver turns a user message into a reply. Book-related messages go
// through search, the rest through the completion client when one is
// configured.
type Resolver struct {
	books     BookSearcher
	completer Completer
	logger    *slog.Logger
}

// NewResolver creates a message resolver.
func NewResolver(log *slog.Logger, searcher BookSearcher, completer Completer) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		books:     searcher,
		completer: completer,
		logger:    log.With(slog.String("service", "resolver")),
	}
}

// Respond classifies message and produces the reply text plus up to five
// recommendations. It never fails; degraded paths produce fixed texts.
func (r *Resolver) Respond(ctx context.Context, message string) (string, []books.Book) {
	if isBookRelated(message) {
		return r.respondWithBooks(ctx, message)
	}
	if r.completer != nil && r.completer.Enabled() {
		return r.completer.Complete(ctx, message), nil
	}
	return fmt.Sprintf(capabilityFallback, message), nil
}

func isBookRelated(message string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range bookKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func (r *Resolver) respondWithBooks(ctx context.Context, message string) (string, []books.Book) {
	found := r.books.Search(ctx, message, searchFetchLimit)
	if len(found) == 0 {
		return fmt.Sprintf(
			"К сожалению, я не нашел книг по запросу '%s'. Попробуйте уточнить запрос.",
			message,
		), nil
	}
	if len(found) > maxRecommendations {
		found = found[:maxRecommendations]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Вот что я нашел по вашему запросу '%s':\n", message)
	for i, book := range found {
		if i == maxListedInResponse {
			break
		}
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, book.Title, book.Author)
	}
	sb.WriteString("\nМогу рассказать подробнее о любой из этих книг!")
	return sb.String(), found
}
