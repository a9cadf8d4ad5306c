package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/bookchatai/bookchat/internal/books"
	"github.com/bookchatai/bookchat/internal/db"
	"github.com/bookchatai/bookchat/internal/db/sqlc"
)

// Querier is the subset of the generated query layer the chat service uses.
// *sqlc.Queries satisfies it.
type Querier interface {
	CreateChat(ctx context.Context, arg sqlc.CreateChatParams) (sqlc.Chat, error)
	GetChat(ctx context.Context, arg sqlc.GetChatParams) (sqlc.Chat, error)
	ListChatsByUser(ctx context.Context, arg sqlc.ListChatsByUserParams) ([]sqlc.Chat, error)
	UpdateChatTitle(ctx context.Context, arg sqlc.UpdateChatTitleParams) (sqlc.Chat, error)
	TouchChat(ctx context.Context, id pgtype.UUID) error
	DeleteChat(ctx context.Context, arg sqlc.DeleteChatParams) (int64, error)
	CreateMessage(ctx context.Context, arg sqlc.CreateMessageParams) (sqlc.Message, error)
	ListMessagesByChat(ctx context.Context, chatID pgtype.UUID) ([]sqlc.Message, error)
	CountMessagesByChat(ctx context.Context, chatID pgtype.UUID) (int64, error)
}

// ErrChatNotFound reports a chat id that does not exist or belongs to
// another user.
var ErrChatNotFound = errors.New("chat not found")

const (
	// DefaultChatTitle is used until the first message names the chat.
	DefaultChatTitle = "Новый чат"

	titleMaxRunes = 50
)

// messageMetadata is the JSONB payload stored next to assistant messages.
type messageMetadata struct {
	Recommendations []books.Book `json:"recommendations,omitempty"`
}

// Service owns chat and message persistence plus the send pipeline.
type Service struct {
	queries  Querier
	resolver *Resolver
	logger   *slog.Logger
}

// NewService creates a chat service.
func NewService(log *slog.Logger, queries Querier, resolver *Resolver) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries:  queries,
		resolver: resolver,
		logger:   log.With(slog.String("service", "chat")),
	}
}

// Send runs one conversational turn: the user message is persisted, resolved
// into a reply, and the reply is persisted with its recommendations. When
// req.ChatID is empty a new chat is created. A first exchange, whether into a
// fresh chat or an existing one with no messages yet, titles the chat after
// the message.
func (s *Service) Send(ctx context.Context, userID string, req SendRequest) (Reply, error) {
	ownerID, err := db.ParseUUID(userID)
	if err != nil {
		return Reply{}, fmt.Errorf("parse user id: %w", err)
	}

	firstExchange := req.ChatID == ""
	var record sqlc.Chat
	if firstExchange {
		record, err = s.queries.CreateChat(ctx, sqlc.CreateChatParams{
			UserID: ownerID,
			Title:  DefaultChatTitle,
		})
		if err != nil {
			return Reply{}, fmt.Errorf("create chat: %w", err)
		}
	} else {
		chatID, err := db.ParseUUID(req.ChatID)
		if err != nil {
			return Reply{}, ErrChatNotFound
		}
		record, err = s.queries.GetChat(ctx, sqlc.GetChatParams{ID: chatID, UserID: ownerID})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Reply{}, ErrChatNotFound
			}
			return Reply{}, fmt.Errorf("get chat: %w", err)
		}
		count, err := s.queries.CountMessagesByChat(ctx, record.ID)
		if err != nil {
			// Titling is best-effort; treat the chat as already started.
			s.logger.Warn("message count failed",
				slog.String("chat_id", db.UUIDString(record.ID)),
				slog.Any("error", err),
			)
		} else {
			firstExchange = count == 0
		}
	}

	if _, err := s.queries.CreateMessage(ctx, sqlc.CreateMessageParams{
		ChatID:  record.ID,
		Role:    RoleUser,
		Content: req.Message,
	}); err != nil {
		return Reply{}, fmt.Errorf("store user message: %w", err)
	}

	response, recommendations := s.resolver.Respond(ctx, req.Message)

	metadata, err := json.Marshal(messageMetadata{Recommendations: recommendations})
	if err != nil {
		return Reply{}, fmt.Errorf("marshal metadata: %w", err)
	}
	if _, err := s.queries.CreateMessage(ctx, sqlc.CreateMessageParams{
		ChatID:   record.ID,
		Role:     RoleAssistant,
		Content:  response,
		Metadata: metadata,
	}); err != nil {
		return Reply{}, fmt.Errorf("store assistant message: %w", err)
	}

	if firstExchange {
		if _, err := s.queries.UpdateChatTitle(ctx, sqlc.UpdateChatTitleParams{
			ID:     record.ID,
			UserID: ownerID,
			Title:  TitleFromMessage(req.Message),
		}); err != nil {
			// Reply is already stored; keep it and log the stale title.
			s.logger.Warn("chat title update failed",
				slog.String("chat_id", db.UUIDString(record.ID)),
				slog.Any("error", err),
			)
		}
	} else if err := s.queries.TouchChat(ctx, record.ID); err != nil {
		s.logger.Warn("chat touch failed",
			slog.String("chat_id", db.UUIDString(record.ID)),
			slog.Any("error", err),
		)
	}

	if recommendations == nil {
		recommendations = []books.Book{}
	}
	return Reply{
		Response:        response,
		Recommendations: recommendations,
		ChatID:          db.UUIDString(record.ID),
	}, nil
}

// TitleFromMessage derives a chat title from its opening message. Long
// messages are cut at 50 runes with an ellipsis.
func TitleFromMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= titleMaxRunes {
		return message
	}
	return string(runes[:titleMaxRunes]) + "..."
}

// Create starts an empty chat with the given title.
func (s *Service) Create(ctx context.Context, userID, title string) (ChatView, error) {
	ownerID, err := db.ParseUUID(userID)
	if err != nil {
		return ChatView{}, fmt.Errorf("parse user id: %w", err)
	}
	if title == "" {
		title = DefaultChatTitle
	}
	record, err := s.queries.CreateChat(ctx, sqlc.CreateChatParams{UserID: ownerID, Title: title})
	if err != nil {
		return ChatView{}, fmt.Errorf("create chat: %w", err)
	}
	return toChatView(record), nil
}

// List returns the user's chats ordered by most recent activity.
func (s *Service) List(ctx context.Context, userID string, limit, offset int32) ([]ChatView, error) {
	ownerID, err := db.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}
	records, err := s.queries.ListChatsByUser(ctx, sqlc.ListChatsByUserParams{
		UserID: ownerID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	views := make([]ChatView, 0, len(records))
	for _, record := range records {
		views = append(views, toChatView(record))
	}
	return views, nil
}

// Get returns one chat owned by the user.
func (s *Service) Get(ctx context.Context, userID, chatID string) (ChatView, error) {
	record, err := s.getOwned(ctx, userID, chatID)
	if err != nil {
		return ChatView{}, err
	}
	return toChatView(record), nil
}

// Rename sets a chat's title.
func (s *Service) Rename(ctx context.Context, userID, chatID, title string) (ChatView, error) {
	ownerID, err := db.ParseUUID(userID)
	if err != nil {
		return ChatView{}, fmt.Errorf("parse user id: %w", err)
	}
	id, err := db.ParseUUID(chatID)
	if err != nil {
		return ChatView{}, ErrChatNotFound
	}
	record, err := s.queries.UpdateChatTitle(ctx, sqlc.UpdateChatTitleParams{
		ID:     id,
		UserID: ownerID,
		Title:  title,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ChatView{}, ErrChatNotFound
		}
		return ChatView{}, fmt.Errorf("rename chat: %w", err)
	}
	return toChatView(record), nil
}

// Delete removes a chat and its messages.
func (s *Service) Delete(ctx context.Context, userID, chatID string) error {
	ownerID, err := db.ParseUUID(userID)
	if err != nil {
		return fmt.Errorf("parse user id: %w", err)
	}
	id, err := db.ParseUUID(chatID)
	if err != nil {
		return ErrChatNotFound
	}
	affected, err := s.queries.DeleteChat(ctx, sqlc.DeleteChatParams{ID: id, UserID: ownerID})
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	if affected == 0 {
		return ErrChatNotFound
	}
	return nil
}

// Messages returns a chat's history in chronological order.
func (s *Service) Messages(ctx context.Context, userID, chatID string) ([]MessageView, error) {
	record, err := s.getOwned(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	records, err := s.queries.ListMessagesByChat(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	views := make([]MessageView, 0, len(records))
	for _, message := range records {
		views = append(views, s.toMessageView(message))
	}
	return views, nil
}

func (s *Service) getOwned(ctx context.Context, userID, chatID string) (sqlc.Chat, error) {
	ownerID, err := db.ParseUUID(userID)
	if err != nil {
		return sqlc.Chat{}, fmt.Errorf("parse user id: %w", err)
	}
	id, err := db.ParseUUID(chatID)
	if err != nil {
		return sqlc.Chat{}, ErrChatNotFound
	}
	record, err := s.queries.GetChat(ctx, sqlc.GetChatParams{ID: id, UserID: ownerID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sqlc.Chat{}, ErrChatNotFound
		}
		return sqlc.Chat{}, fmt.Errorf("get chat: %w", err)
	}
	return record, nil
}

func toChatView(record sqlc.Chat) ChatView {
	return ChatView{
		ID:        db.UUIDString(record.ID),
		Title:     record.Title,
		CreatedAt: db.TimeFromPg(record.CreatedAt),
		UpdatedAt: db.TimeFromPg(record.UpdatedAt),
	}
}

func (s *Service) toMessageView(record sqlc.Message) MessageView {
	view := MessageView{
		ID:        db.UUIDString(record.ID),
		ChatID:    db.UUIDString(record.ChatID),
		Role:      record.Role,
		Content:   record.Content,
		CreatedAt: db.TimeFromPg(record.CreatedAt),
	}
	if len(record.Metadata) > 0 {
		var meta messageMetadata
		if err := json.Unmarshal(record.Metadata, &meta); err != nil {
			s.logger.Warn("message metadata decode failed",
				slog.String("message_id", view.ID),
				slog.Any("error", err),
			)
		} else {
			view.Recommendations = meta.Recommendations
		}
	}
	return view
}
