package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/bookchatai/bookchat/internal/db"
	"github.com/bookchatai/bookchat/internal/db/sqlc"
)

func newPgUUID() pgtype.UUID {
	var id pgtype.UUID
	u := uuid.New()
	copy(id.Bytes[:], u[:])
	id.Valid = true
	return id
}

// fakeQuerier keeps chats and messages in memory behind the Querier interface.
type fakeQuerier struct {
	chats      map[pgtype.UUID]sqlc.Chat
	messages   []sqlc.Message
	titleErr   error
	titleCalls int
	touchCalls int
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{chats: make(map[pgtype.UUID]sqlc.Chat)}
}

func (f *fakeQuerier) CreateChat(_ context.Context, arg sqlc.CreateChatParams) (sqlc.Chat, error) {
	chat := sqlc.Chat{ID: newPgUUID(), UserID: arg.UserID, Title: arg.Title}
	f.chats[chat.ID] = chat
	return chat, nil
}

func (f *fakeQuerier) GetChat(_ context.Context, arg sqlc.GetChatParams) (sqlc.Chat, error) {
	chat, ok := f.chats[arg.ID]
	if !ok || chat.UserID != arg.UserID {
		return sqlc.Chat{}, pgx.ErrNoRows
	}
	return chat, nil
}

func (f *fakeQuerier) ListChatsByUser(_ context.Context, arg sqlc.ListChatsByUserParams) ([]sqlc.Chat, error) {
	var items []sqlc.Chat
	for _, chat := range f.chats {
		if chat.UserID == arg.UserID {
			items = append(items, chat)
		}
	}
	return items, nil
}

func (f *fakeQuerier) UpdateChatTitle(_ context.Context, arg sqlc.UpdateChatTitleParams) (sqlc.Chat, error) {
	f.titleCalls++
	if f.titleErr != nil {
		return sqlc.Chat{}, f.titleErr
	}
	chat, ok := f.chats[arg.ID]
	if !ok || chat.UserID != arg.UserID {
		return sqlc.Chat{}, pgx.ErrNoRows
	}
	chat.Title = arg.Title
	f.chats[arg.ID] = chat
	return chat, nil
}

func (f *fakeQuerier) TouchChat(_ context.Context, _ pgtype.UUID) error {
	f.touchCalls++
	return nil
}

func (f *fakeQuerier) DeleteChat(_ context.Context, arg sqlc.DeleteChatParams) (int64, error) {
	chat, ok := f.chats[arg.ID]
	if !ok || chat.UserID != arg.UserID {
		return 0, nil
	}
	delete(f.chats, arg.ID)
	return 1, nil
}

func (f *fakeQuerier) CreateMessage(_ context.Context, arg sqlc.CreateMessageParams) (sqlc.Message, error) {
	message := sqlc.Message{
		ID:       newPgUUID(),
		ChatID:   arg.ChatID,
		Role:     arg.Role,
		Content:  arg.Content,
		Metadata: arg.Metadata,
	}
	f.messages = append(f.messages, message)
	return message, nil
}

func (f *fakeQuerier) ListMessagesByChat(_ context.Context, chatID pgtype.UUID) ([]sqlc.Message, error) {
	var items []sqlc.Message
	for _, message := range f.messages {
		if message.ChatID == chatID {
			items = append(items, message)
		}
	}
	return items, nil
}

func (f *fakeQuerier) CountMessagesByChat(_ context.Context, chatID pgtype.UUID) (int64, error) {
	var count int64
	for _, message := range f.messages {
		if message.ChatID == chatID {
			count++
		}
	}
	return count, nil
}

func newTestService(queries Querier, results int) *Service {
	resolver := NewResolver(nil, &fakeSearcher{results: sampleResults(results)}, nil)
	return NewService(nil, queries, resolver)
}

func testUserID(t *testing.T) string {
	t.Helper()
	return uuid.NewString()
}

func TestSendNewChatPipeline(t *testing.T) {
	t.Parallel()

	queries := newFakeQuerier()
	service := newTestService(queries, 2)
	userID := testUserID(t)

	reply, err := service.Send(context.Background(), userID, SendRequest{Message: "Посоветуй книгу"})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if reply.ChatID == "" {
		t.Fatal("reply must carry the created chat id")
	}
	if len(reply.Recommendations) != 2 {
		t.Fatalf("len(recommendations) = %d, want 2", len(reply.Recommendations))
	}

	chatID, err := db.ParseUUID(reply.ChatID)
	if err != nil {
		t.Fatalf("parse chat id: %v", err)
	}
	if got := queries.chats[chatID].Title; got != "Посоветуй книгу" {
		t.Errorf("chat title = %q, want the opening message", got)
	}
	if queries.titleCalls != 1 || queries.touchCalls != 0 {
		t.Errorf("titleCalls = %d, touchCalls = %d", queries.titleCalls, queries.touchCalls)
	}

	if len(queries.messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(queries.messages))
	}
	if queries.messages[0].Role != RoleUser || queries.messages[0].Content != "Посоветуй книгу" {
		t.Errorf("user message = %+v", queries.messages[0])
	}
	if queries.messages[1].Role != RoleAssistant || queries.messages[1].Content != reply.Response {
		t.Errorf("assistant message = %+v", queries.messages[1])
	}

	var meta messageMetadata
	if err := json.Unmarshal(queries.messages[1].Metadata, &meta); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}
	if len(meta.Recommendations) != 2 || meta.Recommendations[0].ID != "id-1" {
		t.Errorf("metadata recommendations = %+v", meta.Recommendations)
	}
}

func TestSendExistingChatKeepsTitle(t *testing.T) {
	t.Parallel()

	queries := newFakeQuerier()
	service := newTestService(queries, 1)
	userID := testUserID(t)
	ownerID, _ := db.ParseUUID(userID)

	chat := sqlc.Chat{ID: newPgUUID(), UserID: ownerID, Title: "Мои книги"}
	queries.chats[chat.ID] = chat
	queries.messages = append(queries.messages, sqlc.Message{
		ID: newPgUUID(), ChatID: chat.ID, Role: RoleUser, Content: "первое сообщение",
	})

	_, err := service.Send(context.Background(), userID, SendRequest{
		Message: "ещё одна рекомендация",
		ChatID:  db.UUIDString(chat.ID),
	})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if queries.titleCalls != 0 {
		t.Error("chat with prior messages must not be retitled")
	}
	if queries.touchCalls != 1 {
		t.Errorf("touchCalls = %d, want 1", queries.touchCalls)
	}
	if got := queries.chats[chat.ID].Title; got != "Мои книги" {
		t.Errorf("title = %q, want unchanged", got)
	}
}

func TestSendFirstMessageIntoEmptyChatTitles(t *testing.T) {
	t.Parallel()

	queries := newFakeQuerier()
	service := newTestService(queries, 1)
	userID := testUserID(t)
	ownerID, _ := db.ParseUUID(userID)

	chat := sqlc.Chat{ID: newPgUUID(), UserID: ownerID, Title: DefaultChatTitle}
	queries.chats[chat.ID] = chat

	_, err := service.Send(context.Background(), userID, SendRequest{
		Message: "Посоветуй книгу про жанры",
		ChatID:  db.UUIDString(chat.ID),
	})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if got := queries.chats[chat.ID].Title; got != "Посоветуй книгу про жанры" {
		t.Errorf("title = %q, want the opening message", got)
	}
	if queries.titleCalls != 1 {
		t.Errorf("titleCalls = %d, want 1", queries.titleCalls)
	}
}

func TestSendUnknownChat(t *testing.T) {
	t.Parallel()

	queries := newFakeQuerier()
	service := newTestService(queries, 1)
	userID := testUserID(t)

	_, err := service.Send(context.Background(), userID, SendRequest{
		Message: "Посоветуй книгу",
		ChatID:  uuid.NewString(),
	})
	if !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("err = %v, want ErrChatNotFound", err)
	}

	_, err = service.Send(context.Background(), userID, SendRequest{
		Message: "Посоветуй книгу",
		ChatID:  "not-a-uuid",
	})
	if !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("err = %v, want ErrChatNotFound for malformed id", err)
	}
}

func TestSendTitleFailureStillReplies(t *testing.T) {
	t.Parallel()

	queries := newFakeQuerier()
	queries.titleErr = errors.New("deadlock")
	service := newTestService(queries, 1)

	reply, err := service.Send(context.Background(), testUserID(t), SendRequest{Message: "Посоветуй книгу"})
	if err != nil {
		t.Fatalf("Send() must not surface a title update failure: %v", err)
	}
	if reply.Response == "" || len(queries.messages) != 2 {
		t.Errorf("reply = %+v, messages = %d", reply, len(queries.messages))
	}
}

func TestMessagesMetadataRoundTrip(t *testing.T) {
	t.Parallel()

	queries := newFakeQuerier()
	service := newTestService(queries, 3)
	userID := testUserID(t)

	reply, err := service.Send(context.Background(), userID, SendRequest{Message: "Посоветуй книгу"})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	views, err := service.Messages(context.Background(), userID, reply.ChatID)
	if err != nil {
		t.Fatalf("Messages() error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("len(views) = %d, want 2", len(views))
	}
	if views[0].Role != RoleUser || views[0].Recommendations != nil {
		t.Errorf("user view = %+v", views[0])
	}
	if views[1].Role != RoleAssistant || len(views[1].Recommendations) != 3 {
		t.Errorf("assistant view = %+v", views[1])
	}
}

func TestTitleFromMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"short message kept whole", "Посоветуй книгу", "Посоветуй книгу"},
		{"exactly fifty runes kept whole", strings.Repeat("а", 50), strings.Repeat("а", 50)},
		{"long message truncated", strings.Repeat("б", 60), strings.Repeat("б", 50) + "..."},
		{"empty message", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TitleFromMessage(tt.message); got != tt.want {
				t.Errorf("TitleFromMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitleFromMessageCountsRunesNotBytes(t *testing.T) {
	t.Parallel()

	// 50 Cyrillic runes are 100 bytes; the title must not be cut mid-rune.
	message := strings.Repeat("ж", 51)
	got := TitleFromMessage(message)
	if got != strings.Repeat("ж", 50)+"..." {
		t.Fatalf("TitleFromMessage() = %q", got)
	}
}
