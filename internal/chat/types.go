package chat

import (
	"time"

	"github.com/bookchatai/bookchat/internal/books"
)

// Message roles as stored in the database.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SendRequest is the body of POST /chat. An empty ChatID starts a new chat.
type SendRequest struct {
	Message string `json:"message"`
	ChatID  string `json:"chat_id,omitempty"`
}

// Reply is the assistant's answer to one user message.
type Reply struct {
	Response        string       `json:"response"`
	Recommendations []books.Book `json:"recommendations"`
	ChatID          string       `json:"chat_id"`
}

// ChatView is the API representation of a chat.
type ChatView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageView is the API representation of a stored message.
type MessageView struct {
	ID              string       `json:"id"`
	ChatID          string       `json:"chat_id"`
	Role            string       `json:"role"`
	Content         string       `json:"content"`
	Recommendations []books.Book `json:"recommendations,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// UpdateChatRequest is the body of PUT /chats/:id.
type UpdateChatRequest struct {
	Title string `json:"title"`
}
