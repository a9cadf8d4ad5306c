package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bookchatai/bookchat/internal/books"
)

type fakeSearcher struct {
	results   []books.Book
	lastQuery string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) []books.Book {
	f.lastQuery = query
	return f.results
}

type fakeCompleter struct {
	enabled bool
	reply   string
	called  bool
}

func (f *fakeCompleter) Enabled() bool { return f.enabled }

func (f *fakeCompleter) Complete(_ context.Context, _ string) string {
	f.called = true
	return f.reply
}

func sampleResults(n int) []books.Book {
	items := make([]books.Book, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, books.Book{
			ID:     fmt.Sprintf("id-%d", i+1),
			Title:  fmt.Sprintf("Книга %d", i+1),
			Author: fmt.Sprintf("Автор %d", i+1),
		})
	}
	return items
}

func TestIsBookRelated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		want    bool
	}{
		{"Посоветуй книгу", true},
		{"ПОСОВЕТУЙ КНИГУ", true},
		{"Что ты прочитал недавно?", true},
		{"Дай рекомендацию", true},
		{"Кто твой любимый автор?", true},
		{"Какой жанр выбрать?", true},
		{"Расскажи про литературу", true},
		{"Привет, как дела?", false},
		{"", false},
		{"Какая сегодня погода?", false},
	}
	for _, tt := range tests {
		if got := isBookRelated(tt.message); got != tt.want {
			t.Errorf("isBookRelated(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestRespondBookPath(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{results: sampleResults(7)}
	completer := &fakeCompleter{enabled: true, reply: "не должно быть вызвано"}
	resolver := NewResolver(nil, searcher, completer)

	text, recs := resolver.Respond(context.Background(), "Посоветуй книгу")

	if searcher.lastQuery != "Посоветуй книгу" {
		t.Errorf("search query = %q", searcher.lastQuery)
	}
	if completer.called {
		t.Error("book-related message must not reach the completer")
	}
	if len(recs) != 5 {
		t.Fatalf("len(recommendations) = %d, want 5", len(recs))
	}
	if !strings.HasPrefix(text, "Вот что я нашел по вашему запросу 'Посоветуй книгу':\n") {
		t.Errorf("response prefix wrong: %q", text)
	}
	// Only the first three results are listed in the text.
	if !strings.Contains(text, "3. Книга 3 - Автор 3") {
		t.Errorf("third book missing from text: %q", text)
	}
	if strings.Contains(text, "Книга 4") {
		t.Errorf("fourth book must not appear in text: %q", text)
	}
	if !strings.HasSuffix(text, "\nМогу рассказать подробнее о любой из этих книг!") {
		t.Errorf("response suffix wrong: %q", text)
	}
}

func TestRespondBookPathFewResults(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(nil, &fakeSearcher{results: sampleResults(2)}, nil)
	text, recs := resolver.Respond(context.Background(), "какой жанр почитать")

	if len(recs) != 2 {
		t.Fatalf("len(recommendations) = %d, want 2", len(recs))
	}
	if !strings.Contains(text, "1. Книга 1 - Автор 1") || !strings.Contains(text, "2. Книга 2 - Автор 2") {
		t.Errorf("response text = %q", text)
	}
}

func TestRespondBookPathNoResults(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(nil, &fakeSearcher{}, nil)
	text, recs := resolver.Respond(context.Background(), "книги про несуществующее")

	if recs != nil {
		t.Fatalf("recommendations = %+v, want none", recs)
	}
	want := "К сожалению, я не нашел книг по запросу 'книги про несуществующее'. Попробуйте уточнить запрос."
	if text != want {
		t.Errorf("response = %q, want %q", text, want)
	}
}

func TestRespondGenericViaCompleter(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{enabled: true, reply: "Привет! Всё отлично."}
	resolver := NewResolver(nil, &fakeSearcher{results: sampleResults(3)}, completer)

	text, recs := resolver.Respond(context.Background(), "Привет, как дела?")

	if !completer.called {
		t.Fatal("generic message must reach the completer")
	}
	if text != "Привет! Всё отлично." || recs != nil {
		t.Errorf("reply = %q, recs = %+v", text, recs)
	}
}

func TestRespondGenericWithoutCompleter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		completer Completer
	}{
		{"nil completer", nil},
		{"disabled completer", &fakeCompleter{enabled: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := NewResolver(nil, &fakeSearcher{}, tt.completer)
			text, recs := resolver.Respond(context.Background(), "Привет, как дела?")

			if recs != nil {
				t.Errorf("recommendations = %+v, want none", recs)
			}
			if !strings.Contains(text, "Я получил ваше сообщение: 'Привет, как дела?'.") {
				t.Errorf("capability reply wrong: %q", text)
			}
			if !strings.Contains(text, "Что вас интересует?") {
				t.Errorf("capability reply wrong: %q", text)
			}
		})
	}
}
