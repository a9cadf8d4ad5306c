package books

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/bookchatai/bookchat/internal/config"
)

func TestSearchWithoutCredentialReturnsSamples(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, config.BooksConfig{})

	got := client.Search(context.Background(), "фантастика", 10)
	want := SampleBooks()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Search() = %+v, want sample catalog", got)
	}
	if got[0].Title != "Мастер и Маргарита" || got[1].Title != "Преступление и наказание" || got[2].Title != "1984" {
		t.Fatalf("unexpected sample order: %+v", got)
	}

	// Deterministic regardless of query.
	again := client.Search(context.Background(), "совсем другой запрос", 1)
	if !reflect.DeepEqual(again, want) {
		t.Fatal("fallback catalog must not depend on the query")
	}
}

func TestSearchUpstreamErrorFallsBack(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(nil, config.BooksConfig{APIKey: "key", BaseURL: server.URL})
	got := client.Search(context.Background(), "книги", 10)
	if !reflect.DeepEqual(got, SampleBooks()) {
		t.Fatalf("Search() on HTTP 500 = %+v, want sample catalog", got)
	}
}

func TestSearchMapsVolumeFields(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		q := r.URL.Query()
		if q.Get("q") != "булгаков" || q.Get("maxResults") != "2" || q.Get("langRestrict") != "ru" {
			t.Errorf("unexpected query params: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{
					"id": "abc",
					"volumeInfo": {
						"title": "Собачье сердце",
						"authors": ["Михаил Булгаков", "Кто-то Ещё"],
						"categories": ["Классика"],
						"averageRating": 4.5,
						"pageCount": 160,
						"imageLinks": {"thumbnail": "http://img/1.jpg"},
						"previewLink": "http://preview/1"
					}
				},
				{"id": "empty", "volumeInfo": {}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(nil, config.BooksConfig{APIKey: "key", BaseURL: server.URL})
	got := client.Search(context.Background(), "булгаков", 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Author != "Михаил Булгаков, Кто-то Ещё" {
		t.Errorf("author = %q", got[0].Author)
	}
	if got[0].CoverURL != "http://img/1.jpg" || got[0].Rating != 4.5 {
		t.Errorf("mapped book = %+v", got[0])
	}
	if got[1].Title != "Без названия" || got[1].Author != "Неизвестный автор" {
		t.Errorf("placeholder mapping = %+v", got[1])
	}
	if got[1].Genre != "" || got[1].Rating != 0 {
		t.Errorf("defaults = %+v", got[1])
	}
}

func TestDetailsWithoutCredential(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, config.BooksConfig{})

	detail, ok := client.Details(context.Background(), "2")
	if !ok {
		t.Fatal("expected sample book 2 to be found")
	}
	if detail.Title != "Преступление и наказание" || detail.Language != "ru" {
		t.Errorf("detail = %+v", detail)
	}

	if _, ok := client.Details(context.Background(), "404"); ok {
		t.Fatal("unknown id must not be found")
	}
}

func TestDetailsMapsExtendedFields(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes/abc" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "abc",
			"volumeInfo": {
				"title": "Мы",
				"authors": ["Евгений Замятин"],
				"ratingsCount": 120,
				"publishedDate": "1924",
				"publisher": "Издательство",
				"industryIdentifiers": [{"type": "ISBN_13", "identifier": "9780000000001"}]
			},
			"saleInfo": {"buyLink": "http://buy/abc"}
		}`))
	}))
	defer server.Close()

	client := NewClient(nil, config.BooksConfig{APIKey: "key", BaseURL: server.URL})
	detail, ok := client.Details(context.Background(), "abc")
	if !ok {
		t.Fatal("expected detail")
	}
	if detail.ISBN != "9780000000001" || detail.BuyLink != "http://buy/abc" || detail.RatingCount != 120 {
		t.Errorf("detail = %+v", detail)
	}
	if detail.Language != "ru" {
		t.Errorf("language default = %q", detail.Language)
	}
}
