// Package books provides the book search API client with a deterministic
// sample-catalog fallback.
package books

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bookchatai/bookchat/internal/config"
)

const (
	defaultMaxResults = 10

	untitledPlaceholder      = "Без названия"
	unknownAuthorPlaceholder = "Неизвестный автор"
)

// Client calls the book search API. Upstream failures are never surfaced:
// every degraded path resolves to the sample catalog.
type Client struct {
	baseURL string
	apiKey  string
	lang    string
	logger  *slog.Logger
	http    *http.Client
}

// NewClient creates a book search client from config. An empty API key puts
// the client in sample-catalog mode.
func NewClient(log *slog.Logger, cfg config.BooksConfig) *Client {
	if log == nil {
		log = slog.Default()
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = config.DefaultBooksBaseURL
	}
	lang := strings.TrimSpace(cfg.LangRestrict)
	if lang == "" {
		lang = config.DefaultBooksLang
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		lang:    lang,
		logger:  log.With(slog.String("client", "books")),
		http: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Enabled reports whether a live API credential is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Search looks up books matching query, capped at maxResults. Without a
// credential, or on any upstream failure, it returns the sample catalog and
// ignores the query.
func (c *Client) Search(ctx context.Context, query string, maxResults int) []Book {
	if !c.Enabled() {
		return SampleBooks()
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", c.apiKey)
	params.Set("langRestrict", c.lang)

	var parsed volumesResponse
	if err := c.getJSON(ctx, c.baseURL+"/volumes?"+params.Encode(), &parsed); err != nil {
		c.logger.Warn("book search degraded to sample catalog", slog.Any("error", err))
		return SampleBooks()
	}

	items := make([]Book, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, item.toBook())
	}
	return items
}

// Details returns the full record for a single book id. Without a credential
// the sample catalog is consulted by literal id match; upstream failures
// report not-found.
func (c *Client) Details(ctx context.Context, id string) (BookDetail, bool) {
	if !c.Enabled() {
		for _, book := range SampleBooks() {
			if book.ID == id {
				return BookDetail{Book: book, Language: c.lang}, true
			}
		}
		return BookDetail{}, false
	}

	params := url.Values{}
	params.Set("key", c.apiKey)

	var item volumeItem
	if err := c.getJSON(ctx, c.baseURL+"/volumes/"+url.PathEscape(id)+"?"+params.Encode(), &item); err != nil {
		c.logger.Warn("book details lookup failed", slog.String("id", id), slog.Any("error", err))
		return BookDetail{}, false
	}
	return item.toDetail(c.lang), true
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("book api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type volumesResponse struct {
	Items []volumeItem `json:"items"`
}

type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
	SaleInfo   saleInfo   `json:"saleInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Description         string               `json:"description"`
	Categories          []string             `json:"categories"`
	AverageRating       float64              `json:"averageRating"`
	RatingsCount        int                  `json:"ratingsCount"`
	PageCount           int                  `json:"pageCount"`
	Language            string               `json:"language"`
	PublishedDate       string               `json:"publishedDate"`
	Publisher           string               `json:"publisher"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	ImageLinks          imageLinks           `json:"imageLinks"`
	PreviewLink         string               `json:"previewLink"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type imageLinks struct {
	Thumbnail string `json:"thumbnail"`
}

type saleInfo struct {
	BuyLink string `json:"buyLink"`
}

func (v volumeItem) toBook() Book {
	info := v.VolumeInfo
	title := info.Title
	if title == "" {
		title = untitledPlaceholder
	}
	author := unknownAuthorPlaceholder
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}
	return Book{
		ID:          v.ID,
		Title:       title,
		Author:      author,
		Description: info.Description,
		Genre:       strings.Join(info.Categories, ", "),
		Rating:      info.AverageRating,
		PageCount:   info.PageCount,
		CoverURL:    info.ImageLinks.Thumbnail,
		PreviewLink: info.PreviewLink,
	}
}

func (v volumeItem) toDetail(defaultLang string) BookDetail {
	info := v.VolumeInfo
	language := info.Language
	if language == "" {
		language = defaultLang
	}
	isbn := ""
	if len(info.IndustryIdentifiers) > 0 {
		isbn = info.IndustryIdentifiers[0].Identifier
	}
	return BookDetail{
		Book:          v.toBook(),
		RatingCount:   info.RatingsCount,
		Language:      language,
		PublishedDate: info.PublishedDate,
		Publisher:     info.Publisher,
		ISBN:          isbn,
		BuyLink:       v.SaleInfo.BuyLink,
	}
}
