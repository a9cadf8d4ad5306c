package books

// Book is a normalized search result from the book search API.
type Book struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	PageCount   int     `json:"page_count,omitempty"`
	CoverURL    string  `json:"cover_url"`
	PreviewLink string  `json:"preview_link,omitempty"`
}

// BookDetail extends Book with the richer field set of a single-volume lookup.
type BookDetail struct {
	Book
	RatingCount   int    `json:"rating_count"`
	Language      string `json:"language"`
	PublishedDate string `json:"published_date"`
	Publisher     string `json:"publisher"`
	ISBN          string `json:"isbn"`
	BuyLink       string `json:"buy_link"`
}

// SearchResponse is returned by GET /books/search.
type SearchResponse struct {
	Items []Book `json:"items"`
}
