package books

// SampleBooks returns the built-in catalog served when no API credential is
// configured or the upstream call fails. The content is fixed so degraded
// responses stay deterministic.
func SampleBooks() []Book {
	return []Book{
		{
			ID:          "1",
			Title:       "Мастер и Маргарита",
			Author:      "Михаил Булгаков",
			Description: "Роман о дьяволе, посетившем Москву 1930-х годов.",
			Genre:       "Классика, Фантастика",
			Rating:      4.8,
			PageCount:   384,
			CoverURL:    "https://example.com/cover1.jpg",
		},
		{
			ID:          "2",
			Title:       "Преступление и наказание",
			Author:      "Фёдор Достоевский",
			Description: "Роман о студенте Раскольникове, совершившем убийство.",
			Genre:       "Классика, Психологический роман",
			Rating:      4.7,
			PageCount:   430,
			CoverURL:    "https://example.com/cover2.jpg",
		},
		{
			ID:          "3",
			Title:       "1984",
			Author:      "Джордж Оруэлл",
			Description: "Антиутопия о тоталитарном обществе под контролем Большого Брата.",
			Genre:       "Антиутопия, Политическая фантастика",
			Rating:      4.6,
			PageCount:   328,
			CoverURL:    "https://example.com/cover3.jpg",
		},
	}
}
