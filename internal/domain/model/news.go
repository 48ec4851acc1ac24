package model

import (
	"slices"
	"strings"
	"time"
)

// News — новость.
// Хранится в таблице news, UpdatedAt выставляет БД при каждом сохранении.
type News struct {
	ID       string
	Slug     string
	Title    Localized
	Content  Localized
	Image    string
	Category string
	// PublishedDate — дата публикации (без времени)
	PublishedDate time.Time
	AuthorName    *string
	Keywords      string
	ProjectID     *string
	UpdatedAt     time.Time
}

// SortNews упорядочивает новости по дате публикации, новые первыми.
func SortNews(items []News) {
	slices.SortStableFunc(items, func(a, b News) int {
		return b.PublishedDate.Compare(a.PublishedDate)
	})
}

// ParseKeywords разбивает строку ключевых слов по запятой и обрезает пробелы.
// Пустые элементы отбрасываются; пустая строка даёт пустой (не nil) срез.
func ParseKeywords(s string) []string {
	out := []string{}
	for part := range strings.SplitSeq(s, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
