package model

import "time"

// TeamMember — сотрудник лаборатории.
// Хранится в таблице team_members.
type TeamMember struct {
	// ID — UUID записи
	ID string
	// Slug — уникальный URL-идентификатор
	Slug string
	// IsVisible — отображать ли сотрудника на сайте
	IsVisible bool
	Name      Localized
	Position  Localized
	// Bio — биография (rich text)
	Bio Localized
	// Photo — ссылка на фотографию
	Photo string
	// ScopusID — Scopus Author ID (опционально)
	ScopusID string
	// OrcidID — ORCID iD (опционально)
	OrcidID string
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// SocialLinks — ссылки на соцсети (таблица social_links)
	SocialLinks []SocialLink
}

// SocialLink — ссылка сотрудника на соцсеть.
type SocialLink struct {
	ID       int64
	MemberID string
	// IconClass — CSS-класс иконки, например "fab fa-linkedin"
	IconClass string
	URL       string
}
