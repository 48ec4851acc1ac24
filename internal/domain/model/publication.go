package model

import (
	"cmp"
	"slices"
	"time"
)

// Publication — научная публикация сотрудника.
// Удаляется вместе с сотрудником; при удалении проекта ProjectID обнуляется.
type Publication struct {
	ID          string
	MemberID    string
	ProjectID   *string
	Title       Localized
	Description Localized
	// Source — журнал или источник
	Source string
	Date   time.Time
	URL    string
}

// SortPublications упорядочивает публикации: дата по убыванию, затем ru-заголовок по возрастанию.
func SortPublications(items []Publication) {
	slices.SortStableFunc(items, func(a, b Publication) int {
		return cmp.Or(b.Date.Compare(a.Date), cmp.Compare(a.Title.RU, b.Title.RU))
	})
}
