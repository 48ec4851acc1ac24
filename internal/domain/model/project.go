package model

import (
	"cmp"
	"slices"
	"time"
)

// Category — категория проекта.
type Category string

const (
	CategoryResearch    Category = "research"
	CategoryDevelopment Category = "development"
	CategoryCommercial  Category = "commercial"
)

// Categories — все допустимые категории.
var Categories = []Category{CategoryResearch, CategoryDevelopment, CategoryCommercial}

// Valid сообщает, является ли значение известной категорией.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Project — проект лаборатории.
// Хранится в таблице projects, команда — в project_team.
type Project struct {
	// ID — UUID записи
	ID       string
	Category Category
	// Slug — уникальный URL-идентификатор
	Slug    string
	Title   Localized
	Tagline Localized
	// StatusTag1, StatusTag2 — короткие метки статуса на карточке
	StatusTag1        Localized
	StatusTag2        Localized
	FullDescription   Localized
	TaskDescription   Localized
	TaskSubtitle      Localized
	ResultDescription Localized
	DetailedInfo      Localized
	// ExternalLink — внешняя ссылка (nil, если не задана)
	ExternalLink *string
	// Keywords — ключевые слова через запятую
	Keywords string
	// CreatedAt — время создания записи
	CreatedAt time.Time

	// TeamIDs — UUID сотрудников команды проекта
	TeamIDs      []string
	Features     []ProjectFeature
	TechStack    []ProjectTechStack
	ResultImages []ProjectResultImage
}

// ProjectFeature — особенность проекта.
type ProjectFeature struct {
	ID        int64
	ProjectID string
	IconClass string
	Text      Localized
	Order     int
}

// ProjectTechStack — технология из стека проекта (текст не локализуется).
type ProjectTechStack struct {
	ID        int64
	ProjectID string
	IconClass string
	Text      string
	Order     int
}

// ProjectResultImage — изображение результата проекта.
type ProjectResultImage struct {
	ID        int64
	ProjectID string
	Image     string
	Caption   Localized
	Order     int
}

// byOrderThenID — порядок подзаписей: Order по возрастанию, затем порядок вставки.
func byOrderThenID(aOrder, bOrder int, aID, bID int64) int {
	return cmp.Or(cmp.Compare(aOrder, bOrder), cmp.Compare(aID, bID))
}

// SortFeatures упорядочивает особенности по Order, затем по порядку вставки.
func SortFeatures(items []ProjectFeature) {
	slices.SortStableFunc(items, func(a, b ProjectFeature) int {
		return byOrderThenID(a.Order, b.Order, a.ID, b.ID)
	})
}

// SortTechStack упорядочивает стек по Order, затем по порядку вставки.
func SortTechStack(items []ProjectTechStack) {
	slices.SortStableFunc(items, func(a, b ProjectTechStack) int {
		return byOrderThenID(a.Order, b.Order, a.ID, b.ID)
	})
}

// SortResultImages упорядочивает изображения по Order, затем по порядку вставки.
func SortResultImages(items []ProjectResultImage) {
	slices.SortStableFunc(items, func(a, b ProjectResultImage) int {
		return byOrderThenID(a.Order, b.Order, a.ID, b.ID)
	})
}
