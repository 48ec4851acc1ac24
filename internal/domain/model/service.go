package model

import (
	"cmp"
	"slices"
	"time"
)

// Service — услуга лаборатории.
type Service struct {
	ID          string
	Title       Localized
	Description Localized
	IconClass   string
	Order       int
	CreatedAt   time.Time
}

// SortServices упорядочивает услуги по Order.
func SortServices(items []Service) {
	slices.SortStableFunc(items, func(a, b Service) int {
		return cmp.Compare(a.Order, b.Order)
	})
}
