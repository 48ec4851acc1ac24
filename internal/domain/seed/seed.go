// Пакет seed — шаблон особенностей, которыми заполняется новый проект
// без собственных особенностей.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bigkaa/labportal/internal/domain/model"
)

// FeatureEntry — одна запись шаблона: иконка и локализованный текст.
type FeatureEntry struct {
	IconClass string          `json:"icon_class"`
	Text      model.Localized `json:"text"`
}

// FeatureTemplate — неизменяемый упорядоченный список записей шаблона.
// Записи отдаются только копией.
type FeatureTemplate struct {
	entries []FeatureEntry
}

// NewFeatureTemplate создаёт шаблон из записей. Каждая запись
// должна иметь иконку и непустой ru-текст.
func NewFeatureTemplate(entries []FeatureEntry) (FeatureTemplate, error) {
	if len(entries) == 0 {
		return FeatureTemplate{}, errors.New("шаблон особенностей пуст")
	}
	for i, e := range entries {
		if strings.TrimSpace(e.IconClass) == "" {
			return FeatureTemplate{}, fmt.Errorf("запись %d: не задан icon_class", i)
		}
		if strings.TrimSpace(e.Text.RU) == "" {
			return FeatureTemplate{}, fmt.Errorf("запись %d: пустой текст ru", i)
		}
	}
	return FeatureTemplate{entries: append([]FeatureEntry(nil), entries...)}, nil
}

// Len возвращает число записей шаблона.
func (t FeatureTemplate) Len() int {
	return len(t.entries)
}

// Entries возвращает копию записей в порядке шаблона.
func (t FeatureTemplate) Entries() []FeatureEntry {
	return append([]FeatureEntry(nil), t.entries...)
}

// Features строит особенности проекта projectID с Order = индекс записи.
func (t FeatureTemplate) Features(projectID string) []model.ProjectFeature {
	out := make([]model.ProjectFeature, len(t.entries))
	for i, e := range t.entries {
		out[i] = model.ProjectFeature{
			ProjectID: projectID,
			IconClass: e.IconClass,
			Text:      e.Text,
			Order:     i,
		}
	}
	return out
}

// DefaultFeatures возвращает встроенный шаблон.
func DefaultFeatures() FeatureTemplate {
	return FeatureTemplate{entries: []FeatureEntry{
		{
			IconClass: "fas fa-lightbulb",
			Text:      model.Localized{RU: "Инновационный подход", KK: "Инновациялық тәсіл", EN: "Innovative approach"},
		},
		{
			IconClass: "fas fa-users",
			Text:      model.Localized{RU: "Командная работа", KK: "Командалық жұмыс", EN: "Teamwork"},
		},
		{
			IconClass: "fas fa-chart-line",
			Text:      model.Localized{RU: "Измеримые результаты", KK: "Өлшенетін нәтижелер", EN: "Measurable results"},
		},
		{
			IconClass: "fas fa-shield-alt",
			Text:      model.Localized{RU: "Надёжность", KK: "Сенімділік", EN: "Reliability"},
		},
	}}
}

// LoadFeatureTemplate читает шаблон из JSON-файла вида
// [{"icon_class": "...", "text": {"ru": "...", "kk": "...", "en": "..."}}].
// Пустой путь даёт встроенный шаблон.
func LoadFeatureTemplate(path string) (FeatureTemplate, error) {
	if path == "" {
		return DefaultFeatures(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FeatureTemplate{}, fmt.Errorf("чтение шаблона особенностей: %w", err)
	}

	var entries []FeatureEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return FeatureTemplate{}, fmt.Errorf("разбор шаблона особенностей %s: %w", path, err)
	}
	return NewFeatureTemplate(entries)
}
