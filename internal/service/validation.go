// validation.go — проверка входных данных через go-playground/validator.
package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/bigkaa/labportal/internal/domain/model"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Validator — обёртка над validator.Validate с правилами сайта:
//   - ru_required — у локализуемого поля непустой ru-вариант;
//   - loc_max=N — каждый вариант локализуемого поля не длиннее N символов;
//   - slug — латиница, цифры, дефис и подчёркивание.
type Validator struct {
	v *validator.Validate
}

// NewValidator создаёт Validator с зарегистрированными правилами.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if l, ok := field.Interface().(model.Localized); ok {
			return l.RU
		}
		return nil
	}, model.Localized{})

	// Имена полей в ошибках — как в JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			name, _, _ = strings.Cut(f.Tag.Get("form"), ",")
		}
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("ru_required", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("loc_max", validateLocalizedMax)
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// validateLocalizedMax проверяет длину всех вариантов model.Localized.
// Значение поля подменено ru-вариантом, поэтому поле читается из родителя.
func validateLocalizedMax(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		parent = parent.Elem()
	}
	field := parent.FieldByName(fl.StructFieldName())
	if !field.IsValid() {
		return false
	}
	l, ok := field.Interface().(model.Localized)
	if !ok {
		return utf8.RuneCountInString(fl.Field().String()) <= limit
	}

	for _, s := range []string{l.RU, l.KK, l.EN} {
		if utf8.RuneCountInString(s) > limit {
			return false
		}
	}
	return true
}

// Struct проверяет структуру. Ошибка оборачивает ErrValidation и
// перечисляет нарушенные поля.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required", "ru_required":
		return fmt.Sprintf("%s: обязательное поле", field)
	case "slug":
		return fmt.Sprintf("%s: допустимы латиница, цифры, '-' и '_'", field)
	case "oneof":
		return fmt.Sprintf("%s: допустимые значения — %s", field, fe.Param())
	case "max", "loc_max":
		return fmt.Sprintf("%s: длина не более %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s: некорректный URL", field)
	case "datetime":
		return fmt.Sprintf("%s: ожидается дата в формате %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s: не прошло проверку %s", field, fe.Tag())
	}
}
