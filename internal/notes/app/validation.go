package app

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ProjectInput - данные для создания и переименования проекта.
type ProjectInput struct {
	Name string `validate:"required,max=255"`
}

// NoteInput - текст заметки и желаемый набор атрибутов.
type NoteInput struct {
	Text         string `validate:"required"`
	AttributeIDs []int
}

// AttributeInput - данные атрибута.
type AttributeInput struct {
	Name string `validate:"required"`
}

// Credentials - имя и пароль пользователя.
type Credentials struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"notblank"`
}

// UserUpdate - изменения учетной записи. Пустой Password сохраняет текущий хэш.
type UserUpdate struct {
	UserID   *int
	Username string `validate:"required,max=50"`
	Password string
}

// Validator проверяет входные данные use case'ов.
type Validator struct {
	v *validator.Validate
}

// NewValidator создает Validator с зарегистрированным правилом notblank.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Ошибка возможна только при пустом имени правила.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{v: v}
}

// Struct проверяет in и оборачивает первое нарушение в ErrValidation.
func (v *Validator) Struct(in any) error {
	err := v.v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return newValidationError(verrs[0].Field(), "%s", describe(verrs[0]))
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
