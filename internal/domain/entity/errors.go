package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation некорректный ввод пользователя
	ErrValidation = errors.New("validation failed")
	// ErrNotFound продукт не найден или нет данных о калорийности
	ErrNotFound = errors.New("not found")
	// ErrUnavailable внешний сервис недоступен
	ErrUnavailable = errors.New("service unavailable")
	// ErrProfileRequired команда вызвана до настройки профиля
	ErrProfileRequired = errors.New("profile setup required")
	// ErrProfileNotFound профиль отсутствует в хранилище
	ErrProfileNotFound = errors.New("profile not found")
)

// Field поле ввода, которое не прошло проверку
type Field string

const (
	FieldWeight   Field = "weight"
	FieldHeight   Field = "height"
	FieldAge      Field = "age"
	FieldActivity Field = "activity"
	FieldCity     Field = "city"
	FieldWater    Field = "water"
	FieldProduct  Field = "product"
	FieldGrams    Field = "grams"
	FieldWorkout  Field = "workout"
)

// Limits допустимые значения числового поля включительно
type Limits struct {
	Min int
	Max int
}

var fieldLimits = map[Field]Limits{
	FieldWeight:   {Min: 1, Max: 500},
	FieldHeight:   {Min: 1, Max: 300},
	FieldAge:      {Min: 1, Max: 150},
	FieldActivity: {Min: 0, Max: 1440},
	FieldWater:    {Min: 1, Max: 10000},
	FieldGrams:    {Min: 1, Max: 100000},
	FieldWorkout:  {Min: 1, Max: 1440},
}

// Limits границы числового поля. ok=false для нечисловых полей.
func (f Field) Limits() (Limits, bool) {
	l, ok := fieldLimits[f]
	return l, ok
}

// Contains сообщает, что v лежит в границах
func (l Limits) Contains(v int) bool {
	return v >= l.Min && v <= l.Max
}

// FieldError ошибка проверки конкретного поля
type FieldError struct {
	Field Field
	Input string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Input)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// InvalidField создаёт ошибку проверки поля
func InvalidField(field Field, input string) error {
	return &FieldError{Field: field, Input: input}
}
