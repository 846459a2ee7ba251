package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
)

// IsUniqueViolation сообщает о нарушении уникальности; если constraint не пуст, проверяется и его имя
func IsUniqueViolation(err error, constraint string) bool {
	return is(err, CodeUniqueViolation, constraint)
}

// IsForeignKeyViolation сообщает о нарушении внешнего ключа
func IsForeignKeyViolation(err error, constraint string) bool {
	return is(err, CodeForeignKeyViolation, constraint)
}

// IsSerializationFailure сообщает о конфликте сериализуемой транзакции
func IsSerializationFailure(err error) bool {
	return is(err, CodeSerializationFailure, "")
}

func is(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
