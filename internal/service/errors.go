// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

// ErrNotFound — запись не найдена или принадлежит другому пользователю.
var ErrNotFound = errors.New("файл не найден")

// Сообщения ошибок валидации, возвращаемые клиенту как есть.
const (
	MsgMissingNameOrType  = "Missing name or invalid type"
	MsgMissingData        = "Missing data"
	MsgInvalidParentID    = "Invalid parent ID"
	MsgInvalidData        = "Invalid data"
	MsgParentNotFound     = "Parent not found"
	MsgParentIsNotAFolder = "Parent is not a folder"
)

// ValidationError — некорректный запрос. Message возвращается клиенту.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// invalid создаёт ValidationError.
func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
