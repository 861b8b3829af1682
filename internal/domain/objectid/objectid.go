// Пакет objectid — генерация и проверка идентификаторов записей.
// Идентификатор — 24 шестнадцатеричных символа (BSON ObjectID).
package objectid

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	// Length — длина идентификатора в символах.
	Length = 24

	// Null — идентификатор, который никогда не генерируется.
	// Подставляется вместо некорректных значений, чтобы поиск
	// гарантированно ничего не нашёл.
	Null = "000000000000000000000000"
)

// New возвращает новый идентификатор в нижнем регистре.
func New() string {
	return bson.NewObjectID().Hex()
}

// IsValid проверяет, что s состоит ровно из 24 шестнадцатеричных символов
// (регистр не важен).
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	_, err := bson.ObjectIDFromHex(s)
	return err == nil
}

// OrNull возвращает s в нижнем регистре, если идентификатор корректен,
// иначе Null.
func OrNull(s string) string {
	if IsValid(s) {
		return strings.ToLower(s)
	}
	return Null
}
