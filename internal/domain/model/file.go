// Пакет model — доменные модели files-manager.
// FileRecord — маппинг таблицы files (PostgreSQL) и коллекции files (MongoDB).
package model

import "time"

// RootID — идентификатор корневой папки. Длина 1 символ, поэтому
// никогда не совпадает со сгенерированным 24-символьным идентификатором.
const RootID = "0"

// Kind — тип записи.
type Kind string

const (
	// KindFolder — папка (без содержимого).
	KindFolder Kind = "folder"
	// KindFile — обычный файл.
	KindFile Kind = "file"
	// KindImage — изображение, для которого генерируется миниатюра.
	KindImage Kind = "image"
)

// IsValid проверяет, что тип входит в допустимый набор.
func (k Kind) IsValid() bool {
	switch k {
	case KindFolder, KindFile, KindImage:
		return true
	}
	return false
}

// FileRecord — метаданные файла или папки.
type FileRecord struct {
	// ID — 24-символьный hex-идентификатор, задаётся при создании
	ID string
	// OwnerID — идентификатор владельца (из identity middleware), не меняется
	OwnerID string
	// Name — отображаемое имя
	Name string
	// Kind — folder, file или image; не меняется
	Kind Kind
	// IsPublic — виден ли файл другим пользователям
	IsPublic bool
	// ParentID — идентификатор родительской папки или RootID
	ParentID string
	// StorageLocation — путь/ключ содержимого; nil для папок
	StorageLocation *string
	// CreatedAt — время создания записи
	CreatedAt time.Time
}

// IsRoot сообщает, находится ли запись в корне.
func (f *FileRecord) IsRoot() bool {
	return f.ParentID == RootID
}
