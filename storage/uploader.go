package storage

import (
	"context"
	"io"
)

// UploadResult описывает загруженный объект: ключ в бакете,
// публичный URL и ETag хранилища.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader — блоб-хранилище для сертификатов и пользовательских
// загрузок. Ключи задаёт вызывающая сторона.
type FileUploader interface {
	// Upload кладёт объект по ключу и возвращает его публичное описание.
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete удаляет объект; отсутствие объекта не считается ошибкой.
	Delete(ctx context.Context, key string) error

	// GetPublicURL строит публичный URL по ключу без обращения к хранилищу.
	GetPublicURL(key string) string
}
