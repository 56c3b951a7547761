package storage

import (
	"context"
	"io"
)

// BlobStore — внешнее хранилище байтов фотографий. Put кладёт объект по
// ключу и возвращает store-relative URL, по которому его потом отдаёт
// раздающий слой.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}
