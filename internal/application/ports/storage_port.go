package ports

import (
	"context"
	"time"
)

// ObjectStorage almacenamiento de archivos (documentos escaneados, notices, copias).
// Las implementaciones deshabilitadas devuelven domain.ErrStorageUnavailable.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// PresignGet genera una URL temporal de descarga.
	PresignGet(ctx context.Context, key string) (url string, expiresAt time.Time, err error)
}
