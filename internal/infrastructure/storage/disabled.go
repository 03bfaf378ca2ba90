package storage

import (
	"context"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
)

var _ ports.ObjectStorage = Disabled{}

// Disabled se usa cuando S3 no está configurado: toda operación devuelve ErrStorageUnavailable.
type Disabled struct{}

func (Disabled) Put(context.Context, string, string, []byte) error {
	return domain.ErrStorageUnavailable
}
func (Disabled) Get(context.Context, string) ([]byte, error) {
	return nil, domain.ErrStorageUnavailable
}
func (Disabled) Delete(context.Context, string) error { return domain.ErrStorageUnavailable }
func (Disabled) PresignGet(context.Context, string) (string, time.Time, error) {
	return "", time.Time{}, domain.ErrStorageUnavailable
}
