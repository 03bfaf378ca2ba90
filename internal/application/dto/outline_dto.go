package dto

import (
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// SaveOutlineRequest entrada para crear o reemplazar un contorno.
type SaveOutlineRequest struct {
	Name   string         `json:"name" validate:"required,min=1,max=200"`
	Width  float64        `json:"width" validate:"gt=0"`
	Height float64        `json:"height" validate:"gt=0"`
	Shapes []entity.Shape `json:"shapes"`
}

// OutlineResponse salida de un contorno.
type OutlineResponse struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"project_id"`
	Name      string         `json:"name"`
	Unit      string         `json:"unit"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Shapes    []entity.Shape `json:"shapes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ExportedFile archivo generado por una exportación.
type ExportedFile struct {
	Data        []byte
	ContentType string
	Filename    string
	ETag        string
}
