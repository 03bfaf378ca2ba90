package dto

import "time"

// UploadNoticeInput metadatos + archivo de una notice subida por multipart.
type UploadNoticeInput struct {
	AccessoryID string `form:"accessory_id" validate:"omitempty,uuid"`
	Title       string `form:"title" validate:"required,min=1,max=200"`
	Brand       string `form:"brand" validate:"omitempty,max=120"`
	Language    string `form:"language" validate:"omitempty,len=2"`
	Filename    string `validate:"-"`
	ContentType string `validate:"-"`
	Data        []byte `validate:"-"`
}

// UpdateNoticeRequest actualización parcial de metadatos.
type UpdateNoticeRequest struct {
	AccessoryID *string  `json:"accessory_id,omitempty" validate:"omitempty,uuid"`
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Brand       *string  `json:"brand,omitempty"`
	Language    *string  `json:"language,omitempty" validate:"omitempty,len=2"`
	Keywords    []string `json:"keywords,omitempty"`
}

// NoticeResponse salida de una notice (sin el texto completo).
type NoticeResponse struct {
	ID          string    `json:"id"`
	AccessoryID string    `json:"accessory_id,omitempty"`
	Title       string    `json:"title"`
	Brand       string    `json:"brand"`
	Language    string    `json:"language"`
	ContentType string    `json:"content_type"`
	Keywords    []string  `json:"keywords"`
	Indexed     bool      `json:"indexed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NoticeSearchHit resultado de búsqueda con extracto.
type NoticeSearchHit struct {
	NoticeResponse
	Rank    float32 `json:"rank"`
	Excerpt string  `json:"excerpt"`
}

// DownloadResponse URL prefirmada de descarga.
type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AskRequest pregunta al asistente.
type AskRequest struct {
	Question  string `json:"question" validate:"required,min=2,max=2000"`
	ProjectID string `json:"project_id" validate:"omitempty,uuid"`
}

// AskResponse respuesta del asistente con las notices usadas.
type AskResponse struct {
	Answer  string           `json:"answer"`
	Sources []NoticeResponse `json:"sources"`
}

// ChatMessageResponse turno del historial.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Sources   []string  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
