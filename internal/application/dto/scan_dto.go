package dto

import (
	"encoding/json"
	"time"
)

// UploadedFile archivo recibido por multipart.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Zone recorte relativo (0..1) sobre la imagen escaneada.
type Zone struct {
	X float64 `json:"x" validate:"min=0,max=1"`
	Y float64 `json:"y" validate:"min=0,max=1"`
	W float64 `json:"w" validate:"gt=0,max=1"`
	H float64 `json:"h" validate:"gt=0,max=1"`
}

// RescanZoneRequest relectura de un único campo sobre una zona de la imagen.
type RescanZoneRequest struct {
	Field string `json:"field" validate:"required,max=40"`
	Zone  Zone   `json:"zone"`
}

// ScanJobResponse salida de un escaneo.
type ScanJobResponse struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	Kind        string          `json:"kind"`
	Status      string          `json:"status"`
	ContentType string          `json:"content_type"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	ExpenseID   string          `json:"expense_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ScanRegistrationResponse escaneo + proyecto actualizado.
type ScanRegistrationResponse struct {
	Job     ScanJobResponse `json:"job"`
	Project ProjectResponse `json:"project"`
}

// ScanInvoiceResponse escaneo + gasto creado.
type ScanInvoiceResponse struct {
	Job     ScanJobResponse `json:"job"`
	Expense ExpenseResponse `json:"expense"`
}
