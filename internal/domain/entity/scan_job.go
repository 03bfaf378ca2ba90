package entity

import (
	"encoding/json"
	"time"
)

// Tipos de documento escaneado.
const (
	ScanKindRegistration = "registration" // certificado de matriculación (carte grise)
	ScanKindInvoice      = "invoice"      // factura de proveedor
)

// Estados de un escaneo.
const (
	ScanStatusPending = "pending"
	ScanStatusDone    = "done"
	ScanStatusFailed  = "failed"
)

// ScanJob registro de un documento enviado al OCR y de su resultado.
type ScanJob struct {
	ID          string
	UserID      string
	ProjectID   string
	Kind        string
	FileKey     string
	ContentType string
	Status      string
	Result      json.RawMessage
	Error       string
	ExpenseID   string // gasto creado por un escaneo de factura
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
