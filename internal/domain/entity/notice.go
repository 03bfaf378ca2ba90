package entity

import "time"

// Notice manual/notice técnica de un accesorio, indexada para búsqueda y para el asistente IA.
type Notice struct {
	ID          string
	AccessoryID string // opcional
	Title       string
	Brand       string
	Language    string // fr, en...
	FileKey     string // clave en el almacenamiento de objetos
	ContentType string
	Content     string // texto extraído por el modelo de visión
	Keywords    []string
	Indexed     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NoticeHit resultado de búsqueda con su relevancia.
type NoticeHit struct {
	Notice *Notice
	Rank   float32
}
