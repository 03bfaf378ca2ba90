package entity

import "time"

// Task tarea del plan de trabajo de un proyecto.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Category    string // electricite, isolation, plomberie, menuiserie...
	Done        bool
	DueDate     *time.Time
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
