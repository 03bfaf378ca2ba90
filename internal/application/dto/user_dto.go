package dto

import "time"

// RegisterRequest entrada para registro público.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SetUserStatusRequest activación/desactivación de una cuenta (admin).
type SetUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// SetUserRoleRequest cambio de rol (admin).
type SetUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}
