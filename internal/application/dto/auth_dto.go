package dto

import "time"

// RegisterRequest cuerpo de POST /api/v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest cuerpo de POST /api/v1/auth/login. Se acepta email o username
// como identificador; si vienen ambos se usa email.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identifier devuelve el identificador de login (email o username).
func (r LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// UserResponse usuario sin campos sensibles.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse respuesta de register y login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// MeResponse respuesta de GET /api/v1/auth/me.
type MeResponse struct {
	User            UserResponse       `json:"user"`
	RecentProducts  []ProductResponse  `json:"recent_products"`
	RecentMovements []MovementResponse `json:"recent_movements"`
}
