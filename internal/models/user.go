package models

import "time"

// User roles
const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Nama         string    `json:"nama"`
	NoHP         string    `json:"no_hp"`
	PasswordHash string    `json:"-"`
	Approved     bool      `json:"approved"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nama     string `json:"nama"`
	NoHP     string `json:"no_hp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSales
}
