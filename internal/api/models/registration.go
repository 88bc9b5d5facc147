package models

import "time"

// Registration is a sign-up accepted by the stub API.
type Registration struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	DOB          string    `db:"dob"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// RegisterRequest is the body of POST /api/register. Only presence is checked.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	DOB      string `json:"dob" binding:"required"`
}

// RegisterResponse is returned for an accepted registration.
type RegisterResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Status string `json:"status"`
}
