package dto

import "time"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
	Address         string `json:"address"`
	Contact         string `json:"contact"`
	Role            string `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserProfile is the public view of an account.
type UserProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	Status  string `json:"status"`
	Role    string `json:"role"`
}
