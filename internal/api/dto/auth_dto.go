package dto

import "time"

// RegisterClientRequest payload.
type RegisterClientRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	DiscordUserID *string `json:"discord_user_id"`
}

// LoginRequest payload, shared by client and staff login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PasswordResetRequest payload.
type PasswordResetRequest struct {
	Email       string `json:"email"`
	SubjectType string `json:"subject_type"`
}

// PasswordResetConfirmRequest payload.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ClientResponse describes a client account.
type ClientResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	DiscordUserID *string   `json:"discord_user_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
