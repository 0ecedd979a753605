package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ── Usage Gate ─────────────────────────────────────────

// UsageDecision is the result of the pre-stream usage check. Tier and
// Remaining are included on denial so the caller can offer an upgrade path.
type UsageDecision struct {
	Allowed   bool   `json:"allowed"`
	Tier      string `json:"tier,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
}
