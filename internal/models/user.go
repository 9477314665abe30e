package models

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	IsAdmin      bool   `json:"isAdmin"`
}

// Public returns a copy safe to hand out to clients.
func (u User) Public() *User {
	u.PasswordHash = ""
	return &u
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User   *User   `json:"user,omitempty"`
	Notice *Notice `json:"notice,omitempty"`
	// Redirect is the page the client should move to after the notice delay.
	Redirect *Redirect `json:"redirect,omitempty"`
}

type ScopeResponse struct {
	Scope string `json:"scope"`
	Token string `json:"token"`
}
