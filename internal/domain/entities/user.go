package entities

import "time"

// User is an account on the backend.
type User struct {
	ID        int64      `json:"id"`
	Login     string     `json:"login"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Type      string     `json:"type"`
	AvatarURL string     `json:"avatar_url"`
	HTMLURL   string     `json:"html_url"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Raw       Raw        `json:"raw"`
}

// Organization is a group account owning repositories.
type Organization struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	Raw         Raw    `json:"raw"`
}
