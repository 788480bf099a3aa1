package models

// Role determines what an authenticated user may administer.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// AuthUser is a login identity. Email uniqueness is enforced case
// insensitively by the storage layer; PasswordHash uses the
// "pbkdf2$<iterations>$sha256$<salt>$<hash>" format produced by the auth
// package.
type AuthUser struct {
	Meta
	Email         string `json:"email"`
	PasswordHash  string `json:"passwordHash"`
	Role          Role   `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

// OwnerID is empty: auth users are not scoped to another user.
func (u *AuthUser) OwnerID() string { return "" }
