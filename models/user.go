// User accounts and roles. Users are stored as schema.org Person documents;
// secrets (password/API-key/refresh-token hashes) never leave the storage
// layer through UserResponse.
package models

import "time"

// Role names a permission level.
type Role = string

const (
	// RoleAdmin manages users and everything below.
	RoleAdmin Role = "admin"
	// RoleInstructor deploys scenarios, pushes scripts, manages lab content.
	RoleInstructor Role = "instructor"
	// RoleStudent reads scenarios, deployments and reports.
	RoleStudent Role = "student"
)

// User is a stored account.
type User struct {
	Context string `json:"@context" jsonld:"@context"`
	Type    string `json:"@type" jsonld:"@type"`
	ID      string `json:"@id" jsonld:"@id" couchdb:"_id"`
	Rev     string `json:"_rev,omitempty" couchdb:"_rev"`

	Username string `json:"name" jsonld:"name" couchdb:"required,index" validate:"required,min=3"`
	Email    string `json:"email,omitempty" jsonld:"email" validate:"omitempty,email"`

	// PasswordHash is a bcrypt hash, never serialized to API responses.
	PasswordHash string `json:"passwordHash,omitempty"`

	Roles   []Role `json:"roles"`
	Enabled bool   `json:"enabled"`

	// APIKeys are bcrypt hashes of issued keys, prefix-labelled for the UI.
	APIKeys []APIKey `json:"apiKeys,omitempty"`

	// RefreshTokenHash is the bcrypt hash of the active refresh token.
	RefreshTokenHash string `json:"refreshTokenHash,omitempty"`

	CreatedAt   time.Time  `json:"dateCreated" couchdb:"index"`
	UpdatedAt   time.Time  `json:"dateModified"`
	LastLoginAt *time.Time `json:"lastLogin,omitempty"`
}

// APIKey is one issued key; only the hash and a display prefix are stored.
type APIKey struct {
	Prefix    string    `json:"prefix"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser creates an enabled user document. The password hash is set by the
// auth layer.
func NewUser(username, email string, roles []Role) *User {
	now := time.Now().UTC()
	if len(roles) == 0 {
		roles = []Role{RoleStudent}
	}
	return &User{
		Context:   "https://schema.org",
		Type:      "Person",
		ID:        GenerateID("user"),
		Username:  username,
		Email:     email,
		Roles:     roles,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasRole reports whether the user carries the role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanWrite reports whether the user may mutate lab content.
func (u *User) CanWrite() bool {
	return u.HasRole(RoleAdmin) || u.HasRole(RoleInstructor)
}

// UserResponse is the secret-free API projection of a user.
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	Roles       []Role     `json:"roles"`
	Enabled     bool       `json:"enabled"`
	APIKeyCount int        `json:"api_key_count"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login,omitempty"`
}

// Response converts a user document to its API projection.
func (u *User) Response() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Roles:       u.Roles,
		Enabled:     u.Enabled,
		APIKeyCount: len(u.APIKeys),
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
	Roles    []Role `json:"roles,omitempty"`
}

// UpdateUserRequest modifies an account; nil fields are left untouched.
type UpdateUserRequest struct {
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Roles   []Role  `json:"roles,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// ChangePasswordRequest rotates the caller's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
