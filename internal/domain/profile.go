package domain

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// UserProfile describes the operator of this installation. There is always exactly one.
type UserProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Company string `json:"company"`
}

// DefaultUserProfile is the profile of a fresh installation.
func DefaultUserProfile() UserProfile {
	return UserProfile{Role: RoleAdmin}
}

// Identity is the user identity resolved by the authentication collaborator.
// The core reads it but never owns it.
type Identity struct {
	Name  string
	Email string
}
