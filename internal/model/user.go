package model

// Role distinguishes regular users from admins. No finer-grained
// authorization exists.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ProtectedUsername is the reserved admin account. It can never be deleted
// through the management surface, regardless of who asks.
const ProtectedUsername = "admin"

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// UserRecord is one entry in the credential file, keyed by username.
// PasswordHash is a salted bcrypt digest, never the plaintext.
type UserRecord struct {
	Email        string `yaml:"email" json:"email"`
	Name         string `yaml:"name" json:"name"`
	PasswordHash string `yaml:"password" json:"-"`
	Role         Role   `yaml:"role" json:"role"`
}

// UserView is the admin-panel representation of a user. It carries the
// username from the map key and never the hash.
type UserView struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}
