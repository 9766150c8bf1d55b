package entity

// Role is carried in session tokens. It is not enforced by any route.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) String() string { return string(r) }
