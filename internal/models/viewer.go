package models

// Role is the portal a viewer uses. It doubles as a comment's author type.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleClient:
		return true
	}
	return false
}

// CanModerate reports whether the role may approve or reject comments and
// change a board.
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Viewer is the identity a request acts as. It is resolved from the session
// and passed explicitly to every service call.
type Viewer struct {
	Role Role   `json:"viewer_type"`
	ID   string `json:"viewer_id"`
	Name string `json:"viewer_name"`
}

func (v Viewer) CanModerate() bool {
	return v.Role.CanModerate()
}
