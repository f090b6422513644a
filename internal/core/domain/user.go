package domain

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// User is the authenticated actor snapshot returned by the upstream API.
// The gateway never mutates it; it is re-fetched once per page load.
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Reputation int    `json:"reputation"`
}

// IsStaff reports whether the user may access moderation surfaces.
func (u *User) IsStaff() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleModerator)
}
