package auth

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role of an authenticated caller. Checkout and signup collaborators call as
// service; operators may trigger maintenance.
type Role string

const (
	RoleService  Role = "service"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

var roleHierarchy = map[Role]int{
	RoleService:  1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleHierarchy[r]
	return ok
}

// AtLeast reports whether r ranks at or above required.
func (r Role) AtLeast(required Role) bool {
	level, ok := roleHierarchy[r]
	minLevel, minOK := roleHierarchy[required]
	return ok && minOK && level >= minLevel
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
