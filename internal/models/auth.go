package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the roles carried in access tokens.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleTeacher    UserRole = "TEACHER"
)

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID string
	Role   UserRole
}

// CanAccess reports whether the actor may use a resource owned by ownerID.
// ADMIN and SUPERADMIN reach every resource; ownerless resources are shared.
func (a Actor) CanAccess(ownerID string) bool {
	if ownerID == "" || a.UserID == ownerID {
		return true
	}
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}
