package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleTechLead Role = "tech_lead"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleTechLead, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanApprove reports whether the role may approve or reject employee
// ratings.
func (r Role) CanApprove() bool {
	return r == RoleTechLead || r == RoleManager || r == RoleAdmin
}

// CanManage reports whether the role may organize taxonomies, projects and
// team allocation.
func (r Role) CanManage() bool {
	return r == RoleManager || r == RoleAdmin
}

type Profile struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
