package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role enum
type Role string

const (
	RoleSecretary     Role = "secretary"
	RoleDriver        Role = "driver"
	RoleAssistant     Role = "assistant"
	RoleAdministrator Role = "administrator"
	RoleOwner         Role = "owner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSecretary, RoleDriver, RoleAssistant, RoleAdministrator, RoleOwner:
		return true
	}
	return false
}

// StaffMember - Funeral home employee
type StaffMember struct {
	ID         string
	FullName   string
	Role       Role
	BaseSalary decimal.Decimal
	BranchID   string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s StaffMember) IsSecretary() bool { return s.Role == RoleSecretary }
func (s StaffMember) IsDriver() bool    { return s.Role == RoleDriver }
func (s StaffMember) IsAssistant() bool { return s.Role == RoleAssistant }
