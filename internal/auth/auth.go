// Package auth provides the demo user directory and the reference
// permission table. The core never enforces permissions itself; callers
// check Can before invoking store mutations.
package auth

import (
	"errors"
	"time"
)

// Roles.
const (
	RoleAdmin         = "admin"
	RoleManager       = "manager"
	RoleContractor    = "contractor"
	RoleFieldEmployee = "field_employee"
)

// User is the acting identity attached to created records.
type User struct {
	ID         string
	Email      string
	Name       string
	Role       string
	Phone      string
	Department string
}

// Permissions maps an action to the roles allowed to perform it.
// This is a reference policy table; enforcement happens at the caller.
var Permissions = map[string][]string{
	"view_dashboard":  {RoleAdmin, RoleManager, RoleContractor, RoleFieldEmployee},
	"create_project":  {RoleAdmin, RoleManager},
	"edit_project":    {RoleAdmin, RoleManager},
	"delete_project":  {RoleAdmin},
	"create_expense":  {RoleAdmin, RoleManager, RoleContractor, RoleFieldEmployee},
	"edit_expense":    {RoleAdmin, RoleManager, RoleContractor},
	"delete_expense":  {RoleAdmin, RoleManager},
	"approve_expense": {RoleAdmin, RoleManager},
	"view_reports":    {RoleAdmin, RoleManager, RoleContractor},
	"manage_users":    {RoleAdmin},
	"export_data":     {RoleAdmin, RoleManager},
}

// Can reports whether role may perform action per the reference table.
// Unknown actions are denied.
func Can(role, action string) bool {
	for _, r := range Permissions[action] {
		if r == role {
			return true
		}
	}
	return false
}

type demoUser struct {
	User
	password string
}

var demoUsers = []demoUser{
	{
		User: User{
			ID: "user-1", Email: "admin@construction.com", Name: "Admin User",
			Role: RoleAdmin, Phone: "+1-555-0101", Department: "Management",
		},
		password: "admin123",
	},
	{
		User: User{
			ID: "user-2", Email: "contractor@construction.com", Name: "John Contractor",
			Role: RoleContractor, Phone: "+1-555-0102", Department: "Field Operations",
		},
		password: "contractor123",
	},
	{
		User: User{
			ID: "user-3", Email: "field@construction.com", Name: "Jane Field",
			Role: RoleFieldEmployee, Phone: "+1-555-0103", Department: "Field Operations",
		},
		password: "field123",
	},
}

// ErrInvalidCredentials is returned when no demo user matches.
var ErrInvalidCredentials = errors.New("invalid email or password")

// LoginDelay simulates the round trip of a real auth backend. It only
// drives loading-state UI; nothing depends on it for correctness.
var LoginDelay = 500 * time.Millisecond

// Login authenticates against the demo directory.
func Login(email, password string) (User, error) {
	time.Sleep(LoginDelay)

	for _, du := range demoUsers {
		if du.Email == email && du.password == password {
			return du.User, nil
		}
	}
	return User{}, ErrInvalidCredentials
}

// ByRole returns the first demo user with the given role. Used by the
// CLI to pick an acting identity without an interactive login.
func ByRole(role string) (User, bool) {
	for _, du := range demoUsers {
		if du.Role == role {
			return du.User, true
		}
	}
	return User{}, false
}

// DefaultUser is the identity used when none is configured.
func DefaultUser() User {
	return demoUsers[0].User
}
