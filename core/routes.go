package core

import (
	"errors"
	"fmt"

	"github.com/employee-desk/v2/internal/auth"
)

const (
	RouteLogin             = "/login"
	RouteSignup            = "/signup"
	RouteAdminHome         = "/admin/home"
	RouteEmployeeDashboard = "/Employee/dashboard"
)

var ErrUnsupportedRole = errors.New("unsupported role")

// RedirectTarget returns the landing route for role. Only the two known roles have one.
func RedirectTarget(role auth.Role) (string, error) {
	switch role {
	case auth.RoleAdmin:
		return RouteAdminHome, nil
	case auth.RoleEmployee:
		return RouteEmployeeDashboard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedRole, role)
	}
}
