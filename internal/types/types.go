package types

import (
	"encoding/json"

	"github.com/employee-desk/v2/internal/auth"
)

// LoginResponse is the body returned by POST /login.
type LoginResponse struct {
	Token   string     `json:"token"`
	User    *auth.User `json:"user"`
	Message string     `json:"message,omitempty"`
}

// AdminSignupRequest is the JSON body of POST /adminSignup.
type AdminSignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// EmployeeStatusUpdate is the body of PATCH /employees/:id/status.
type EmployeeStatusUpdate struct {
	IsActive bool `json:"isActive"`
}

// LeaveStatus values understood by the backend.
const (
	LeaveStatusPending  = "Pending"
	LeaveStatusApproved = "Approved"
	LeaveStatusRejected = "Rejected"
)

// LeaveStatusUpdate is the body of PUT /leave/update-status/:leaveId.
type LeaveStatusUpdate struct {
	Status string `json:"status"`
}

// ErrorPayload is the shape of error bodies sent by the backend. Either field may be set.
type ErrorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Record is a server-owned resource (employee, leave, attendance, timesheet, payroll)
// passed through untouched.
type Record = json.RawMessage
