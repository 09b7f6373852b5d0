package services

// Services groups the resource clients that share one ApiClient and therefore one
// token source.
type Services struct {
	Auth       *AuthService
	Employees  *EmployeeService
	Leave      *LeaveService
	Attendance *AttendanceService
	Timesheets *TimesheetService
	Payrolls   *PayrollService
}

func New(apiClient *ApiClient) *Services {
	return &Services{
		Auth:       NewAuthService(apiClient),
		Employees:  NewEmployeeService(apiClient),
		Leave:      NewLeaveService(apiClient),
		Attendance: NewAttendanceService(apiClient),
		Timesheets: NewTimesheetService(apiClient),
		Payrolls:   NewPayrollService(apiClient),
	}
}
