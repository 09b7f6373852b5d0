package services

import (
	"context"
	"net/http"

	"github.com/employee-desk/v2/internal/types"
)

// EmployeeService wraps the /employees endpoints.
type EmployeeService struct {
	apiClient *ApiClient
}

func NewEmployeeService(apiClient *ApiClient) *EmployeeService {
	return &EmployeeService{apiClient: apiClient}
}

func (s *EmployeeService) List(ctx context.Context) (*Response, error) {
	return s.apiClient.get(ctx, "employees")
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*Response, error) {
	id, err := requireID("employee id", id)
	if err != nil {
		return nil, err
	}
	return s.apiClient.get(ctx, "employees", id)
}

// Update replaces an employee record. The form may include a new profile picture.
func (s *EmployeeService) Update(ctx context.Context, id string, form Form) (*Response, error) {
	id, err := requireID("employee id", id)
	if err != nil {
		return nil, err
	}
	return s.apiClient.sendForm(ctx, http.MethodPut, form, "employees", id)
}

func (s *EmployeeService) Delete(ctx context.Context, id string) (*Response, error) {
	id, err := requireID("employee id", id)
	if err != nil {
		return nil, err
	}
	return s.apiClient.delete(ctx, "employees", id)
}

// SetStatus activates or deactivates an employee account.
func (s *EmployeeService) SetStatus(ctx context.Context, id string, isActive bool) (*Response, error) {
	id, err := requireID("employee id", id)
	if err != nil {
		return nil, err
	}
	return s.apiClient.sendJSON(ctx, http.MethodPatch, types.EmployeeStatusUpdate{IsActive: isActive}, "employees", id, "status")
}
