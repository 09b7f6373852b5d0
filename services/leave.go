package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/employee-desk/v2/internal/types"
)

// LeaveService wraps the /leave endpoints.
type LeaveService struct {
	apiClient *ApiClient
}

func NewLeaveService(apiClient *ApiClient) *LeaveService {
	return &LeaveService{apiClient: apiClient}
}

// Apply submits a leave request; the payload is passed through as JSON.
func (s *LeaveService) Apply(ctx context.Context, payload any) (*Response, error) {
	return s.apiClient.sendJSON(ctx, http.MethodPost, payload, "leave", "apply")
}

func (s *LeaveService) List(ctx context.Context) (*Response, error) {
	return s.apiClient.get(ctx, "leave", "all")
}

func (s *LeaveService) ListByEmployee(ctx context.Context, employeeID string) (*Response, error) {
	employeeID, err := requireID("employee id", employeeID)
	if err != nil {
		return nil, err
	}
	return s.apiClient.get(ctx, "leave", employeeID)
}

func (s *LeaveService) UpdateStatus(ctx context.Context, leaveID, status string) (*Response, error) {
	leaveID, err := requireID("leave id", leaveID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(status) == "" {
		return nil, errors.New("api: leave status is required")
	}
	return s.apiClient.sendJSON(ctx, http.MethodPut, types.LeaveStatusUpdate{Status: status}, "leave", "update-status", leaveID)
}
