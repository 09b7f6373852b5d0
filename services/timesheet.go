package services

import (
	"context"
	"encoding/json"
	"net/http"
)

// TimesheetService wraps the /timesheets endpoints. Unlike the other services it
// returns the response body rather than the response.
type TimesheetService struct {
	apiClient *ApiClient
}

func NewTimesheetService(apiClient *ApiClient) *TimesheetService {
	return &TimesheetService{apiClient: apiClient}
}

func (s *TimesheetService) Add(ctx context.Context, payload any) (json.RawMessage, error) {
	return body(s.apiClient.sendJSON(ctx, http.MethodPost, payload, "timesheets"))
}

func (s *TimesheetService) List(ctx context.Context) (json.RawMessage, error) {
	return body(s.apiClient.get(ctx, "timesheets"))
}

func (s *TimesheetService) ListByEmployee(ctx context.Context, employeeID string) (json.RawMessage, error) {
	employeeID, err := requireID("employee id", employeeID)
	if err != nil {
		return nil, err
	}
	return body(s.apiClient.get(ctx, "timesheets", employeeID))
}

func body(resp *Response, err error) (json.RawMessage, error) {
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
