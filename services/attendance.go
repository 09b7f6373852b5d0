package services

import (
	"context"
	"net/http"
)

type AttendanceService struct {
	apiClient *ApiClient
}

func NewAttendanceService(apiClient *ApiClient) *AttendanceService {
	return &AttendanceService{apiClient: apiClient}
}

func (s *AttendanceService) Mark(ctx context.Context, payload any) (*Response, error) {
	return s.apiClient.sendJSON(ctx, http.MethodPost, payload, "attendance")
}

func (s *AttendanceService) List(ctx context.Context) (*Response, error) {
	return s.apiClient.get(ctx, "attendance")
}
