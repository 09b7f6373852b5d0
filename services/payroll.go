package services

import (
	"context"
	"net/http"
)

type PayrollService struct {
	apiClient *ApiClient
}

func NewPayrollService(apiClient *ApiClient) *PayrollService {
	return &PayrollService{apiClient: apiClient}
}

func (s *PayrollService) List(ctx context.Context) (*Response, error) {
	return s.apiClient.get(ctx, "payrolls")
}

func (s *PayrollService) Create(ctx context.Context, payload any) (*Response, error) {
	return s.apiClient.sendJSON(ctx, http.MethodPost, payload, "payrolls")
}
