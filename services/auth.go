package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/employee-desk/v2/internal/auth"
	"github.com/employee-desk/v2/internal/types"
)

// AuthService implements auth.Service against the backend.
type AuthService struct {
	apiClient *ApiClient
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(apiClient *ApiClient) *AuthService {
	return &AuthService{apiClient: apiClient}
}

// Login posts the credentials to /login and returns the user and token the backend issued.
func (s *AuthService) Login(ctx context.Context, creds auth.Credentials) (*auth.User, string, error) {
	resp, err := s.apiClient.sendJSON(ctx, http.MethodPost, creds, "login")
	if err != nil {
		return nil, "", err
	}

	var payload types.LoginResponse
	if err := resp.Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("failed to parse login response: %w", err)
	}
	if payload.Token == "" || payload.User == nil {
		return nil, "", errors.New("login response is missing the user or token")
	}

	return payload.User, payload.Token, nil
}

// Register submits the employee signup form. It is multipart because it may carry a photo.
func (s *AuthService) Register(ctx context.Context, form Form) (*Response, error) {
	return s.apiClient.sendForm(ctx, http.MethodPost, form, "signup")
}

// AdminSignup creates an administrator account.
func (s *AuthService) AdminSignup(ctx context.Context, req types.AdminSignupRequest) (*Response, error) {
	return s.apiClient.sendJSON(ctx, http.MethodPost, req, "adminSignup")
}
