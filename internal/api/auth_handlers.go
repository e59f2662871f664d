package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/todolistapp/todolist-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Log in",
		Description: "Authenticates a user and returns a bearer token",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/auth/register",
		Summary:     "Register",
		Description: "Creates a new user account",
		Tags:        []string{"Auth"},
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "currentUser",
		Method:      http.MethodGet,
		Path:        "/api/auth/currentUser",
		Summary:     "Current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCurrentUser)
}

// === DTOs ===

// CredentialsRequest is the request body for login and registration.
type CredentialsRequest struct {
	Username string `json:"username" required:"false" doc:"Login name"`
	Password string `json:"password" required:"false" doc:"Plaintext password"`
}

// CredentialsInput wraps the credentials request for Huma.
type CredentialsInput struct {
	Body CredentialsRequest
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token" doc:"PASETO bearer token, valid for 24 hours"`
}

// LoginOutput wraps the login response for Huma.
type LoginOutput struct {
	Body LoginResponse
}

// RegisterResponse carries the new user's ID.
type RegisterResponse struct {
	ID string `json:"id" doc:"New user ID"`
}

// RegisterOutput wraps the register response for Huma.
type RegisterOutput struct {
	Body RegisterResponse
}

// CurrentUserInput is empty; identity comes from the bearer token.
type CurrentUserInput struct{}

// CurrentUserResponse contains the authenticated user's profile.
type CurrentUserResponse struct {
	ID         string    `json:"id" doc:"User ID"`
	Username   string    `json:"username" doc:"Login name"`
	CreateDate time.Time `json:"createDate" doc:"Account creation time"`
}

// CurrentUserOutput wraps the current user response for Huma.
type CurrentUserOutput struct {
	Body CurrentUserResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *CredentialsInput) (*LoginOutput, error) {
	token, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Body: LoginResponse{Token: token}}, nil
}

func (s *Server) handleRegister(ctx context.Context, input *CredentialsInput) (*RegisterOutput, error) {
	userID, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterOutput{Body: RegisterResponse{ID: userID}}, nil
}

func (s *Server) handleCurrentUser(ctx context.Context, _ *CurrentUserInput) (*CurrentUserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &CurrentUserOutput{
		Body: CurrentUserResponse{
			ID:         user.ID,
			Username:   user.Username,
			CreateDate: user.CreateDate,
		},
	}, nil
}
