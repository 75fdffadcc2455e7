// Package session owns the client-side session lifecycle: credential
// exchange, token persistence, and the process-wide authenticated-user
// state the rest of the CLI consumes.
package session

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/detective-ambiental/detective/internal/api"
	"github.com/detective-ambiental/detective/internal/cli/auth"
)

// Service implements the session operations on top of the API client and
// the token store. Only the token is ever persisted; the user profile and
// its permissions are always re-derived from a fresh FetchUser call.
type Service struct {
	client   *api.Client
	tokens   auth.TokenStore
	validate *validator.Validate
}

func NewService(client *api.Client, tokens auth.TokenStore) *Service {
	return &Service{
		client:   client,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Login authenticates an administrator. The admin-type check happens
// before any token write, so a valid login by a non-admin account leaves
// no half-logged-in state behind. On success the token is stored and the
// returned user comes from a fresh FetchUser, not from the login body.
func (s *Service) Login(ctx context.Context, email, password string) (*api.User, error) {
	req := api.LoginRequest{Email: email, Password: password}
	if err := s.validate.Struct(&req); err != nil {
		return nil, api.NewError(api.KindValidation, "Correo o contraseña inválidos")
	}

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if resp.UserType != api.UserTypeAdmin {
		return nil, api.NewError(api.KindUnauthorized, "Solo los administradores pueden iniciar sesión")
	}

	if err := s.tokens.Set(resp.Token); err != nil {
		return nil, fmt.Errorf("failed to save session token: %w", err)
	}

	return s.FetchUser(ctx)
}

// FetchUser returns the current user profile. It fails when no token is
// stored and never clears the token on failure; the session manager
// decides whether a failure means the token is dead.
func (s *Service) FetchUser(ctx context.Context) (*api.User, error) {
	return s.client.FetchUser(ctx)
}

// Logout unconditionally drops the token. It never fails; tokens are
// self-expiring server-side, so no revocation call is made.
func (s *Service) Logout() {
	_ = s.tokens.Clear()
}

// UpdatePassword changes the current user's password.
func (s *Service) UpdatePassword(ctx context.Context, current, newPassword string) error {
	req := api.UpdatePasswordRequest{CurrentPassword: current, NewPassword: newPassword}
	if err := s.validate.Struct(&req); err != nil {
		return api.NewError(api.KindValidation, "La nueva contraseña debe tener al menos 8 caracteres")
	}
	return s.client.UpdatePassword(ctx, req)
}

// CreateUserAdmin registers a new administrator account.
func (s *Service) CreateUserAdmin(ctx context.Context, req api.CreateUserAdminRequest) error {
	if err := s.validate.Struct(&req); err != nil {
		return api.NewError(api.KindValidation, "Datos del usuario administrador inválidos")
	}
	return s.client.CreateUserAdmin(ctx, req)
}

// ValidateAccount confirms an account with its OTP code.
func (s *Service) ValidateAccount(ctx context.Context, otp string) error {
	return s.client.ValidateAccount(ctx, otp)
}

// ForgotPassword requests a password-reset email.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	return s.client.ForgotPassword(ctx, email)
}

// ResetPassword validates the reset token and then sets the new password,
// mirroring the reset form's two-step flow.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if err := s.client.ValidateToken(ctx, token); err != nil {
		return err
	}
	return s.client.ResetPassword(ctx, token, password)
}

// LoadUserAdminsFile reads a YAML file with administrator accounts for
// bulk creation:
//
//	- firstname: Ana
//	  lastname: Torres
//	  email: ana@uni.mx
//	  password: "12345678"
func LoadUserAdminsFile(path string) ([]api.CreateUserAdminRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var users []api.CreateUserAdminRequest
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users file: %w", err)
	}

	return users, nil
}
