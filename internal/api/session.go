package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token. It does not store the
// token; the session service owns that decision.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp, false, "Error en el login"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchUser returns the profile of the current session. It fails with
// KindUnauthenticated when no token is stored and never clears the token
// itself; invalid-token handling belongs to the caller.
func (c *Client) FetchUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/user", nil, &user, true, "Error al obtener el usuario"); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, NewError(KindUnknown, "Error al obtener el usuario")
	}
	return &user, nil
}

// UpdatePassword changes the password of the current session.
func (c *Client) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/update-password", req, nil, true, "Error al cambiar contraseña")
}

// CreateUserAdmin registers a new administrator account. The new account
// still has to confirm its email before it can log in.
func (c *Client) CreateUserAdmin(ctx context.Context, req CreateUserAdminRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/create-account-admin", req, nil, true, "Error al crear el usuario administrador")
}

// ValidateAccount confirms a freshly created account with its OTP code.
func (c *Client) ValidateAccount(ctx context.Context, otp string) error {
	body := map[string]string{"token": otp}
	return c.do(ctx, http.MethodPost, "/auth/confirm-account", body, nil, false, "El código ingresado no es válido")
}

// ForgotPassword requests a password-reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", body, nil, false, "Error al enviar el correo de recuperación")
}

// ValidateToken checks that a password-reset token is still valid. The
// token travels in the body, independent of any session token.
func (c *Client) ValidateToken(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return c.do(ctx, http.MethodPost, "/auth/validate-token", body, nil, false, "El enlace de recuperación no es válido")
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"password": password}
	return c.do(ctx, http.MethodPost, "/auth/reset-password/"+token, body, nil, false, "Error al cambiar contraseña")
}
