package commands

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/detective-ambiental/detective/internal/api"
)

// mockLoginSession records login attempts and returns a canned result.
type mockLoginSession struct {
	email    string
	password string
	user     *api.User
	err      error
	calls    int
}

func (m *mockLoginSession) Login(ctx context.Context, email, password string) (*api.User, error) {
	m.calls++
	m.email = email
	m.password = password
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func adminUser() *api.User {
	return &api.User{
		ID:               7,
		Firstname:        "Ana",
		Lastname:         "Reyes",
		Email:            "ana@uni.mx",
		UserType:         "admin",
		Confirmed:        true,
		Active:           true,
		PermissionConfig: true,
	}
}

func TestLoginCommand_Structure(t *testing.T) {
	cmd := NewLoginCmd()

	if cmd.Use != "login" {
		t.Errorf("expected Use to be 'login', got %s", cmd.Use)
	}

	for _, flag := range []string{"email", "password", "env"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag to exist", flag)
		}
	}
}

func TestLoginCommand_MissingEmail(t *testing.T) {
	os.Unsetenv("DETECTIVE_EMAIL")
	os.Unsetenv("DETECTIVE_PASSWORD")

	err := runLogin(WithLoginSession(&mockLoginSession{}))
	if err == nil {
		t.Fatal("expected error when email is missing, got nil")
	}

	expectedError := "email is required (use --email flag or DETECTIVE_EMAIL env var)"
	if err.Error() != expectedError {
		t.Errorf("expected error '%s', got '%s'", expectedError, err.Error())
	}
}

func TestLoginCommand_EnvVarCredentials(t *testing.T) {
	os.Setenv("DETECTIVE_EMAIL", "env@uni.mx")
	os.Setenv("DETECTIVE_PASSWORD", "envpass")
	defer os.Unsetenv("DETECTIVE_EMAIL")
	defer os.Unsetenv("DETECTIVE_PASSWORD")

	session := &mockLoginSession{user: adminUser()}
	var out bytes.Buffer

	if err := runLogin(WithLoginSession(session), WithLoginOutput(&out)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.email != "env@uni.mx" || session.password != "envpass" {
		t.Errorf("expected credentials from env vars, got %s / %s", session.email, session.password)
	}
}

func TestLoginCommand_Success(t *testing.T) {
	session := &mockLoginSession{user: adminUser()}
	var out bytes.Buffer

	err := runLogin(
		WithLoginSession(session),
		WithLoginOutput(&out),
		WithLoginCredentials("ana@uni.mx", "secret123"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.calls != 1 {
		t.Errorf("expected exactly 1 login call, got %d", session.calls)
	}

	output := out.String()
	if !strings.Contains(output, "✓ Sesión iniciada") {
		t.Errorf("expected success message in output, got: %s", output)
	}
	if !strings.Contains(output, "Ana Reyes") {
		t.Errorf("expected user name in output, got: %s", output)
	}
	if !strings.Contains(output, "Permisos: configuración") {
		t.Errorf("expected config permission note in output, got: %s", output)
	}
}

func TestLoginCommand_NoConfigPermissionNote(t *testing.T) {
	user := adminUser()
	user.PermissionConfig = false
	session := &mockLoginSession{user: user}
	var out bytes.Buffer

	err := runLogin(
		WithLoginSession(session),
		WithLoginOutput(&out),
		WithLoginCredentials("ana@uni.mx", "secret123"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(out.String(), "Permisos: configuración") {
		t.Error("config permission note should not be printed for users without it")
	}
}

func TestLoginCommand_NonAdminRejected(t *testing.T) {
	session := &mockLoginSession{
		err: api.NewError(api.KindUnauthorized, "Solo los administradores pueden iniciar sesión"),
	}

	err := runLogin(
		WithLoginSession(session),
		WithLoginOutput(&bytes.Buffer{}),
		WithLoginCredentials("general@uni.mx", "secret123"),
	)
	if err == nil {
		t.Fatal("expected error for non-admin login, got nil")
	}

	if api.KindOf(err) != api.KindUnauthorized {
		t.Errorf("expected KindUnauthorized, got %v", api.KindOf(err))
	}
	if err.Error() != "Solo los administradores pueden iniciar sesión" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}

func TestLoginCommand_PasswordRequiredNonInteractive(t *testing.T) {
	os.Unsetenv("DETECTIVE_PASSWORD")

	// Tests never run against a terminal stdin, so a missing password
	// should fail instead of prompting.
	err := runLogin(
		WithLoginSession(&mockLoginSession{user: adminUser()}),
		WithLoginOutput(&bytes.Buffer{}),
		WithLoginCredentials("ana@uni.mx", ""),
	)
	if err == nil {
		t.Fatal("expected error when password is missing in non-interactive mode, got nil")
	}
	if !strings.Contains(err.Error(), "password is required") {
		t.Errorf("unexpected error: %v", err)
	}
}
