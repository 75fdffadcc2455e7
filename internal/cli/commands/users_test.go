package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/detective-ambiental/detective/internal/api"
)

type fakeUsersClient struct {
	users []api.User
	err   error

	deactivated []int
	reactivated []int
}

func (f *fakeUsersClient) ListUsersAdmin(ctx context.Context) ([]api.User, error) {
	return f.users, f.err
}

func (f *fakeUsersClient) DeactivateUserAdmin(ctx context.Context, id int) error {
	f.deactivated = append(f.deactivated, id)
	return f.err
}

func (f *fakeUsersClient) ReactivateUserAdmin(ctx context.Context, id int) error {
	f.reactivated = append(f.reactivated, id)
	return f.err
}

type fakeUserCreator struct {
	created []api.CreateUserAdminRequest
	err     error
}

func (f *fakeUserCreator) CreateUserAdmin(ctx context.Context, req api.CreateUserAdminRequest) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, req)
	return nil
}

func TestUsersList(t *testing.T) {
	client := &fakeUsersClient{
		users: []api.User{
			*adminUser(),
			{ID: 8, Firstname: "Luis", Lastname: "Mora", Email: "luis@uni.mx", UserType: "admin", Confirmed: false, Active: true},
		},
	}
	var out bytes.Buffer

	err := runUsersList(
		WithUsersSession(activeSession()),
		WithUsersClient(client),
		WithUsersCreator(&fakeUserCreator{}),
		WithUsersOutput(&out),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	for _, want := range []string{"Ana Reyes", "luis@uni.mx", "CONFIRMADO"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestUsersList_RequiresConfigPermission(t *testing.T) {
	user := adminUser()
	user.PermissionConfig = false

	err := runUsersList(
		WithUsersSession(&fakeSession{user: user, authenticated: true}),
		WithUsersClient(&fakeUsersClient{}),
		WithUsersCreator(&fakeUserCreator{}),
		WithUsersOutput(&bytes.Buffer{}),
	)
	if err == nil {
		t.Fatal("expected permission error, got nil")
	}
	if !strings.Contains(err.Error(), "permisos de configuración") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUsersCreate(t *testing.T) {
	creator := &fakeUserCreator{}
	var out bytes.Buffer

	req := api.CreateUserAdminRequest{
		Firstname: "Luis",
		Lastname:  "Mora",
		Email:     "luis@uni.mx",
		Password:  "secreto123",
	}

	err := runUsersCreate(req,
		WithUsersSession(activeSession()),
		WithUsersClient(&fakeUsersClient{}),
		WithUsersCreator(creator),
		WithUsersOutput(&out),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(creator.created) != 1 || creator.created[0].Email != "luis@uni.mx" {
		t.Errorf("unexpected creations: %+v", creator.created)
	}
	if !strings.Contains(out.String(), "validar su correo electrónico") {
		t.Errorf("expected email-validation reminder, got: %s", out.String())
	}
}

func TestUsersCreateFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "admins.yaml")
	content := `- firstname: Luis
  lastname: Mora
  email: luis@uni.mx
  password: secreto123
- firstname: Sofía
  lastname: Vega
  email: sofia@uni.mx
  password: secreto456
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	creator := &fakeUserCreator{}
	var out bytes.Buffer

	err := runUsersCreateFromFile(path,
		WithUsersSession(activeSession()),
		WithUsersClient(&fakeUsersClient{}),
		WithUsersCreator(creator),
		WithUsersOutput(&out),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(creator.created) != 2 {
		t.Fatalf("expected 2 accounts created, got %d", len(creator.created))
	}
	if creator.created[1].Email != "sofia@uni.mx" {
		t.Errorf("unexpected second account: %+v", creator.created[1])
	}
}

func TestUsersCreateFromFile_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "admins.yaml")
	if err := os.WriteFile(path, []byte("[]\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	err := runUsersCreateFromFile(path,
		WithUsersSession(activeSession()),
		WithUsersClient(&fakeUsersClient{}),
		WithUsersCreator(&fakeUserCreator{}),
		WithUsersOutput(&bytes.Buffer{}),
	)
	if err == nil {
		t.Fatal("expected error for empty account file, got nil")
	}
}

func TestUsersDeactivateReactivate(t *testing.T) {
	client := &fakeUsersClient{}
	var out bytes.Buffer

	if err := runUsersSetActive(8, false,
		WithUsersSession(activeSession()),
		WithUsersClient(client),
		WithUsersCreator(&fakeUserCreator{}),
		WithUsersOutput(&out),
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.deactivated) != 1 || client.deactivated[0] != 8 {
		t.Errorf("unexpected deactivations: %v", client.deactivated)
	}
	if !strings.Contains(out.String(), "✓ Usuario 8 desactivado") {
		t.Errorf("expected confirmation message, got: %s", out.String())
	}

	if err := runUsersSetActive(8, true,
		WithUsersSession(activeSession()),
		WithUsersClient(client),
		WithUsersCreator(&fakeUserCreator{}),
		WithUsersOutput(&out),
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.reactivated) != 1 || client.reactivated[0] != 8 {
		t.Errorf("unexpected reactivations: %v", client.reactivated)
	}
}
