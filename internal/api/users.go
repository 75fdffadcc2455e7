package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListUsersAdmin returns all administrator accounts.
func (c *Client) ListUsersAdmin(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users-admin", nil, &users, true, "Error al cargar los usuarios"); err != nil {
		return nil, err
	}
	return users, nil
}

// DeactivateUserAdmin disables an administrator account.
func (c *Client) DeactivateUserAdmin(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/users-admin/%d/deactivate", id), nil, nil, true, "Error al desactivar el usuario")
}

// ReactivateUserAdmin re-enables a previously deactivated account.
func (c *Client) ReactivateUserAdmin(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/users-admin/%d/reactivate", id), nil, nil, true, "Error al activar el usuario")
}
