package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListCategories returns all incident categories. The endpoint is public;
// the mobile app uses it too.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories, false, "Error al cargar las categorías"); err != nil {
		return nil, err
	}
	return categories, nil
}

// AddCategory creates a new incident category.
func (c *Client) AddCategory(ctx context.Context, name string) error {
	body := map[string]string{"category": name}
	return c.do(ctx, http.MethodPost, "/categories", body, nil, true, "Error al crear la categoría")
}

// UpdateCategory renames an existing category.
func (c *Client) UpdateCategory(ctx context.Context, id int, name string) error {
	body := map[string]string{"category": name}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), body, nil, true, "Error al actualizar la categoría")
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil, true, "Error al eliminar la categoría")
}
