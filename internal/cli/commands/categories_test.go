package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/detective-ambiental/detective/internal/api"
)

type fakeCategoriesClient struct {
	categories []api.Category
	err        error

	added    string
	updated  int
	renamed  string
	deleted  int
	lsCalls  int
	mutCalls int
}

func (f *fakeCategoriesClient) ListCategories(ctx context.Context) ([]api.Category, error) {
	f.lsCalls++
	return f.categories, f.err
}

func (f *fakeCategoriesClient) AddCategory(ctx context.Context, name string) error {
	f.mutCalls++
	f.added = name
	return f.err
}

func (f *fakeCategoriesClient) UpdateCategory(ctx context.Context, id int, name string) error {
	f.mutCalls++
	f.updated = id
	f.renamed = name
	return f.err
}

func (f *fakeCategoriesClient) DeleteCategory(ctx context.Context, id int) error {
	f.mutCalls++
	f.deleted = id
	return f.err
}

func TestCategoriesList_IsPublic(t *testing.T) {
	client := &fakeCategoriesClient{
		categories: []api.Category{
			{ID: 1, Category: "Residuos"},
			{ID: 2, Category: "Agua"},
		},
	}
	var out bytes.Buffer

	// No session injected: listing must not require one.
	err := runCategoriesList(
		WithCategoriesSession(&fakeSession{}),
		WithCategoriesClient(client),
		WithCategoriesOutput(&out),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	for _, want := range []string{"Residuos", "Agua", "CATEGORÍA"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestCategoriesAdd(t *testing.T) {
	client := &fakeCategoriesClient{}
	var out bytes.Buffer

	err := runCategoriesAdd("Ruido",
		WithCategoriesSession(activeSession()),
		WithCategoriesClient(client),
		WithCategoriesOutput(&out),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.added != "Ruido" {
		t.Errorf("expected category 'Ruido' created, got %q", client.added)
	}
	if !strings.Contains(out.String(), "✓ Categoría \"Ruido\" creada") {
		t.Errorf("expected confirmation message, got: %s", out.String())
	}
}

func TestCategoriesMutations_RequireConfigPermission(t *testing.T) {
	user := adminUser()
	user.PermissionConfig = false
	session := &fakeSession{user: user, authenticated: true}
	client := &fakeCategoriesClient{}
	out := &bytes.Buffer{}

	runs := []struct {
		name string
		run  func() error
	}{
		{"add", func() error {
			return runCategoriesAdd("Ruido",
				WithCategoriesSession(session), WithCategoriesClient(client), WithCategoriesOutput(out))
		}},
		{"update", func() error {
			return runCategoriesUpdate(1, "Ruido",
				WithCategoriesSession(session), WithCategoriesClient(client), WithCategoriesOutput(out))
		}},
		{"delete", func() error {
			return runCategoriesDelete(1,
				WithCategoriesSession(session), WithCategoriesClient(client), WithCategoriesOutput(out))
		}},
	}

	for _, tc := range runs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if err == nil {
				t.Fatal("expected permission error, got nil")
			}
			if !strings.Contains(err.Error(), "permisos de configuración") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	if client.mutCalls != 0 {
		t.Errorf("expected no backend mutations without config permission, got %d", client.mutCalls)
	}
}

func TestCategoriesUpdateAndDelete(t *testing.T) {
	client := &fakeCategoriesClient{}
	var out bytes.Buffer

	if err := runCategoriesUpdate(3, "Fauna",
		WithCategoriesSession(activeSession()),
		WithCategoriesClient(client),
		WithCategoriesOutput(&out),
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.updated != 3 || client.renamed != "Fauna" {
		t.Errorf("unexpected update call: id=%d name=%q", client.updated, client.renamed)
	}

	if err := runCategoriesDelete(3,
		WithCategoriesSession(activeSession()),
		WithCategoriesClient(client),
		WithCategoriesOutput(&out),
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.deleted != 3 {
		t.Errorf("expected category 3 deleted, got %d", client.deleted)
	}
}
