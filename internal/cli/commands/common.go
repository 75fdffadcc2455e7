package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/detective-ambiental/detective/internal/api"
	"github.com/detective-ambiental/detective/internal/cli/auth"
	"github.com/detective-ambiental/detective/internal/cli/config"
	"github.com/detective-ambiental/detective/internal/cli/envselect"
	"github.com/detective-ambiental/detective/internal/guard"
	"github.com/detective-ambiental/detective/internal/logger"
	"github.com/detective-ambiental/detective/internal/session"
)

// deps bundles everything a command needs to reach the backend. Tests
// replace pieces of it through the per-command functional options.
type deps struct {
	env     *config.Environment
	client  *api.Client
	service *session.Service
	manager *session.Manager
}

// resolveEnvironment resolves the backend environment for a command.
// DETECTIVE_API_URL short-circuits detective.json for scripts and CI.
func resolveEnvironment(envAlias string) (*config.Environment, error) {
	if url := os.Getenv("DETECTIVE_API_URL"); url != "" {
		return &config.Environment{Alias: "env", URL: url}, nil
	}

	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'detective init' to create a configuration file", err)
	}

	env, err := envselect.ResolveEnvironment(cfg, envAlias)
	if err != nil {
		return nil, err
	}

	if env.URL == "" {
		return nil, fmt.Errorf("environment URL is empty. Please edit detective.json and add a valid URL")
	}

	return env, nil
}

// newDeps wires the production session stack for the given environment.
func newDeps(envAlias string) (*deps, error) {
	env, err := resolveEnvironment(envAlias)
	if err != nil {
		return nil, err
	}

	log := logger.GetLogger()
	tokens := auth.NewKeyringStore()
	client := api.New(env.URL, tokens, log)
	service := session.NewService(client, tokens)
	manager := session.NewManager(service, tokens, log)

	return &deps{
		env:     env,
		client:  client,
		service: service,
		manager: manager,
	}, nil
}

// sessionState is the slice of the session manager the guard helpers
// need; tests substitute a fake.
type sessionState interface {
	Bootstrap(ctx context.Context)
	IsAuthenticated() bool
	CurrentUser() *api.User
	HasConfigPermission() bool
}

// requireSession bootstraps the session and applies the guard rules
// before a protected command runs.
func requireSession(ctx context.Context, state sessionState) (*api.User, error) {
	state.Bootstrap(ctx)

	switch guard.Check(state.IsAuthenticated(), state.CurrentUser()) {
	case guard.RedirectLogin:
		return nil, fmt.Errorf("no has iniciado sesión. Ejecuta 'detective login'")
	case guard.RedirectInactive:
		return nil, fmt.Errorf("tu cuenta está desactivada. Pide a otro administrador que la reactive")
	}

	return state.CurrentUser(), nil
}

// requireConfigPermission additionally gates configuration commands
// (categories, administrator accounts).
func requireConfigPermission(ctx context.Context, state sessionState) (*api.User, error) {
	user, err := requireSession(ctx, state)
	if err != nil {
		return nil, err
	}
	if !state.HasConfigPermission() {
		return nil, fmt.Errorf("tu cuenta no tiene permisos de configuración")
	}
	return user, nil
}
