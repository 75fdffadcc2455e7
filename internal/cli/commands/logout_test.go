package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/detective-ambiental/detective/internal/cli/auth"
)

func TestLogout_ClearsToken(t *testing.T) {
	tokens := auth.NewMemoryStore()
	if err := tokens.Set("token-abc"); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}

	var out bytes.Buffer
	if err := runLogout(tokens, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tokens.IsAuthenticated() {
		t.Error("expected token to be cleared")
	}
	if !strings.Contains(out.String(), "✓ Sesión cerrada") {
		t.Errorf("expected confirmation message, got: %s", out.String())
	}
}

func TestLogout_WithoutSession(t *testing.T) {
	// Logging out while anonymous is a no-op, never an error.
	var out bytes.Buffer
	if err := runLogout(auth.NewMemoryStore(), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Sesión cerrada") {
		t.Errorf("expected confirmation message, got: %s", out.String())
	}
}
