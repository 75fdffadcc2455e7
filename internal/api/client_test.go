package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detective-ambiental/detective/internal/cli/auth"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *auth.MemoryStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := auth.NewMemoryStore()
	return New(server.URL, tokens, zerolog.Nop()), tokens
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string

	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}))
	require.NoError(t, tokens.Set("abc"))

	_, err := client.ListReports(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Len(t, gotRequestID, 26, "request id should be a ULID")
}

func TestClient_FetchUserWithoutToken(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.FetchUser(context.Background())
	require.Error(t, err)

	assert.Equal(t, KindUnauthenticated, KindOf(err))
	assert.Equal(t, 0, requests, "no request should be issued without a token")
}

func TestClient_ServerErrorMessagePassthrough(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Credenciales incorrectas"}`))
	}))

	_, err := client.Login(context.Background(), "ana@uni.mx", "secret")
	require.Error(t, err)

	assert.Equal(t, "Credenciales incorrectas", err.Error())
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestClient_FallbackMessageWhenBodyHasNoErrorShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))

	_, err := client.Login(context.Background(), "ana@uni.mx", "secret")
	require.Error(t, err)

	assert.Equal(t, "Error en el login", err.Error())
	assert.Equal(t, KindUnknown, KindOf(err))
}

func TestClient_ValidationKindForBadRequest(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "folio inválido"}`))
	}))
	require.NoError(t, tokens.Set("abc"))

	err := client.UpdateReport(context.Background(), "F-001", UpdateReportRequest{IDCategory: 1, IDStatus: 2})
	require.Error(t, err)

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "folio inválido", err.Error())
}

func TestClient_TransportFailure(t *testing.T) {
	tokens := auth.NewMemoryStore()
	// Closed port: the request never reaches a server.
	client := New("http://127.0.0.1:1", tokens, zerolog.Nop())

	_, err := client.ListCategories(context.Background())
	require.Error(t, err)

	assert.Equal(t, KindTransport, KindOf(err))
	assert.Equal(t, "Error al cargar las categorías", err.Error())
}

func TestClient_LoginDecodesResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"token": "abc", "user_type": "admin"}`))
	}))

	resp, err := client.Login(context.Background(), "ana@uni.mx", "secret")
	require.NoError(t, err)

	assert.Equal(t, "abc", resp.Token)
	assert.Equal(t, UserTypeAdmin, resp.UserType)
}

func TestClient_FetchUserRejectsEmptyBody(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	require.NoError(t, tokens.Set("abc"))

	_, err := client.FetchUser(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Error al obtener el usuario", err.Error())
}
