package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdu/albaranes-api/internal/domain/entity"
	apphttp "github.com/dverdu/albaranes-api/internal/interfaces/http"
	pkgjwt "github.com/dverdu/albaranes-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "albaranes-test"
	testExpMin    = 60
)

// stubUserRepo devuelve siempre el mismo juego de usuarios en memoria. Las
// cuentas borradas simplemente no están en el mapa, igual que en el repo real.
type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(u *entity.User) error                     { return nil }
func (r *stubUserRepo) GetByID(id string) (*entity.User, error)         { return r.users[id], nil }
func (r *stubUserRepo) GetByEmail(string) (*entity.User, error)         { return nil, nil }
func (r *stubUserRepo) GetVerifiedByEmail(string) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) Update(*entity.User) error                       { return nil }
func (r *stubUserRepo) SoftDelete(string, time.Time) error              { return nil }
func (r *stubUserRepo) HardDelete(string) error                         { return nil }

func buildTestApp(repo *stubUserRepo) *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, repo), func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{"user_id": p.UserID, "company_id": p.CompanyID})
	})
	return app
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Token válido de una cuenta con empresa: el principal llega resuelto al handler.
func TestAuthMiddleware_ResuelvePrincipalConEmpresa(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Email: "ana@example.com", CompanyID: testCompanyID},
	}}
	app := buildTestApp(repo)

	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
}

// Cuenta sin empresa: el principal llega con company_id vacío, sin error.
func TestAuthMiddleware_PrincipalSinEmpresa(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Email: "solo@example.com"},
	}}
	app := buildTestApp(repo)

	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["company_id"])
}

// Token válido de una cuenta que ya no existe (borrada): 401.
func TestAuthMiddleware_CuentaBorrada_Retorna401(t *testing.T) {
	app := buildTestApp(&stubUserRepo{users: map[string]*entity.User{}})

	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(&stubUserRepo{users: map[string]*entity.User{}})

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_EsquemaInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&stubUserRepo{users: map[string]*entity.User{}})

	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&stubUserRepo{users: map[string]*entity.User{}})

	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*entity.User{
		testUserID: {ID: testUserID},
	}}
	app := buildTestApp(repo)

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
