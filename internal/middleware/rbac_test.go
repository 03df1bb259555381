package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/fims-api/internal/models"
	"github.com/noah-isme/fims-api/internal/service"
)

type noUsers struct{}

func (noUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, nil
}

func issueToken(t *testing.T, claims *models.JWTClaims) string {
	t.Helper()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newProtectedRouter(t *testing.T, roles ...models.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	authSvc := service.NewAuthService(noUsers{}, nil, nil, service.AuthServiceConfig{Secret: "test-secret", Expiration: time.Hour})

	r := gin.New()
	r.GET("/guarded", JWT(authSvc), RequireRoles(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	r := newProtectedRouter(t, models.RoleAdmin)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["message"])
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	r := newProtectedRouter(t, models.RoleAdmin)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_TokenWithoutIdentity(t *testing.T) {
	r := newProtectedRouter(t, models.RoleAdmin)

	token := issueToken(t, &models.JWTClaims{Role: models.RoleAdmin})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRBAC_AllowsNamedRole(t *testing.T) {
	r := newProtectedRouter(t, models.RoleAdmin, models.RoleSupervisor)

	token := issueToken(t, &models.JWTClaims{UserID: 2, Role: models.RoleSupervisor})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRBAC_RejectsOtherRole(t *testing.T) {
	r := newProtectedRouter(t, models.RoleAdmin)

	token := issueToken(t, &models.JWTClaims{UserID: 3, Role: models.RoleInspector})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}
