package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/timetable-wizard-api/internal/models"
	appErrors "github.com/noah-isme/timetable-wizard-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
	err    error
	got    string
}

func (s *stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	s.got = token
	return s.claims, s.err
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/", handlers...)
	return r
}

func request(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWT(t *testing.T) {
	validator := &stubValidator{claims: &models.JWTClaims{UserID: "u-1", Role: models.RoleAdmin}}
	r := newRouter(JWT(validator))

	assert.Equal(t, http.StatusUnauthorized, request(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer ").Code)

	assert.Equal(t, http.StatusOK, request(r, "bearer tok").Code)
	assert.Equal(t, "tok", validator.got)

	validator.err = appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer tok").Code)
}

func TestRequireRoles(t *testing.T) {
	withRole := func(role models.UserRole) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set(ContextUserKey, &models.JWTClaims{UserID: "u", Role: role})
		}
	}

	cases := []struct {
		name   string
		role   models.UserRole
		status int
	}{
		{name: "admin allowed", role: models.RoleAdmin, status: http.StatusOK},
		{name: "superadmin always allowed", role: models.RoleSuperAdmin, status: http.StatusOK},
		{name: "teacher forbidden", role: models.RoleTeacher, status: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(withRole(tc.role), RequireRoles(models.RoleAdmin))
			assert.Equal(t, tc.status, request(r, "").Code)
		})
	}

	r := newRouter(RequireRoles(models.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, request(r, "").Code)
}

func TestMetricsNilService(t *testing.T) {
	r := newRouter(Metrics(nil))
	assert.Equal(t, http.StatusOK, request(r, "").Code)
}
