package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kopytm/home-ppr-app/internal/models"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
)

type fakeValidator struct {
	enabled bool
	claims  *models.JWTClaims
	err     error
}

func (f *fakeValidator) Enabled() bool { return f.enabled }

func (f *fakeValidator) ValidateToken(string) (*models.JWTClaims, error) {
	return f.claims, f.err
}

func jwtTestRouter(auth tokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/mutate", JWT(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestJWTNoOpWhenDisabled(t *testing.T) {
	r := jwtTestRouter(&fakeValidator{enabled: false})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mutate", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTRequiresHeaderWhenEnabled(t *testing.T) {
	r := jwtTestRouter(&fakeValidator{enabled: true})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mutate", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	r := jwtTestRouter(&fakeValidator{enabled: true})

	req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
	req.Header.Set("Authorization", "token-without-scheme")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsInvalidToken(t *testing.T) {
	r := jwtTestRouter(&fakeValidator{enabled: true, err: appErrors.ErrUnauthorized})

	req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTPassesValidToken(t *testing.T) {
	r := jwtTestRouter(&fakeValidator{enabled: true, claims: &models.JWTClaims{Username: "owner"}})

	req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
