package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymmate/fitness-server/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, userID string, role domain.Role, expiresIn time.Duration) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    "gymmate",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(roles ...domain.Role) *gin.Engine {
	router := gin.New()
	group := router.Group("/", AuthMiddleware(testSecret))
	if len(roles) > 0 {
		group.Use(RoleMiddleware(roles...))
	}
	group.GET("/secure", func(c *gin.Context) {
		userID, err := currentUserID(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	token := signToken(t, testSecret, userID, domain.RoleUser, time.Hour)

	rec := doRequest(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec := doRequest(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	rec := doRequest(protectedRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", primitive.NewObjectID().Hex(), domain.RoleUser, time.Hour)
	rec := doRequest(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), domain.RoleUser, -time.Hour)
	rec := doRequest(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestRoleMiddleware(t *testing.T) {
	router := protectedRouter(domain.RoleCoach)

	memberToken := signToken(t, testSecret, primitive.NewObjectID().Hex(), domain.RoleUser, time.Hour)
	rec := doRequest(router, "Bearer "+memberToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	coachToken := signToken(t, testSecret, primitive.NewObjectID().Hex(), domain.RoleCoach, time.Hour)
	rec = doRequest(router, "Bearer "+coachToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}
