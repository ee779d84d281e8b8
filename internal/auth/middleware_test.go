package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func setupProtectedRoute() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequireListener(testSecret))
	router.GET("/protected", func(c *gin.Context) {
		id, ok := ListenerID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "listener id not set"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"listener_id": id.Hex()})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireListener_ValidToken(t *testing.T) {
	router := setupProtectedRoute()
	listenerID := primitive.NewObjectID()

	token := signToken(t, testSecret, listenerID.Hex(), time.Now().Add(time.Hour))
	recorder := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]string
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, listenerID.Hex(), response["listener_id"])
}

func TestRequireListener_MissingHeader(t *testing.T) {
	router := setupProtectedRoute()
	recorder := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireListener_WrongScheme(t *testing.T) {
	router := setupProtectedRoute()
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), time.Now().Add(time.Hour))
	recorder := doRequest(router, "Basic "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireListener_WrongSignature(t *testing.T) {
	router := setupProtectedRoute()
	token := signToken(t, "other-secret", primitive.NewObjectID().Hex(), time.Now().Add(time.Hour))
	recorder := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var response map[string]string
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "Invalid token signature", response["error"])
}

func TestRequireListener_ExpiredToken(t *testing.T) {
	router := setupProtectedRoute()
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), time.Now().Add(-time.Hour))
	recorder := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var response map[string]string
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "Token has expired", response["error"])
}

func TestRequireListener_MalformedSubject(t *testing.T) {
	router := setupProtectedRoute()
	token := signToken(t, testSecret, "not-an-object-id", time.Now().Add(time.Hour))
	recorder := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestListenerID_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := ListenerID(c)
	assert.False(t, ok)
}
