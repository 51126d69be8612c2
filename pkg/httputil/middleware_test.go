package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow-backend/pkg/actor"
	"github.com/caseflow/caseflow-backend/pkg/httputil"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestActorMiddleware_ValidToken(t *testing.T) {
	var got *actor.Actor
	handler := httputil.ActorMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = actor.FromContext(r.Context())
	}))

	token := signToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"name":  "Ana Souza",
		"badge": "12345",
		"role":  "perito",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, "Ana Souza", got.Name)
	assert.Equal(t, "Ana Souza (12345)", got.DisplayName())
}

func TestActorMiddleware_NoTokenProceedsWithoutActor(t *testing.T) {
	called := false
	handler := httputil.ActorMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, actor.FromContext(r.Context()))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.True(t, called)
}

func TestActorMiddleware_InvalidToken(t *testing.T) {
	handler := httputil.ActorMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for invalid tokens")
	}))

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestActorMiddleware_WrongSecret(t *testing.T) {
	handler := httputil.ActorMiddleware("other-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for tokens signed with a different secret")
	}))

	token := signToken(t, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest(http.MethodGet, "/cases", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestID(t *testing.T) {
	var got string
	handler := httputil.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = httputil.GetRequestID(r.Context())
	}))

	// A supplied header is propagated
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", got)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	// Absent, one is generated
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, got)
}
