package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

const (
	testSecret = "test-secret"
	testIssuer = "smc-auth"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(userID int64, role domain.Role) Claims {
	return Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r.Context())
	role, _ := GetUserRole(r.Context())
	w.Header().Set("X-User-ID", strconv.FormatInt(userID, 10))
	w.Header().Set("X-User-Role", string(role))
	w.WriteHeader(http.StatusOK)
}

func TestAuth_BearerHeader(t *testing.T) {
	auth := NewAuthenticator(testSecret, testIssuer, logger.NewNop())
	token := signToken(t, testSecret, validClaims(42, domain.RoleDoctor))

	req := httptest.NewRequest(http.MethodGet, "/doctor/requests", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	auth.Auth(http.HandlerFunc(echoUser)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("X-User-ID"))
	assert.Equal(t, "doctor", rec.Header().Get("X-User-Role"))
}

func TestAuth_QueryToken(t *testing.T) {
	auth := NewAuthenticator(testSecret, "", logger.NewNop())
	token := signToken(t, testSecret, validClaims(7, domain.RolePatient))

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	rec := httptest.NewRecorder()

	auth.Auth(http.HandlerFunc(echoUser)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Header().Get("X-User-ID"))
}

func TestAuth_Rejects(t *testing.T) {
	expired := validClaims(1, domain.RolePatient)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExpiry := validClaims(1, domain.RolePatient)
	noExpiry.ExpiresAt = nil

	wrongIssuer := validClaims(1, domain.RolePatient)
	wrongIssuer.Issuer = "someone-else"

	badSubject := validClaims(1, domain.RolePatient)
	badSubject.Subject = "alice"

	badRole := validClaims(1, domain.RolePatient)
	badRole.Role = "admin"

	tests := []struct {
		name   string
		header string
	}{
		{name: "без токена", header: ""},
		{name: "не Bearer", header: "Basic abc"},
		{name: "чужая подпись", header: "Bearer " + signToken(t, "other-secret", validClaims(1, domain.RolePatient))},
		{name: "истёк", header: "Bearer " + signToken(t, testSecret, expired)},
		{name: "без exp", header: "Bearer " + signToken(t, testSecret, noExpiry)},
		{name: "чужой issuer", header: "Bearer " + signToken(t, testSecret, wrongIssuer)},
		{name: "sub не число", header: "Bearer " + signToken(t, testSecret, badSubject)},
		{name: "неизвестная роль", header: "Bearer " + signToken(t, testSecret, badRole)},
		{name: "мусор", header: "Bearer not.a.token"},
	}

	auth := NewAuthenticator(testSecret, testIssuer, logger.NewNop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			called := false

			auth.Auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			})).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestAuth_RejectsNoneAlgorithm(t *testing.T) {
	auth := NewAuthenticator(testSecret, "", logger.NewNop())

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims(1, domain.RoleDoctor)).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = auth.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(domain.RoleDoctor)(http.HandlerFunc(echoUser))

	t.Run("подходящая роль", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/appointment/accept", nil)
		req = req.WithContext(WithUser(req.Context(), 3, domain.RoleDoctor))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("чужая роль", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/appointment/accept", nil)
		req = req.WithContext(WithUser(req.Context(), 3, domain.RolePatient))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("без аутентификации", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/appointment/accept", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
