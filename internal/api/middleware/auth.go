package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
	msgWrongRole    = "действие недоступно для вашей роли"
)

var (
	// ErrMissingToken токен не передан
	ErrMissingToken = errors.New("auth: missing token")

	// ErrInvalidToken токен не прошёл проверку
	ErrInvalidToken = errors.New("auth: invalid token")
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// Claims содержимое JWT: sub: ID пользователя, role: patient или doctor
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Authenticator проверяет JWT (HS256), выпущенные подсистемой авторизации
type Authenticator struct {
	secret []byte
	issuer string
	logger Logger
}

// NewAuthenticator создает middleware аутентификации
// issuer можно оставить пустым, тогда поле iss не проверяется
func NewAuthenticator(secret, issuer string, logger Logger) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		issuer: issuer,
		logger: logger,
	}
}

// Auth требует валидный токен и кладёт ID и роль пользователя в контекст
// Токен берётся из заголовка Authorization: Bearer <token> или из query параметра token
// (браузерный WebSocket не умеет передавать заголовки)
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := extractToken(r)
		if err != nil {
			a.logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		userID, role, err := a.ParseToken(raw)
		if err != nil {
			a.logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID, role)))
	})
}

// ParseToken проверяет подпись и срок действия токена и возвращает ID и роль пользователя
func (a *Authenticator) ParseToken(raw string) (int64, domain.Role, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		options = append(options, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, options...)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", fmt.Errorf("%w: subject %q is not a user id", ErrInvalidToken, claims.Subject)
	}

	role := domain.Role(claims.Role)
	if role != domain.RolePatient && role != domain.RoleDoctor {
		return 0, "", fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return userID, role, nil
}

// RequireRole пропускает только пользователей с указанной ролью
// Должен стоять после Auth
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actual, ok := GetUserRole(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			if actual != role {
				handlers.RespondForbidden(w, msgWrongRole)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUser кладёт ID и роль пользователя в контекст
func WithUser(ctx context.Context, userID int64, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole извлекает роль пользователя из контекста
func GetUserRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.Role)
	return role, ok
}

func extractToken(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", fmt.Errorf("%w: malformed Authorization header", ErrMissingToken)
		}
		return strings.TrimSpace(token), nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", ErrMissingToken
}
