package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
)

var (
	// ErrMissingToken заголовок Authorization отсутствует или не Bearer
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken токен не разбирается, подпись неверна или нет id
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Claims утверждения токена платформы
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Role   string `json:"role"`
}

// TokenParser разбирает токены платформы.
// С пустым секретом подпись не проверяется: токен проверит сама платформа при проксировании.
type TokenParser struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenParser создает парсер токенов
func NewTokenParser(secret string) *TokenParser {
	p := &TokenParser{
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
	if secret != "" {
		p.secret = []byte(secret)
	}
	return p
}

// Parse разбирает токен и возвращает сессию
func (p *TokenParser) Parse(tokenString string) (domain.Session, error) {
	claims := &Claims{}

	if p.secret == nil {
		if _, _, err := p.parser.ParseUnverified(tokenString, claims); err != nil {
			return domain.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	} else {
		token, err := p.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return p.secret, nil
		})
		if err != nil {
			return domain.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		if !token.Valid {
			return domain.Session{}, ErrInvalidToken
		}
	}

	if claims.UserID == "" {
		return domain.Session{}, fmt.Errorf("%w: id claim is empty", ErrInvalidToken)
	}

	return domain.Session{
		StylistID: claims.UserID,
		Role:      claims.Role,
		Token:     tokenString,
	}, nil
}

// Auth проверяет Bearer токен и кладет сессию в контекст
func Auth(parser *TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			session, err := parser.Parse(tokenString)
			if err != nil {
				logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}
