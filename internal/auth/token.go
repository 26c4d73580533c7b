package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/myfolio/server/internal/config"
	"github.com/myfolio/server/internal/models"
)

var (
	ErrSecretRequired = errors.New("auth: jwt secret required")
	ErrTokenInvalid   = errors.New("auth: invalid token")
	ErrTokenExpired   = errors.New("auth: token expired")

	ErrMissingHeader = errors.New("auth: missing authorization header")
	ErrWrongPrefix   = errors.New("auth: wrong token prefix")
)

// TokenClaims is the JWT payload: minimal user identity plus the registered
// expiry/subject claims.
type TokenClaims struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Service struct {
	secret  []byte
	ttl     time.Duration
	prefix  string
	subject string
}

func NewService(cfg config.JWTConfig) (*Service, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	prefix := cfg.TokenPrefix
	if prefix == "" {
		prefix = "Token"
	}

	subject := cfg.Subject
	if subject == "" {
		subject = "access"
	}

	return &Service{
		secret:  []byte(secret),
		ttl:     ttl,
		prefix:  prefix,
		subject: subject,
	}, nil
}

// IssueToken signs a fresh HS256 token for user, expiring after the
// configured validity window.
func (s *Service) IssueToken(user models.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := TokenClaims{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// VerifyToken decodes and signature-checks a token. Expiry is reported as
// ErrTokenExpired, every other decode failure as ErrTokenInvalid.
func (s *Service) VerifyToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ExtractToken pulls the bare token out of an "<prefix> <token>" header
// value. A missing header and a wrong prefix are distinct failures; callers
// map both to the same unauthorized response.
func (s *Service) ExtractToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", ErrMissingHeader
	}

	prefix, token, found := strings.Cut(header, " ")
	if !found || prefix != s.prefix || strings.TrimSpace(token) == "" {
		return "", ErrWrongPrefix
	}

	return token, nil
}
