package jwt

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	// GenerateAccessToken issues a short-lived token carrying the employee
	// identity and admin flag.
	GenerateAccessToken(employeeID string, username string, isAdmin bool) (token string, expiresAt int64, err error)

	// GenerateRefreshToken issues a long-lived token carrying only the
	// employee identity.
	GenerateRefreshToken(employeeID string) (token string, expiresAt int64, err error)

	// ValidateRefreshToken verifies signature, expiry, type and revocation
	// and returns the employee ID.
	ValidateRefreshToken(token string) (employeeID string, err error)

	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	tokenAuth         *jwtauth.JWTAuth
	revokedTokens     map[string]int64
	mu                sync.RWMutex
}

func NewJWTService(secretKey string, accessExpiration, refreshExpiration time.Duration) Service {
	return &JWTService{
		accessExpiration:  accessExpiration,
		refreshExpiration: refreshExpiration,
		tokenAuth:         jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:     make(map[string]int64),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(employeeID string, username string, isAdmin bool) (string, int64, error) {
	expiresAt := time.Now().Add(j.accessExpiration).Unix()

	claims := map[string]interface{}{
		"employee_id": employeeID,
		"username":    username,
		"is_admin":    isAdmin,
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode access token: %w", err)
	}

	return tokenString, expiresAt, nil
}

func (j *JWTService) GenerateRefreshToken(employeeID string) (string, int64, error) {
	expiresAt := time.Now().Add(j.refreshExpiration).Unix()

	claims := map[string]interface{}{
		"employee_id": employeeID,
		"type":        "refresh",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode refresh token: %w", err)
	}

	return tokenString, expiresAt, nil
}

func (j *JWTService) ValidateRefreshToken(tokenString string) (string, error) {
	if j.IsTokenRevoked(tokenString) {
		return "", fmt.Errorf("refresh token has been revoked")
	}

	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", fmt.Errorf("failed to decode refresh token: %w", err)
	}

	if err := jwt.Validate(token); err != nil {
		return "", fmt.Errorf("refresh token is not valid: %w", err)
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return "", fmt.Errorf("token is not a refresh token")
	}

	employeeID, ok := token.Get("employee_id")
	if !ok {
		return "", fmt.Errorf("employee_id claim is missing")
	}

	id, ok := employeeID.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("employee_id claim is invalid")
	}

	return id, nil
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.purgeExpiredLocked()
	j.revokedTokens[token] = time.Now().Add(j.refreshExpiration).Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()

	expiry, ok := j.revokedTokens[token]
	if !ok {
		return false
	}
	return time.Now().Unix() < expiry
}

// purgeExpiredLocked drops revocation entries whose tokens have expired on
// their own. Caller must hold the write lock.
func (j *JWTService) purgeExpiredLocked() {
	now := time.Now().Unix()
	for token, expiry := range j.revokedTokens {
		if expiry <= now {
			delete(j.revokedTokens, token)
		}
	}
}
