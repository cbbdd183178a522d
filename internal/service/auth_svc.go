package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Parkkangwon/trendwatch/internal/model"
	"github.com/Parkkangwon/trendwatch/internal/store"
)

// AuthStatus is the login-attempt outcome exposed at the auth boundary.
// Invalid credentials surface as StatusRejected rather than an error value;
// the presentation layer treats the attempt as state, not as a failure.
type AuthStatus string

const (
	StatusAuthenticated AuthStatus = "authenticated"
	StatusRejected      AuthStatus = "rejected"
	StatusPending       AuthStatus = "pending"
)

// LoginResult is what a login attempt hands back to the presentation layer.
// Token is the signed session cookie value; it never appears in the body.
type LoginResult struct {
	Name     string     `json:"name,omitempty"`
	Status   AuthStatus `json:"status"`
	Username string     `json:"username,omitempty"`
	Token    string     `json:"-"`
}

// AuthService validates credentials against the store and mints/parses the
// signed session cookie. There is deliberately no lockout, rate-limiting, or
// expiry beyond the cookie lifetime.
type AuthService struct {
	store  *store.Store
	cookie store.CookieConfig
}

func NewAuthService(st *store.Store) *AuthService {
	return &AuthService{store: st, cookie: st.Cookie()}
}

// Login checks the submitted credentials. Empty fields yield a pending
// result; a wrong username or password yields rejected; success yields
// authenticated plus a signed session token.
func (s *AuthService) Login(username, password string) LoginResult {
	if username == "" || password == "" {
		return LoginResult{Status: StatusPending}
	}

	rec, ok := s.store.Lookup(username)
	if !ok || !store.VerifyPassword(rec.PasswordHash, password) {
		return LoginResult{Status: StatusRejected}
	}

	token, err := s.issueToken(username, rec)
	if err != nil {
		// Signing can only fail on a broken key; treat as rejection rather
		// than leaking internals.
		return LoginResult{Status: StatusRejected}
	}

	return LoginResult{
		Name:     rec.Name,
		Status:   StatusAuthenticated,
		Username: username,
		Token:    token,
	}
}

func (s *AuthService) issueToken(username string, rec model.UserRecord) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  username,
		"name": rec.Name,
		"role": string(rec.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.CookieTTL()).Unix(),
		"jti":  uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cookie.Key))
}

// ParseToken turns a session cookie value back into a SessionState. Any
// invalid, expired, or orphaned token maps to the unset state, never an
// error: an unreadable cookie is just an anonymous request.
func (s *AuthService) ParseToken(tokenString string) model.SessionState {
	if tokenString == "" {
		return model.Anonymous()
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cookie.Key), nil
	})
	if err != nil || !token.Valid {
		return model.Anonymous()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Anonymous()
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return model.Anonymous()
	}

	// Deleted users lose their session even with a live token.
	rec, ok := s.store.Lookup(username)
	if !ok {
		return model.Anonymous()
	}

	return model.SessionState{
		Status:         model.StatusAuthenticated,
		Username:       username,
		Name:           rec.Name,
		Role:           rec.Role,
		ShowAdminPanel: rec.Role == model.RoleAdmin,
	}
}

// CookieName is the session cookie's name, from the credential file.
func (s *AuthService) CookieName() string {
	return s.cookie.Name
}

// CookieTTL is the session lifetime derived from cookie.expiry_days.
func (s *AuthService) CookieTTL() time.Duration {
	return time.Duration(s.cookie.ExpiryDays) * 24 * time.Hour
}
