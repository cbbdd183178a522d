package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Parkkangwon/trendwatch/internal/model"
	"github.com/Parkkangwon/trendwatch/internal/store"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()

	adminHash, err := store.HashPassword("admin-pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	userHash, err := store.HashPassword("user-pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	content := `credentials:
  usernames:
    admin:
      email: admin@example.com
      name: Administrator
      password: "` + adminHash + `"
      role: admin
    viewer:
      email: viewer@example.com
      name: Viewer
      password: "` + userHash + `"
      role: user
cookie:
  name: test_session
  key: test-signing-key
  expiry_days: 7
`
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return NewAuthService(st)
}

func TestLogin_Statuses(t *testing.T) {
	auth := newTestAuth(t)

	tests := []struct {
		name     string
		username string
		password string
		want     AuthStatus
	}{
		{"valid admin", "admin", "admin-pw", StatusAuthenticated},
		{"valid user", "viewer", "user-pw", StatusAuthenticated},
		{"wrong password", "admin", "nope", StatusRejected},
		{"unknown user", "ghost", "admin-pw", StatusRejected},
		{"empty password", "admin", "", StatusPending},
		{"empty username", "", "admin-pw", StatusPending},
		{"both empty", "", "", StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := auth.Login(tt.username, tt.password)
			if res.Status != tt.want {
				t.Errorf("Login status = %q, want %q", res.Status, tt.want)
			}
			if tt.want == StatusAuthenticated {
				if res.Username != tt.username || res.Name == "" || res.Token == "" {
					t.Errorf("authenticated result incomplete: %+v", res)
				}
			} else if res.Token != "" {
				t.Error("non-authenticated result carries a token")
			}
		})
	}
}

func TestToken_RoundTrip(t *testing.T) {
	auth := newTestAuth(t)

	res := auth.Login("admin", "admin-pw")
	if res.Status != StatusAuthenticated {
		t.Fatalf("login failed: %+v", res)
	}

	state := auth.ParseToken(res.Token)
	if state.Status != model.StatusAuthenticated {
		t.Fatalf("parsed status = %q", state.Status)
	}
	if state.Username != "admin" || state.Role != model.RoleAdmin || !state.ShowAdminPanel {
		t.Errorf("parsed state wrong: %+v", state)
	}

	userState := auth.ParseToken(auth.Login("viewer", "user-pw").Token)
	if userState.Role != model.RoleUser || userState.ShowAdminPanel {
		t.Errorf("user session should not show admin panel: %+v", userState)
	}
}

func TestParseToken_InvalidInputs(t *testing.T) {
	auth := newTestAuth(t)
	valid := auth.Login("admin", "admin-pw").Token

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered", valid + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := auth.ParseToken(tt.token)
			if state.Status != model.StatusUnset || state.Username != "" {
				t.Errorf("ParseToken(%s) = %+v, want unset", tt.name, state)
			}
		})
	}
}

func TestParseToken_Expired(t *testing.T) {
	auth := newTestAuth(t)

	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if state := auth.ParseToken(expired); state.Status != model.StatusUnset {
		t.Errorf("expired token parsed to %+v, want unset", state)
	}
}

func TestParseToken_WrongKey(t *testing.T) {
	auth := newTestAuth(t)

	claims := jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("attacker-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if state := auth.ParseToken(forged); state.Status != model.StatusUnset {
		t.Errorf("forged token parsed to %+v, want unset", state)
	}
}

func TestParseToken_DeletedUser(t *testing.T) {
	auth := newTestAuth(t)

	claims := jwt.MapClaims{
		"sub": "departed",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	orphan, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if state := auth.ParseToken(orphan); state.Status != model.StatusUnset {
		t.Errorf("orphaned token parsed to %+v, want unset", state)
	}
}

func TestCookieConfig(t *testing.T) {
	auth := newTestAuth(t)
	if auth.CookieName() != "test_session" {
		t.Errorf("CookieName = %q", auth.CookieName())
	}
	if auth.CookieTTL() != 7*24*time.Hour {
		t.Errorf("CookieTTL = %v", auth.CookieTTL())
	}
}
