package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmcateer/classtrack/internal/app/features/logout"
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"go.uber.org/zap"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-0123456789abcdef", "classtrack-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

func TestServeLogout_Redirects(t *testing.T) {
	sm := newSessionManager(t)
	h := logout.NewHandler(sm, zap.NewNop())

	req := httptest.NewRequest("GET", "/logout", nil)
	rec := httptest.NewRecorder()

	h.ServeLogout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location: got %q, want %q", loc, "/")
	}
}

func TestServeLogout_HTMX(t *testing.T) {
	sm := newSessionManager(t)
	h := logout.NewHandler(sm, zap.NewNop())

	req := httptest.NewRequest("GET", "/logout", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	h.ServeLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/" {
		t.Errorf("HX-Redirect: got %q, want %q", got, "/")
	}
}

func TestServeLogout_ClearsCookie(t *testing.T) {
	sm := newSessionManager(t)
	h := logout.NewHandler(sm, zap.NewNop())

	req := httptest.NewRequest("GET", "/logout", nil)
	rec := httptest.NewRecorder()

	h.ServeLogout(rec, req)

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "classtrack-test" {
			found = true
			if c.MaxAge != -1 {
				t.Errorf("cookie MaxAge: got %d, want -1", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected a deletion cookie for the session")
	}
}
