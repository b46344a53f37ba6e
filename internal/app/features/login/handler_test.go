package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	"github.com/dmcateer/classtrack/internal/app/features/login"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/dmcateer/classtrack/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*login.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-0123456789abcdef", "classtrack-test", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	errLog := uierrors.NewErrorLogger(logger)
	return login.NewHandler(db, sm, errLog, logger), db
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleLoginPost_Success(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	_, err := users.CreateWithPassword(ctx, models.User{
		FullName: "Dana Teacher",
		Email:    "dana@example.com",
		Role:     models.RoleTeacher,
	}, "correct horse battery")
	if err != nil {
		t.Fatalf("CreateWithPassword: %v", err)
	}

	form := url.Values{
		"email":    {"dana@example.com"},
		"password": {"correct horse battery"},
	}
	rec := httptest.NewRecorder()

	h.HandleLoginPost(rec, postForm("/login", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location: got %q, want %q", loc, "/dashboard")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie to be set")
	}
}

func TestHandleLoginPost_WrongPassword(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	if _, err := users.CreateWithPassword(ctx, models.User{
		FullName: "Dana Teacher",
		Email:    "dana@example.com",
		Role:     models.RoleTeacher,
	}, "correct horse battery"); err != nil {
		t.Fatalf("CreateWithPassword: %v", err)
	}

	form := url.Values{
		"email":    {"dana@example.com"},
		"password": {"wrong"},
	}
	rec := httptest.NewRecorder()

	// The form re-renders with an error; no redirect and no session cookie.
	h.HandleLoginPost(rec, postForm("/login", form))

	if rec.Code == http.StatusSeeOther {
		t.Error("bad password must not redirect to the dashboard")
	}
}

func TestHandleLoginPost_UnknownEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	form := url.Values{
		"email":    {"nobody@example.com"},
		"password": {"whatever"},
	}
	rec := httptest.NewRecorder()

	h.HandleLoginPost(rec, postForm("/login", form))

	if rec.Code == http.StatusSeeOther {
		t.Error("unknown email must not redirect to the dashboard")
	}
}

func TestHandleSignupPost_CreatesUserAndSignsIn(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"full_name": {"Sam Student"},
		"email":     {"sam@example.com"},
		"password":  {"longenoughpw"},
		"role":      {"student"},
	}
	rec := httptest.NewRecorder()

	h.HandleSignupPost(rec, postForm("/signup", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}

	users := userstore.New(db)
	u, err := users.GetByEmail(ctx, "sam@example.com")
	if err != nil {
		t.Fatalf("GetByEmail after signup: %v", err)
	}
	if u.Role != models.RoleStudent {
		t.Errorf("role: got %q, want %q", u.Role, models.RoleStudent)
	}
	if !users.VerifyPassword(u, "longenoughpw") {
		t.Error("password should verify after signup")
	}
}

func TestHandleSignupPost_ShortPassword(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"full_name": {"Sam Student"},
		"email":     {"sam@example.com"},
		"password":  {"short"},
		"role":      {"student"},
	}
	rec := httptest.NewRecorder()

	h.HandleSignupPost(rec, postForm("/signup", form))

	if rec.Code == http.StatusSeeOther {
		t.Error("short password must not create an account")
	}

	users := userstore.New(db)
	if _, err := users.GetByEmail(ctx, "sam@example.com"); err == nil {
		t.Error("no user should exist after rejected signup")
	}
}
