// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/dmcateer/classtrack/internal/app/system/viewdata"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB         *mongo.Database
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Users:      userstore.New(db),
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

type signupFormData struct {
	viewdata.BaseVM
	Error    string
	FullName string
	Email    string
	Role     string
	Roles    []string
}

// signupRoles are the roles a visitor may register as.
var signupRoles = []string{
	models.RoleAdmin,
	models.RoleTeacher,
	models.RoleStudent,
	models.RoleParent,
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: r.URL.Query().Get("return"),
	}
	templates.Render(w, r, "login", data)
}

// HandleLoginPost handles POST /login.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	if email == "" || password == "" {
		h.renderLoginWithError(w, r, "Email and password are required.", email, returnURL)
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.renderLoginWithError(w, r, "Invalid email or password.", email, returnURL)
			return
		}
		h.ErrLog.LogServerError(w, r, "lookup user by email failed", err, "A database error occurred.", "/login")
		return
	}

	if !h.Users.VerifyPassword(u, password) {
		h.Log.Warn("login: bad password", zap.String("email_ci", u.EmailCI))
		h.renderLoginWithError(w, r, "Invalid email or password.", email, returnURL)
		return
	}

	if u.Status != "" && u.Status != "active" {
		h.renderLoginWithError(w, r, "This account is disabled.", email, returnURL)
		return
	}

	h.createSessionAndRedirect(w, r, u, returnURL)
}

// ServeSignup handles GET /signup.
func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	data := signupFormData{
		BaseVM: viewdata.NewBaseVM(r, "Create an account", "/"),
		Role:   models.RoleStudent,
		Roles:  signupRoles,
	}
	templates.Render(w, r, "signup", data)
}

// HandleSignupPost handles POST /signup.
func (h *Handler) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse signup form failed", err, "Invalid form data.", "/signup")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	role := strings.ToLower(strings.TrimSpace(r.FormValue("role")))

	if fullName == "" || email == "" || password == "" {
		h.renderSignupWithError(w, r, "All fields are required.", fullName, email, role)
		return
	}
	if len(password) < 8 {
		h.renderSignupWithError(w, r, "Password must be at least 8 characters.", fullName, email, role)
		return
	}

	created, err := h.Users.CreateWithPassword(r.Context(), models.User{
		FullName: fullName,
		Email:    email,
		Role:     role,
	}, password)
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicateEmail):
			h.renderSignupWithError(w, r, "An account with that email already exists.", fullName, email, role)
		case errors.Is(err, userstore.ErrInvalidRole):
			h.renderSignupWithError(w, r, "Please choose a valid role.", fullName, email, role)
		default:
			h.ErrLog.LogServerError(w, r, "create user failed", err, "A database error occurred.", "/signup")
		}
		return
	}

	h.createSessionAndRedirect(w, r, &created, "")
}

// createSessionAndRedirect creates an authenticated session and redirects to
// the destination.
func (h *Handler) createSessionAndRedirect(w http.ResponseWriter, r *http.Request, u *models.User, returnURL string) {
	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		h.renderLoginWithError(w, r, "Unable to create session. Please try again.", u.Email, returnURL)
		return
	}

	dest := urlutil.SafeReturn(returnURL, "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderLoginWithError(w http.ResponseWriter, r *http.Request, msg, email, returnURL string) {
	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: returnURL,
	}
	templates.Render(w, r, "login", data)
}

func (h *Handler) renderSignupWithError(w http.ResponseWriter, r *http.Request, msg, fullName, email, role string) {
	data := signupFormData{
		BaseVM:   viewdata.NewBaseVM(r, "Create an account", "/"),
		Error:    msg,
		FullName: fullName,
		Email:    email,
		Role:     role,
		Roles:    signupRoles,
	}
	templates.Render(w, r, "signup", data)
}
