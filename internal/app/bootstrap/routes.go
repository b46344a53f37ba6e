// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	announcementsfeature "github.com/dmcateer/classtrack/internal/app/features/announcements"
	attendancefeature "github.com/dmcateer/classtrack/internal/app/features/attendance"
	classesfeature "github.com/dmcateer/classtrack/internal/app/features/classes"
	dashboardfeature "github.com/dmcateer/classtrack/internal/app/features/dashboard"
	errorsfeature "github.com/dmcateer/classtrack/internal/app/features/errors"
	healthfeature "github.com/dmcateer/classtrack/internal/app/features/health"
	homefeature "github.com/dmcateer/classtrack/internal/app/features/home"
	leavesfeature "github.com/dmcateer/classtrack/internal/app/features/leaves"
	loginfeature "github.com/dmcateer/classtrack/internal/app/features/login"
	logoutfeature "github.com/dmcateer/classtrack/internal/app/features/logout"
	studentsfeature "github.com/dmcateer/classtrack/internal/app/features/students"
	subjectsfeature "github.com/dmcateer/classtrack/internal/app/features/subjects"
	timetablefeature "github.com/dmcateer/classtrack/internal/app/features/timetable"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// This function should:
//  1. Create a router (chi, standard mux, etc.)
//  2. Mount feature routers for different parts of the application
//  3. Add any additional middleware needed for specific routes
//  4. Return the configured router as an http.Handler
//
// ClassTrack initializes the template engine, applies session and CSRF
// middleware, and mounts feature routers for all application areas: home,
// login, signup, dashboard, classes, subjects, students, timetable,
// attendance, leaves, and announcements.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on each request.
	// This ensures role changes, disabled accounts, and profile updates take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection for all form posts. The token is surfaced to
	// templates through viewdata.BaseVM.
	r.Use(csrf.Protect([]byte(appCfg.SessionKey),
		csrf.Secure(secure),
		csrf.Path("/"),
	))

	// Error pages. The NotFound handler must be registered before any
	// mounts so chi copies it into the subrouters.
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Mount("/signup", loginfeature.SignupRoutes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Role-based dashboards
	dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Catalog management
	classesHandler := classesfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/classes", classesfeature.Routes(classesHandler, sessionMgr))

	subjectsHandler := subjectsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/subjects", subjectsfeature.Routes(subjectsHandler, sessionMgr))

	studentsHandler := studentsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/students", studentsfeature.Routes(studentsHandler, sessionMgr))

	// Scheduling and attendance
	timetableHandler := timetablefeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/timetable", timetablefeature.Routes(timetableHandler, sessionMgr))

	attendanceHandler := attendancefeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/attendance", attendancefeature.Routes(attendanceHandler, sessionMgr))

	// Leave requests
	leavesHandler := leavesfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/leaves", leavesfeature.Routes(leavesHandler, sessionMgr))

	// Announcements
	announcementsHandler := announcementsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/announcements", announcementsfeature.Routes(announcementsHandler, sessionMgr))

	return r, nil
}
