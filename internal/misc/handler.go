package misc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/emtdash/internal/activity"
	"github.com/2beens/emtdash/internal/apierr"
	"github.com/2beens/emtdash/internal/auth"
	"github.com/2beens/emtdash/internal/emtapi"
	"github.com/2beens/emtdash/internal/middleware"
	"github.com/2beens/emtdash/internal/signal"
	"github.com/2beens/emtdash/internal/telemetry/tracing"
	"github.com/2beens/emtdash/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=misc

type backendAuth interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*emtapi.Profile, error)
}

type sessionService interface {
	Login(ctx context.Context, backendToken string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (string, bool, error)
	Drop(ctx context.Context, token string) error
}

type activityRecorder interface {
	RecordForSession(ctx context.Context, r *http.Request, sessionToken string, eventType activity.EventType, data any)
}

type Handler struct {
	backend     backendAuth
	sessions    sessionService
	activity    activityRecorder
	versionInfo string
	nowFunc     func() time.Time
}

func NewHandler(
	backend backendAuth,
	sessions sessionService,
	activity activityRecorder,
	versionInfo string,
) *Handler {
	return &Handler{
		backend:     backend,
		sessions:    sessions,
		activity:    activity,
		versionInfo: versionInfo,
		nowFunc:     time.Now,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	limitedCounter prometheus.Counter,
	loginAllowedPerMin int,
) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/trend", handler.handleTrend).Methods("POST").Name("trend")

	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "OPTIONS").Name("logout")
	loginSubrouter.
		HandleFunc("/profile", handler.handleProfile).
		Methods("GET").Name("profile")

	// rate limit the /a endpoints, a password guesser hits the backend through us
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, limitedCounter))
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var loginReq LoginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Debugf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Debugf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusBadRequest)
			return
		}
		loginReq = LoginRequest{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	backendToken, err := handler.backend.Login(ctx, loginReq.Username, loginReq.Password)
	if err != nil {
		span.SetStatus(codes.Error, "backend login failed")
		if emtapi.IsClientError(err) {
			log.Tracef("failed login attempt for user: %s", loginReq.Username)
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		apierr.WriteBackendError(w, r, "login", err, nil)
		return
	}

	token, err := handler.sessions.Login(ctx, backendToken, handler.nowFunc())
	if err != nil {
		log.Errorf("login failed, create session error: %s", err)
		http.Error(w, "create session error", http.StatusInternalServerError)
		return
	}

	handler.activity.RecordForSession(ctx, r, token, activity.EventLogin, map[string]string{
		"username": loginReq.Username,
	})

	log.Tracef("new login success, session %s", pkg.TokenHint(token))
	pkg.WriteJSON(w, LoginResponse{Token: token}, http.StatusOK)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	backendToken, loggedOut, err := handler.sessions.Logout(ctx, session.Token)
	if err != nil {
		log.Errorf("logout %s: %s", pkg.TokenHint(session.Token), err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	// the dashboard session is gone either way, a stale backend token is not our problem
	if err := handler.backend.Logout(ctx, backendToken); err != nil && !errors.Is(err, emtapi.ErrUnauthorized) {
		log.Warnf("backend logout for session %s: %s", pkg.TokenHint(session.Token), err)
	}

	handler.activity.RecordForSession(ctx, r, session.Token, activity.EventLogout, nil)

	log.Printf("logout for [%s] success", pkg.TokenHint(session.Token))
	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.profile")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}

	profile, err := handler.backend.Profile(ctx, token)
	if err != nil {
		apierr.WriteBackendError(w, r, "profile", err, handler.sessions)
		return
	}

	pkg.WriteJSON(w, profile, http.StatusOK)
}

type trendRequest struct {
	Xs []float64 `json:"xs"`
	Ys []float64 `json:"ys"`
}

type trendResponse struct {
	Trend     []float64 `json:"trend"`
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
}

// handleTrend fits an OLS line through (xs, ys); without xs the sample indices are used.
func (handler *Handler) handleTrend(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.trend")
	defer span.End()

	var req trendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid trend request", http.StatusBadRequest)
		return
	}

	xs := req.Xs
	if xs == nil {
		xs = signal.Indices(len(req.Ys))
	}
	span.SetAttributes(attribute.Int("trend.points", len(req.Ys)))

	line, trend, err := signal.FitTrend(xs, req.Ys)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, trendResponse{
		Trend:     trend,
		Slope:     line.Slope,
		Intercept: line.Intercept,
	}, http.StatusOK)
}
