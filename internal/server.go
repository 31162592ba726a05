package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/emtdash/internal/activity"
	"github.com/2beens/emtdash/internal/athletes"
	"github.com/2beens/emtdash/internal/auth"
	"github.com/2beens/emtdash/internal/cache"
	"github.com/2beens/emtdash/internal/config"
	"github.com/2beens/emtdash/internal/db"
	"github.com/2beens/emtdash/internal/emtapi"
	"github.com/2beens/emtdash/internal/geoip"
	"github.com/2beens/emtdash/internal/middleware"
	"github.com/2beens/emtdash/internal/misc"
	"github.com/2beens/emtdash/internal/telemetry/metrics"
	"github.com/2beens/emtdash/internal/telemetry/tracing"
	"github.com/2beens/emtdash/internal/trainings"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/ipinfo/go/v2/ipinfo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const sessionsCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	backend     *emtapi.Client
	signalCache *cache.SignalCache
	activity    *activity.Service

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()

	stopCleanup context.CancelFunc
}

type NewServerParams struct {
	Config                  *config.Config
	IpInfoAPIKey            string
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	promRegistry := metrics.SetupPrometheus(db.NewPoolCollector(dbPool, cfg.PostgresDBName))
	metricsManager := metrics.NewManager("emtdash", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "emtdash", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.BackendTimeout,
	}

	backend, err := emtapi.NewClient(
		cfg.BackendURL,
		tracedHttpClient,
		emtapi.WithCallDuration(metricsManager.HistogramBackendCallDuration),
	)
	if err != nil {
		return nil, fmt.Errorf("new backend client: %w", err)
	}

	codec, err := cache.CodecByName(cfg.SignalCacheCodec)
	if err != nil {
		return nil, fmt.Errorf("signal cache: %w", err)
	}
	signalCache := cache.NewSignalCache(cache.SignalCacheParams{
		SizeMB:        cfg.SignalCacheSizeMB,
		Codec:         codec,
		SignalsTTL:    time.Duration(cfg.SignalCacheTTLSecs) * time.Second,
		MusclesTTL:    time.Duration(cfg.MusclesCacheTTL) * time.Second,
		CounterResult: metricsManager.CounterSignalCache,
	})
	log.Debugf("signal cache: %d MB, codec %s", cfg.SignalCacheSizeMB, codec.Name())

	activityRepo := activity.NewRepo(dbPool)
	if err := activityRepo.EnsureSchema(ctx); err != nil {
		log.Errorf("activity schema: %s", err)
	}

	geoIp := geoip.NewApi(ipinfo.NewClient(tracedHttpClient, nil, params.IpInfoAPIKey), rdb)

	authService := auth.NewAuthService(cfg.SessionTTL, rdb, metricsManager.GaugeActiveSessions)
	cleanupCtx, stopCleanup := context.WithCancel(context.WithoutCancel(ctx))
	go func() {
		ticker := time.NewTicker(sessionsCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				authService.ScanAndClean(cleanupCtx)
			}
		}
	}()

	return &Server{
		config:      cfg,
		dbPool:      dbPool,
		backend:     backend,
		signalCache: signalCache,
		activity:    activity.NewService(activityRepo, geoIp, metricsManager.CounterActivityDropped),
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(cfg.SessionTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,

		stopCleanup: stopCleanup,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("emtdash-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(s.backend, s.authService, s.activity, s.versionInfo)
	miscHandler.SetupRoutes(
		r,
		reqRateLimiter,
		s.metricsManager.CounterRateLimitedRequests,
		s.config.LoginRateLimitAllowedPerMin,
	)

	athletesHandler := athletes.NewHandler(s.backend, s.signalCache, s.activity, s.authService)
	athletesHandler.SetupRoutes(r)

	trainingsHandler := trainings.NewHandler(s.backend, s.signalCache, s.activity, s.authService)
	trainingsHandler.SetupRoutes(r)

	activityHandler := activity.NewHandler(s.activity)
	r.HandleFunc("/activity/page/{page}/size/{size}", activityHandler.HandleList).Methods("GET").Name("activity-list")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests first, handlers still need redis and the db
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
		}
		log.Warnln("metrics server shut down")
	}

	if s.stopCleanup != nil {
		s.stopCleanup()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
