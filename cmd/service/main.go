package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/2beens/emtdash/internal"
	"github.com/2beens/emtdash/internal/config"
	"github.com/2beens/emtdash/internal/logging"
	"github.com/2beens/emtdash/pkg"

	log "github.com/sirupsen/logrus"
)

// secrets never live in config.toml
type secrets struct {
	ipInfoAPIKey     string
	redisPassword    string
	postgresPassword string
	honeycombEnabled bool
}

func secretsFromEnv() secrets {
	s := secrets{
		ipInfoAPIKey:     os.Getenv("IP_INFO_API_KEY"),
		redisPassword:    os.Getenv("EMTDASH_REDIS_PASS"),
		postgresPassword: os.Getenv("EMTDASH_PG_PASS"),
		honeycombEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}

	if s.ipInfoAPIKey == "" {
		log.Errorf("ip info API key not set, login events will have no location. use IP_INFO_API_KEY")
	}
	if s.redisPassword == "" {
		log.Errorf("redis password not set. use EMTDASH_REDIS_PASS")
	}
	if s.postgresPassword == "" {
		log.Warnln("postgres password not set. use EMTDASH_PG_PASS")
	}
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}
	if s.honeycombEnabled && os.Getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("HONEYCOMB_API_KEY env var not set")
	}
	if !s.honeycombEnabled {
		log.Debugln("honeycomb tracing disabled")
	}

	return s
}

func main() {
	fmt.Println("emtdash starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "emtdash",
	})

	log.Warnf("---->> running in [%s] environment", *env)
	log.Debugf("listening on %s:%d, backend [%s], signal cache %d MB (%s)",
		cfg.Host, cfg.Port, cfg.BackendURL, cfg.SignalCacheSizeMB, cfg.SignalCacheCodec)

	sec := secretsFromEnv()
	version := versionInfo()
	log.Tracef("running version: %s", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			IpInfoAPIKey:            sec.ipInfoAPIKey,
			VersionInfo:             version,
			RedisPassword:           sec.redisPassword,
			PostgresPassword:        sec.postgresPassword,
			HoneycombTracingEnabled: sec.honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnf("shutdown signal received, stopping emtdash ...")

	server.GracefulShutdown()
}

// versionInfo prefers the VCS revision stamped by the go toolchain, and falls
// back to asking git when the binary was built without it.
func versionInfo() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}

	stdout, err := exec.Command("/usr/bin/git", "rev-parse", "HEAD").Output()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
		return "unknown"
	}
	return strings.TrimSpace(pkg.BytesToString(stdout))
}
