package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/2beens/emtdash/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	cacheKeyPrefix = "ip-info::"
	cacheTTL       = 30 * 24 * time.Hour
)

// Location is the part of the ipinfo answer the activity log keeps.
type Location struct {
	IP       string `json:"ip"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Org      string `json:"org"`
	Timezone string `json:"timezone"`
}

var devLocation = Location{
	IP:      "127.0.0.1",
	City:    "Tashkent",
	Country: "UZ",
}

type ipInfoClient interface {
	GetIPInfo(ip net.IP) (*ipinfo.Core, error)
}

type Api struct {
	mu          sync.Mutex
	client      ipInfoClient
	redisClient *redis.Client
}

func NewApi(client *ipinfo.Client, redisClient *redis.Client) *Api {
	return newApi(client, redisClient)
}

func newApi(client ipInfoClient, redisClient *redis.Client) *Api {
	return &Api{
		client:      client,
		redisClient: redisClient,
	}
}

// Locate resolves the location of a client ip, first from redis, then from ipinfo.
// "localhost" resolves to a fixed development location.
func (gi *Api) Locate(ctx context.Context, userIp string) (*Location, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geoIp.locate")
	defer span.End()
	span.SetAttributes(attribute.String("user.ip", userIp))

	if userIp == "localhost" {
		log.Debugf("request geo info: returning development location")
		loc := devLocation
		return &loc, nil
	}

	ip := net.ParseIP(userIp)
	if ip == nil {
		return nil, fmt.Errorf("invalid ip: %q", userIp)
	}

	// logins may come in bursts from one office, one ipinfo call per ip is enough
	gi.mu.Lock()
	defer gi.mu.Unlock()

	key := cacheKeyPrefix + ip.String()
	cached, err := gi.redisClient.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
		span.SetAttributes(attribute.Bool("user.ip.from-cache", false))
	case err != nil:
		log.Errorf("failed to get ip info from redis for [%s]: %s", key, err)
	default:
		loc := &Location{}
		if err := json.Unmarshal([]byte(cached), loc); err == nil {
			span.SetAttributes(attribute.Bool("user.ip.from-cache", true))
			return loc, nil
		}
		log.Errorf("failed to unmarshal cached ip info for %s: %s", ip, err)
	}

	core, err := gi.client.GetIPInfo(ip)
	if err != nil {
		return nil, fmt.Errorf("ipinfo %s: %w", ip, err)
	}

	loc := &Location{
		IP:       ip.String(),
		City:     core.City,
		Region:   core.Region,
		Country:  core.Country,
		Org:      core.Org,
		Timezone: core.Timezone,
	}

	locBytes, err := json.Marshal(loc)
	if err != nil {
		return loc, nil
	}
	if err := gi.redisClient.Set(ctx, key, string(locBytes), cacheTTL).Err(); err != nil {
		log.Errorf("failed to cache ip info in redis for %s: %s", ip, err)
	}

	return loc, nil
}
