package activity

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/emtdash/internal/auth"
	"github.com/2beens/emtdash/internal/geoip"
	"github.com/2beens/emtdash/pkg"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const recordTimeout = 3 * time.Second

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=activity

type eventsRepo interface {
	Add(ctx context.Context, event *Event) (*Event, error)
	List(ctx context.Context, page, size int) ([]Event, error)
	Count(ctx context.Context) (int, error)
}

type locator interface {
	Locate(ctx context.Context, ip string) (*geoip.Location, error)
}

// Service records dashboard actions. Recording never fails the caller:
// errors are logged and counted as dropped events.
type Service struct {
	repo    eventsRepo
	locator locator
	dropped prometheus.Counter
	nowFunc func() time.Time
}

// NewService creates the activity service; locator and dropped may be nil.
func NewService(repo eventsRepo, locator locator, dropped prometheus.Counter) *Service {
	return &Service{
		repo:    repo,
		locator: locator,
		dropped: dropped,
		nowFunc: time.Now,
	}
}

// Record stores an event of the request's session. data is marshaled to JSON, nil is allowed.
func (s *Service) Record(ctx context.Context, r *http.Request, eventType EventType, data any) {
	sessionToken := ""
	if session, ok := auth.SessionFromContext(ctx); ok {
		sessionToken = session.Token
	}
	s.RecordForSession(ctx, r, sessionToken, eventType, data)
}

// RecordForSession is Record for requests that do not carry the session in the context yet (login).
func (s *Service) RecordForSession(ctx context.Context, r *http.Request, sessionToken string, eventType EventType, data any) {
	// the user's request may finish (and cancel its context) before the insert does
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	event := &Event{
		Type:      eventType,
		CreatedAt: s.nowFunc(),
	}
	if sessionToken != "" {
		event.SessionHint = pkg.TokenHint(sessionToken)
	}
	if ip, err := pkg.ReadUserIP(r); err == nil {
		event.IP = ip
	}

	if data != nil {
		dataBytes, err := json.Marshal(data)
		if err != nil {
			log.Errorf("activity %s: marshal data: %s", eventType, err)
		} else {
			event.Data = dataBytes
		}
	}

	if eventType == EventLogin && s.locator != nil && event.IP != "" {
		loc, err := s.locator.Locate(ctx, event.IP)
		if err != nil {
			log.Warnf("activity %s: locate %s: %s", eventType, event.IP, err)
		} else {
			event.Country = loc.Country
			event.City = loc.City
		}
	}

	if _, err := s.repo.Add(ctx, event); err != nil {
		log.Errorf("activity %s: record event: %s", eventType, err)
		if s.dropped != nil {
			s.dropped.Inc()
		}
		return
	}
	log.Debugf("activity %s recorded, session %s", eventType, event.SessionHint)
}

func (s *Service) List(ctx context.Context, page, size int) (*EventsPage, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.List(ctx, page, size)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}

	return &EventsPage{
		Total:  total,
		Page:   page,
		Size:   size,
		Events: events,
	}, nil
}
