package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/emtdash/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS activity_event
(
	id           SERIAL PRIMARY KEY,
	type         VARCHAR(40)  NOT NULL,
	session_hint VARCHAR(20)  NOT NULL DEFAULT '',
	ip           VARCHAR(64)  NOT NULL DEFAULT '',
	country      VARCHAR(8)   NOT NULL DEFAULT '',
	city         VARCHAR(100) NOT NULL DEFAULT '',
	data         JSONB,
	created_at   TIMESTAMPTZ  NOT NULL
);
CREATE INDEX IF NOT EXISTS activity_event_created_at_idx ON activity_event (created_at DESC);`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create activity_event table: %w", err)
	}
	return nil
}

func (r *Repo) Add(ctx context.Context, event *Event) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activityRepo.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if event.Type == "" || event.CreatedAt.IsZero() {
		return nil, errors.New("event type or timestamp empty")
	}

	var data any
	if len(event.Data) > 0 {
		data = string(event.Data)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO activity_event (type, session_hint, ip, country, city, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;`,
		string(event.Type), event.SessionHint, event.IP, event.Country, event.City, data, event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	event.ID = id
	return event, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activity_event;`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// List returns one page of events, newest first. Pages start at 1.
func (r *Repo) List(ctx context.Context, page, size int) (_ []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activityRepo.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if page < 1 || size < 1 {
		return nil, fmt.Errorf("invalid page %d / size %d", page, size)
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, type, session_hint, ip, country, city, data, created_at
			FROM activity_event
			ORDER BY created_at DESC, id DESC
			LIMIT $1 OFFSET $2;`,
		size, (page-1)*size,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			id                             int
			eventType                      string
			sessionHint, ip, country, city string
			data                           []byte
			createdAt                      time.Time
		)
		if err := rows.Scan(&id, &eventType, &sessionHint, &ip, &country, &city, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		events = append(events, Event{
			ID:          id,
			Type:        EventType(eventType),
			SessionHint: sessionHint,
			IP:          ip,
			Country:     country,
			City:        city,
			Data:        data,
			CreatedAt:   createdAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
