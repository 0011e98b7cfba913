package audit

import (
	"context"
	"database/sql"
	"time"
)

// EventTypeResultRecorded is appended after a result and its answer records
// commit.
const EventTypeResultRecorded = "ResultRecorded"

type Event struct {
	Offset    int64
	Type      string
	Key       string // natural key: result id
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}
