// Package audit journals dispatched actions to Postgres. Only metadata is
// stored: sender, action, outcome and latency. Slot values and utterances
// never leave the process.
package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
)

var ErrDisabled = errors.New("audit journal disabled")

type Config struct {
	DSN          string        `envconfig:"DSN"`
	WriteTimeout time.Duration `split_words:"true" default:"2s"`
	QueueSize    int           `split_words:"true" default:"256"`
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.DSN) != ""
}

type Invocation struct {
	bun.BaseModel `bun:"table:action_invocations,alias:ai"`

	ID         int64     `bun:"id,pk,autoincrement"`
	SenderID   string    `bun:"sender_id,notnull"`
	Action     string    `bun:"action,notnull"`
	Outcome    string    `bun:"outcome,notnull"`
	DurationMS int64     `bun:"duration_ms,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

func fromInvocation(inv contractx.Invocation) *Invocation {
	return &Invocation{
		SenderID:   inv.SenderID,
		Action:     inv.Action,
		Outcome:    string(inv.Outcome),
		DurationMS: inv.Duration.Milliseconds(),
		CreatedAt:  inv.At.UTC(),
	}
}

// Store implements contract.Recorder on top of bun.
type Store struct {
	db           *bun.DB
	writeTimeout time.Duration
}

var _ contractx.Recorder = (*Store)(nil)

// Open connects lazily; the first query establishes the connection.
func Open(cfg Config) (*Store, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(strings.TrimSpace(cfg.DSN))))
	return NewStore(bun.NewDB(sqldb, pgdialect.New()), cfg.WriteTimeout), nil
}

func NewStore(db *bun.DB, writeTimeout time.Duration) *Store {
	if writeTimeout <= 0 {
		writeTimeout = 2 * time.Second
	}
	return &Store{db: db, writeTimeout: writeTimeout}
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.createTableQuery().Exec(ctx); err != nil {
		return fmt.Errorf("create action_invocations: %w", err)
	}
	return nil
}

func (s *Store) Record(ctx context.Context, inv contractx.Invocation) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if _, err := s.insertQuery(inv).Exec(ctx); err != nil {
		return fmt.Errorf("insert invocation action=%s: %w", inv.Action, err)
	}
	return nil
}

// Recent returns the latest invocations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Invocation, error) {
	var rows []Invocation
	if err := s.recentQuery(&rows, limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select invocations: %w", err)
	}
	return rows, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTableQuery() *bun.CreateTableQuery {
	return s.db.NewCreateTable().Model((*Invocation)(nil)).IfNotExists()
}

func (s *Store) insertQuery(inv contractx.Invocation) *bun.InsertQuery {
	return s.db.NewInsert().Model(fromInvocation(inv))
}

func (s *Store) recentQuery(rows *[]Invocation, limit int) *bun.SelectQuery {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.db.NewSelect().Model(rows).OrderExpr("created_at DESC").Limit(limit)
}
