package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
)

const createTableQuery = `
CREATE TABLE IF NOT EXISTS assessment_audit (
	id                 BIGSERIAL PRIMARY KEY,
	request_id         TEXT NOT NULL,
	session_id         TEXT,
	status             TEXT NOT NULL,
	category           TEXT,
	suggested_category TEXT,
	risk_level         TEXT,
	error              TEXT,
	duration_ms        BIGINT NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertQuery = `
INSERT INTO assessment_audit
	(request_id, session_id, status, category, suggested_category, risk_level, error, duration_ms)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRecorder appends one row per assessment result.
type PostgresRecorder struct {
	db   execer
	pool *pgxpool.Pool
}

func NewPostgresRecorder(ctx context.Context, databaseURL string) (*PostgresRecorder, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRecorder{db: pool, pool: pool}, nil
}

// Migrate creates the audit table if it does not exist.
func (r *PostgresRecorder) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createTableQuery); err != nil {
		return fmt.Errorf("failed to create audit table: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Record(ctx context.Context, result models.AssessmentResult) error {
	var riskLevel string
	if result.Assessment != nil {
		riskLevel = string(result.Assessment.RiskLevel)
	}

	_, err := r.db.Exec(ctx, insertQuery,
		result.ID,
		result.SessionID,
		string(result.Status),
		result.Scope.Category,
		result.SuggestedCategory,
		riskLevel,
		result.Error,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry %s: %w", result.ID, err)
	}
	return nil
}

func (r *PostgresRecorder) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// NopRecorder discards results. It is used when no database is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, models.AssessmentResult) error {
	return nil
}
