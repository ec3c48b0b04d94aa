package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

// PostgresRepository stores activities and participants in PostgreSQL.
// Participant order is the order of their generated ids, i.e. signup order.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every activity with its participants in signup order.
func (r *PostgresRepository) List(ctx context.Context) (model.Catalog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.name, a.description, a.schedule, a.max_participants, p.email
		 FROM activities a
		 LEFT JOIN participants p ON p.activity_name = a.name
		 ORDER BY a.name, p.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	catalog := model.Catalog{}
	for rows.Next() {
		var (
			name    string
			details model.ActivityDetails
			email   *string
		)
		if err := rows.Scan(&name, &details.Description, &details.Schedule, &details.MaxParticipants, &email); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		existing, ok := catalog[name]
		if !ok {
			details.Participants = []string{}
			existing = details
		}
		if email != nil {
			existing.Participants = append(existing.Participants, *email)
		}
		catalog[name] = existing
	}
	return catalog, rows.Err()
}

// AddParticipant enrols email inside a transaction.
//
// The activity row is locked with SELECT … FOR UPDATE before the duplicate
// and capacity checks, so two concurrent signups for the same activity are
// serialised and cannot both take the last spot.
func (r *PostgresRepository) AddParticipant(ctx context.Context, activity, email string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var maxParticipants int
	err = tx.QueryRow(ctx,
		`SELECT max_participants FROM activities WHERE name = $1 FOR UPDATE`,
		activity,
	).Scan(&maxParticipants)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock activity row: %w", err)
	}

	var enrolled, duplicate int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE email = $2)
		 FROM participants WHERE activity_name = $1`,
		activity, email,
	).Scan(&enrolled, &duplicate)
	if err != nil {
		return fmt.Errorf("count participants: %w", err)
	}
	if duplicate > 0 {
		return ErrAlreadySignedUp
	}
	if enrolled >= maxParticipants {
		return ErrActivityFull
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO participants (activity_name, email) VALUES ($1, $2)`,
		activity, email,
	); err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RemoveParticipant deletes one enrolment.
func (r *PostgresRepository) RemoveParticipant(ctx context.Context, activity, email string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists int
	err = tx.QueryRow(ctx, `SELECT 1 FROM activities WHERE name = $1 FOR UPDATE`, activity).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock activity row: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM participants WHERE activity_name = $1 AND email = $2`,
		activity, email,
	)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotSignedUp
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Seed loads catalog into an empty database. A database that already holds
// activities is left untouched.
func (r *PostgresRepository) Seed(ctx context.Context, catalog model.Catalog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var count int
	if err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM activities`).Scan(&count); err != nil {
		return fmt.Errorf("count activities: %w", err)
	}
	if count > 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, name := range catalog.Names() {
		details := catalog[name]
		batch.Queue(
			`INSERT INTO activities (name, description, schedule, max_participants) VALUES ($1, $2, $3, $4)`,
			name, details.Description, details.Schedule, details.MaxParticipants,
		)
		for _, email := range details.Participants {
			batch.Queue(`INSERT INTO participants (activity_name, email) VALUES ($1, $2)`, name, email)
		}
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
