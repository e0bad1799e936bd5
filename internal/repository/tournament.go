package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Volkonik97/esport-arena-tracker/internal/domain"
	"github.com/rs/zerolog"
)

type TournamentRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewTournamentRepository(db *sql.DB, logger zerolog.Logger) *TournamentRepository {
	return &TournamentRepository{db: db, logger: logger}
}

func (r *TournamentRepository) UpsertBatch(ctx context.Context, tournaments []domain.Tournament) error {
	if len(tournaments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, t := range tournaments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tournaments (overview_page, name, year, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (overview_page) DO UPDATE SET
				name = excluded.name,
				year = excluded.year,
				updated_at = excluded.updated_at`,
			t.OverviewPage, t.Name, t.Year, now, now)
		if err != nil {
			return fmt.Errorf("failed to upsert tournament: %w", err)
		}
	}

	return tx.Commit()
}

func (r *TournamentRepository) GetByYear(ctx context.Context, year string) ([]domain.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT overview_page, name, year
		FROM tournaments
		WHERE year >= ?
		ORDER BY name`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := []domain.Tournament{}
	for rows.Next() {
		var t domain.Tournament
		if err := rows.Scan(&t.OverviewPage, &t.Name, &t.Year); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

// ShouldRefresh reports whether the named resource is stale relative to ttl.
// A resource never marked refreshed is always stale.
func (r *TournamentRepository) ShouldRefresh(ctx context.Context, resource string, ttl time.Duration) (bool, error) {
	var refreshedAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT refreshed_at FROM refreshes WHERE resource = ?`, resource).Scan(&refreshedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return time.Since(refreshedAt) > ttl, nil
}

func (r *TournamentRepository) MarkRefreshed(ctx context.Context, resource string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refreshes (resource, refreshed_at)
		VALUES (?, ?)
		ON CONFLICT (resource) DO UPDATE SET refreshed_at = excluded.refreshed_at`,
		resource, at)
	if err != nil {
		return fmt.Errorf("failed to mark refresh: %w", err)
	}
	return nil
}
