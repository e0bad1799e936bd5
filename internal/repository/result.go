package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Volkonik97/esport-arena-tracker/internal/domain"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// ResultRepository caches finished results so a failed results-feed fetch
// degrades to slightly stale data instead of an empty recent bucket.
type ResultRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewResultRepository(db *sql.DB, logger zerolog.Logger) *ResultRepository {
	return &ResultRepository{db: db, logger: logger}
}

func (r *ResultRepository) UpsertBatch(ctx context.Context, results []domain.ResultMatch) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, res := range results {
		if res.Winner == "" {
			continue
		}
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO results (id, start_time, team1, team2, tournament, winner, team1_score, team2_score, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (team1, team2, tournament, start_time) DO UPDATE SET
				winner = excluded.winner,
				team1_score = excluded.team1_score,
				team2_score = excluded.team2_score,
				updated_at = excluded.updated_at`,
			id, res.StartTime, res.Team1, res.Team2, res.Tournament,
			res.Winner, res.Team1Score, res.Team2Score, now, now)
		if err != nil {
			return fmt.Errorf("failed to upsert result: %w", err)
		}
	}

	return tx.Commit()
}

// GetSince returns cached results starting at or after since. Feed
// timestamps use the sortable "2006-01-02 15:04:05" layout, so the
// comparison happens directly on the stored strings.
func (r *ResultRepository) GetSince(ctx context.Context, since time.Time) ([]domain.ResultMatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT start_time, team1, team2, tournament, winner, team1_score, team2_score
		FROM results
		WHERE start_time >= ?
		ORDER BY start_time DESC`,
		since.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.ResultMatch{}
	for rows.Next() {
		var res domain.ResultMatch
		if err := rows.Scan(&res.StartTime, &res.Team1, &res.Team2, &res.Tournament,
			&res.Winner, &res.Team1Score, &res.Team2Score); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
