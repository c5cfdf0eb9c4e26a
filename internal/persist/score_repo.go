package persist

import (
	"context"
	"fmt"
	"time"
)

// ScoreRow is one finished game. Only results are stored, never world state.
type ScoreRow struct {
	PlayerName string
	LevelName  string
	Points     int
	Apples     int
	Length     int
	Ticks      uint64
	PlayedAt   time.Time
}

type ScoreRepo struct {
	db *DB
}

func NewScoreRepo(db *DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

func (r *ScoreRepo) Insert(ctx context.Context, row ScoreRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO scores (player_name, level_name, points, apples, length, ticks)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		row.PlayerName, row.LevelName, row.Points, row.Apples, row.Length, int64(row.Ticks),
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// Top returns the best n scores on a level, highest first.
func (r *ScoreRepo) Top(ctx context.Context, level string, n int) ([]ScoreRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT player_name, level_name, points, apples, length, ticks, played_at
		 FROM scores WHERE level_name = $1
		 ORDER BY points DESC, played_at ASC
		 LIMIT $2`, level, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreRow
	for rows.Next() {
		var row ScoreRow
		var ticks int64
		if err := rows.Scan(&row.PlayerName, &row.LevelName, &row.Points, &row.Apples,
			&row.Length, &ticks, &row.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		row.Ticks = uint64(ticks)
		out = append(out, row)
	}
	return out, rows.Err()
}
