package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/queue-monitor/internal/domain"
)

// StageRepository reads workflow stage reference data.
type StageRepository interface {
	ListStages(ctx context.Context) ([]domain.Stage, error)
}

type stageRepository struct {
	pool *pgxpool.Pool
}

// NewStageRepository instantiates repository.
func NewStageRepository(pool *pgxpool.Pool) StageRepository {
	return &stageRepository{pool: pool}
}

func (r *stageRepository) ListStages(ctx context.Context) ([]domain.Stage, error) {
	const query = `SELECT id, number, name FROM stages ORDER BY number`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stages []domain.Stage
	for rows.Next() {
		var stage domain.Stage
		if err := rows.Scan(&stage.ID, &stage.Number, &stage.Name); err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	return stages, rows.Err()
}
