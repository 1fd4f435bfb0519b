package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/stats"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

var countQueries = map[stats.Counter]string{
	stats.CounterCategories:      `SELECT COUNT(*) FROM categories WHERE is_active = TRUE`,
	stats.CounterCharacteristics: `SELECT COUNT(*) FROM characteristics`,
	stats.CounterProducts:        `SELECT COUNT(*) FROM products WHERE is_active = TRUE`,
	stats.CounterFilters:         `SELECT COUNT(*) FROM filters`,
}

func (r *PGRepository) Count(ctx context.Context, c stats.Counter) (int, error) {
	query, ok := countQueries[c]
	if !ok {
		return 0, fmt.Errorf("unknown counter %q", c)
	}
	var n int
	if err := r.DB.GetContext(ctx, &n, query); err != nil {
		return 0, err
	}
	return n, nil
}
