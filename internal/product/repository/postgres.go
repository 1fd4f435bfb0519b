package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	whereClause, args := buildWhere(f)

	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM products p"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT p.* FROM products p%s ORDER BY %s LIMIT %d OFFSET %d",
		whereClause, orderBy(f.Sort), f.Limit, f.Offset())

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) UpdateSpecs(ctx context.Context, id int64, specs model.Specs) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE products SET specs = $1, updated_at = NOW() WHERE id = $2`, specs, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("product %d: %w", id, model.ErrNotFound)
	}
	return nil
}

func (r *PGRepository) CharacteristicTypes(ctx context.Context) (map[string]model.CharacteristicType, error) {
	var rows []struct {
		Key  string                   `db:"key"`
		Type model.CharacteristicType `db:"type"`
	}
	if err := r.DB.SelectContext(ctx, &rows, `SELECT key, type FROM characteristics`); err != nil {
		return nil, err
	}
	types := make(map[string]model.CharacteristicType, len(rows))
	for _, row := range rows {
		types[row.Key] = row.Type
	}
	return types, nil
}
