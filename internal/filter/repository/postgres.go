package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const selectFilters = `
        SELECT f.*, ch.key AS characteristic_key
        FROM filters f
        LEFT JOIN characteristics ch ON ch.id = f.characteristic_id
    `

func (r *PGRepository) Create(ctx context.Context, f *model.FilterDefinition) error {
	query := `
        INSERT INTO filters (
            subcategory_id, characteristic_id, source_type, key, ui_type,
            label_ru, label_uz, label_en, min_value, max_value, is_multiselect, order_index
        )
        VALUES (
            :subcategory_id, :characteristic_id, :source_type, :key, :ui_type,
            :label_ru, :label_uz, :label_en, :min_value, :max_value, :is_multiselect, :order_index
        )
        RETURNING id, created_at, updated_at
    `
	rows, err := r.DB.NamedQueryContext(ctx, query, f)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	}
	return rows.Err()
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.FilterDefinition, error) {
	var f model.FilterDefinition
	if err := r.DB.GetContext(ctx, &f, selectFilters+` WHERE f.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGRepository) FindBySubcategory(ctx context.Context, subcategoryID int64) ([]model.FilterDefinition, error) {
	out := []model.FilterDefinition{}
	query := selectFilters + ` WHERE f.subcategory_id = $1 ORDER BY f.order_index ASC, f.id ASC`
	if err := r.DB.SelectContext(ctx, &out, query, subcategoryID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepository) Update(ctx context.Context, f *model.FilterDefinition) error {
	query := `
        UPDATE filters
        SET ui_type = :ui_type,
            label_ru = :label_ru,
            label_uz = :label_uz,
            label_en = :label_en,
            min_value = :min_value,
            max_value = :max_value,
            is_multiselect = :is_multiselect,
            order_index = :order_index,
            updated_at = NOW()
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, f)
	if err != nil {
		return err
	}
	return expectRow(res, f.ID)
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM filters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(res, id)
}

func expectRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("filter %d: %w", id, model.ErrNotFound)
	}
	return nil
}
