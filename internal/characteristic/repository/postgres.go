package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/characteristic/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Characteristic) error {
	query := `
        INSERT INTO characteristics (key, type, name_ru, name_uz, name_en, is_filterable, options)
        VALUES (:key, :type, :name_ru, :name_uz, :name_en, :is_filterable, :options)
        RETURNING id, created_at, updated_at
    `
	rows, err := r.DB.NamedQueryContext(ctx, query, c)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	}
	return rows.Err()
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Characteristic, error) {
	var c model.Characteristic
	err := r.DB.GetContext(ctx, &c, `SELECT * FROM characteristics WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CharacteristicFilters) ([]model.Characteristic, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Type != "" {
		conditions = append(conditions, "type = :type")
		args["type"] = f.Type
	}
	if f.Filterable != nil {
		conditions = append(conditions, "is_filterable = :is_filterable")
		args["is_filterable"] = *f.Filterable
	}
	if f.Search != "" {
		conditions = append(conditions, "(key ILIKE :search OR name_ru ILIKE :search OR name_en ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	query := "SELECT * FROM characteristics"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	out := []model.Characteristic{}
	if err := nstmt.SelectContext(ctx, &out, args); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes everything except key.
func (r *PGRepository) Update(ctx context.Context, c *model.Characteristic) error {
	query := `
        UPDATE characteristics
        SET type = :type,
            name_ru = :name_ru,
            name_uz = :name_uz,
            name_en = :name_en,
            is_filterable = :is_filterable,
            options = :options,
            updated_at = NOW()
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, c)
	if err != nil {
		return err
	}
	return expectRow(res, "characteristic", c.ID)
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM characteristics WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(res, "characteristic", id)
}

func (r *PGRepository) CountLinks(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n,
		`SELECT count(*) FROM category_characteristics WHERE characteristic_id = $1`, id)
	return n, err
}

func expectRow(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, model.ErrNotFound)
	}
	return nil
}
