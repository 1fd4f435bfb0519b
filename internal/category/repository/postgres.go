package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (parent_id, slug, name_ru, name_uz, name_en, icon, order_index, is_active)
        VALUES (:parent_id, :slug, :name_ru, :name_uz, :name_en, :icon, :order_index, :is_active)
        RETURNING id, characteristics_version, created_at, updated_at
    `
	rows, err := r.DB.NamedQueryContext(ctx, query, c)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		return rows.Scan(&c.ID, &c.CharacteristicsVersion, &c.CreatedAt, &c.UpdatedAt)
	}
	return rows.Err()
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	var categories []model.Category
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.RootOnly {
		conditions = append(conditions, "parent_id IS NULL")
	} else if f.ParentID != nil {
		conditions = append(conditions, "parent_id = :parent_id")
		args["parent_id"] = *f.ParentID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM categories" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	query := "SELECT * FROM categories" + whereClause + " ORDER BY order_index ASC, id ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &categories, args); err != nil {
		return nil, 0, err
	}
	return categories, count, nil
}

func (r *PGRepository) FindActiveWithCounts(ctx context.Context) ([]model.CategoryCounts, error) {
	query := `
        SELECT c.*,
            (SELECT count(*) FROM products p
              WHERE p.category_id = c.id AND p.is_active) AS direct_product_count,
            (SELECT count(*) FROM category_characteristics cc
              WHERE cc.category_id = c.id) AS characteristic_count
        FROM categories c
        WHERE c.is_active
        ORDER BY c.order_index ASC, c.id ASC
    `
	var out []model.CategoryCounts
	if err := r.DB.SelectContext(ctx, &out, query); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepository) CountChildren(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, `SELECT count(*) FROM categories WHERE parent_id = $1`, id)
	return n, err
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET parent_id = :parent_id,
            slug = :slug,
            name_ru = :name_ru,
            name_uz = :name_uz,
            name_en = :name_en,
            icon = :icon,
            order_index = :order_index,
            is_active = :is_active,
            updated_at = NOW()
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, c)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("category %d: %w", c.ID, model.ErrNotFound)
	}
	return nil
}
