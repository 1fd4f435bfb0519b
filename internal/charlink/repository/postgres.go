package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const bumpVersion = `
        UPDATE categories
        SET characteristics_version = characteristics_version + 1, updated_at = NOW()
        WHERE id IN (SELECT category_id FROM changed)
    `

func (r *PGRepository) List(ctx context.Context, categoryID int64) ([]model.LinkedCharacteristic, error) {
	query := `
        SELECT cc.category_id, cc.characteristic_id, cc.is_required, cc.show_in_key_specs, cc.order_index,
               ch.key, ch.type, ch.name_ru, ch.name_uz, ch.name_en, ch.options
        FROM category_characteristics cc
        JOIN characteristics ch ON ch.id = cc.characteristic_id
        WHERE cc.category_id = $1
        ORDER BY cc.order_index ASC, cc.characteristic_id ASC
    `
	out := []model.LinkedCharacteristic{}
	if err := r.DB.SelectContext(ctx, &out, query, categoryID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepository) Version(ctx context.Context, categoryID int64) (int, error) {
	var v int
	err := r.DB.GetContext(ctx, &v, `SELECT characteristics_version FROM categories WHERE id = $1`, categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("category %d: %w", categoryID, model.ErrNotFound)
	}
	return v, err
}

func (r *PGRepository) FindLink(ctx context.Context, categoryID, characteristicID int64) (*model.CategoryCharacteristic, error) {
	var l model.CategoryCharacteristic
	query := `SELECT * FROM category_characteristics WHERE category_id = $1 AND characteristic_id = $2`
	if err := r.DB.GetContext(ctx, &l, query, categoryID, characteristicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *PGRepository) Link(ctx context.Context, l model.CategoryCharacteristic) (bool, error) {
	query := `
        WITH changed AS (
            INSERT INTO category_characteristics (category_id, characteristic_id, is_required, show_in_key_specs, order_index)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (category_id, characteristic_id) DO NOTHING
            RETURNING category_id
        )` + bumpVersion
	res, err := r.DB.ExecContext(ctx, query,
		l.CategoryID, l.CharacteristicID, l.IsRequired, l.ShowInKeySpecs, l.OrderIndex)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PGRepository) UpdateLink(ctx context.Context, l model.CategoryCharacteristic) error {
	query := `
        WITH changed AS (
            UPDATE category_characteristics
            SET is_required = $3, show_in_key_specs = $4, order_index = $5
            WHERE category_id = $1 AND characteristic_id = $2
            RETURNING category_id
        )` + bumpVersion
	res, err := r.DB.ExecContext(ctx, query,
		l.CategoryID, l.CharacteristicID, l.IsRequired, l.ShowInKeySpecs, l.OrderIndex)
	if err != nil {
		return err
	}
	return expectRow(res, l.CategoryID, l.CharacteristicID)
}

func (r *PGRepository) Unlink(ctx context.Context, categoryID, characteristicID int64) error {
	query := `
        WITH changed AS (
            DELETE FROM category_characteristics
            WHERE category_id = $1 AND characteristic_id = $2
            RETURNING category_id
        )` + bumpVersion
	res, err := r.DB.ExecContext(ctx, query, categoryID, characteristicID)
	if err != nil {
		return err
	}
	return expectRow(res, categoryID, characteristicID)
}

// ReplaceAll bumps the version only if it still equals expectedVersion, then
// applies the diff between stored and desired links. Every SQL failure rolls
// the whole change back and surfaces as ErrSaveFailed.
func (r *PGRepository) ReplaceAll(ctx context.Context, categoryID int64, expectedVersion int, links []model.CategoryCharacteristic) (version int, err error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w: %w", model.ErrSaveFailed, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	err = tx.GetContext(ctx, &version, `
        UPDATE categories
        SET characteristics_version = characteristics_version + 1, updated_at = NOW()
        WHERE id = $1 AND characteristics_version = $2
        RETURNING characteristics_version
    `, categoryID, expectedVersion)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err = tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, categoryID); err != nil {
			return 0, fmt.Errorf("check category: %w: %w", model.ErrSaveFailed, err)
		}
		if !exists {
			err = fmt.Errorf("category %d: %w", categoryID, model.ErrNotFound)
			return 0, err
		}
		err = fmt.Errorf("category %d expected version %d: %w", categoryID, expectedVersion, model.ErrStaleVersion)
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("bump version: %w: %w", model.ErrSaveFailed, err)
	}

	var existing []model.CategoryCharacteristic
	if err = tx.SelectContext(ctx, &existing,
		`SELECT * FROM category_characteristics WHERE category_id = $1`, categoryID); err != nil {
		return 0, fmt.Errorf("load links: %w: %w", model.ErrSaveFailed, err)
	}

	diff := model.DiffLinks(existing, links)

	if len(diff.Delete) > 0 {
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM category_characteristics WHERE category_id = $1 AND characteristic_id = ANY($2)`,
			categoryID, pq.Array(diff.Delete)); err != nil {
			return 0, fmt.Errorf("delete links: %w: %w", model.ErrSaveFailed, err)
		}
	}
	for _, l := range diff.Update {
		if _, err = tx.ExecContext(ctx, `
            UPDATE category_characteristics
            SET is_required = $3, show_in_key_specs = $4, order_index = $5
            WHERE category_id = $1 AND characteristic_id = $2
        `, categoryID, l.CharacteristicID, l.IsRequired, l.ShowInKeySpecs, l.OrderIndex); err != nil {
			return 0, fmt.Errorf("update link %d: %w: %w", l.CharacteristicID, model.ErrSaveFailed, err)
		}
	}
	for _, l := range diff.Insert {
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO category_characteristics (category_id, characteristic_id, is_required, show_in_key_specs, order_index)
            VALUES ($1, $2, $3, $4, $5)
        `, categoryID, l.CharacteristicID, l.IsRequired, l.ShowInKeySpecs, l.OrderIndex); err != nil {
			return 0, fmt.Errorf("insert link %d: %w: %w", l.CharacteristicID, model.ErrSaveFailed, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w: %w", model.ErrSaveFailed, err)
	}
	return version, nil
}

// CopyFrom adds every link of source to target, skipping characteristics the
// target already has, and returns how many were added.
func (r *PGRepository) CopyFrom(ctx context.Context, sourceID, targetID int64) (int, error) {
	query := `
        WITH changed AS (
            INSERT INTO category_characteristics (category_id, characteristic_id, is_required, show_in_key_specs, order_index)
            SELECT $2, characteristic_id, is_required, show_in_key_specs, order_index
            FROM category_characteristics
            WHERE category_id = $1
            ON CONFLICT (category_id, characteristic_id) DO NOTHING
            RETURNING category_id
        ), bumped AS (` + bumpVersion + `)
        SELECT count(*) FROM changed
    `
	var n int
	if err := r.DB.GetContext(ctx, &n, query, sourceID, targetID); err != nil {
		return 0, err
	}
	return n, nil
}

func expectRow(res sql.Result, categoryID, characteristicID int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("link %d/%d: %w", categoryID, characteristicID, model.ErrNotFound)
	}
	return nil
}
