package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

var linkColumns = []string{"category_id", "characteristic_id", "is_required", "show_in_key_specs", "order_index"}

func desired() []model.CategoryCharacteristic {
	return []model.CategoryCharacteristic{
		{CategoryID: 1, CharacteristicID: 2, ShowInKeySpecs: true, OrderIndex: 1},
	}
}

func TestReplaceAllAppliesDiff(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE categories\s+SET characteristics_version = characteristics_version \+ 1`).
		WithArgs(int64(1), 4).
		WillReturnRows(sqlmock.NewRows([]string{"characteristics_version"}).AddRow(5))
	mock.ExpectQuery(`SELECT \* FROM category_characteristics WHERE category_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(linkColumns).AddRow(1, 1, false, false, 0))
	mock.ExpectExec(`DELETE FROM category_characteristics WHERE category_id = \$1 AND characteristic_id = ANY\(\$2\)`).
		WithArgs(int64(1), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO category_characteristics`).
		WithArgs(int64(1), int64(2), false, true, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	v, err := repo.ReplaceAll(context.Background(), 1, 4, desired())
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if v != 5 {
		t.Errorf("version = %d, want 5", v)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReplaceAllRollsBackOnFailure(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE categories`).
		WithArgs(int64(1), 4).
		WillReturnRows(sqlmock.NewRows([]string{"characteristics_version"}).AddRow(5))
	mock.ExpectQuery(`SELECT \* FROM category_characteristics`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(linkColumns))
	mock.ExpectExec(`INSERT INTO category_characteristics`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.ReplaceAll(context.Background(), 1, 4, desired())
	if !errors.Is(err, model.ErrSaveFailed) {
		t.Fatalf("err = %v, want ErrSaveFailed", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReplaceAllStaleVersion(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE categories`).
		WithArgs(int64(1), 3).
		WillReturnRows(sqlmock.NewRows([]string{"characteristics_version"}))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.ReplaceAll(context.Background(), 1, 3, desired())
	if !errors.Is(err, model.ErrStaleVersion) {
		t.Fatalf("err = %v, want ErrStaleVersion", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReplaceAllMissingCategory(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE categories`).
		WillReturnRows(sqlmock.NewRows([]string{"characteristics_version"}))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := repo.ReplaceAll(context.Background(), 9, 0, nil)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLinkReportsExistingPair(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`ON CONFLICT \(category_id, characteristic_id\) DO NOTHING`).
		WithArgs(int64(1), int64(2), false, false, 0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := repo.Link(context.Background(), model.CategoryCharacteristic{CategoryID: 1, CharacteristicID: 2})
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Error("added = true for an existing pair")
	}
}

func TestUnlinkMissingIsNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`DELETE FROM category_characteristics`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Unlink(context.Background(), 1, 2); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCopyFromReturnsCount(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO category_characteristics .*SELECT \$2, characteristic_id`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CopyFrom(context.Background(), 1, 2)
	if err != nil || n != 3 {
		t.Fatalf("n = %d, err = %v", n, err)
	}
}
