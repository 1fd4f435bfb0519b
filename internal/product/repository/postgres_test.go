package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
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

var productColumns = []string{
	"id", "category_id", "name", "slug", "brand", "price", "stock", "status",
	"color_type", "is_new", "is_active", "specs", "created_at", "updated_at",
}

func TestFindAllPagesAndScansSpecs(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	f := &dto.ProductFilters{CategoryID: id(1), Page: 2, Limit: 10}
	mock.ExpectQuery(`SELECT count\(\*\) FROM products p WHERE`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`SELECT p\.\* FROM products p WHERE .* ORDER BY p\.id DESC LIMIT 10 OFFSET 10`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(5, 2, "Omen 16", "omen-16", "HP", 1500.0, 3, "in_stock", nil, true, true, []byte(`{"ram":16,"gpu":"RTX 4060"}`), now, now))

	products, total, err := repo.FindAll(context.Background(), f)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if total != 11 || len(products) != 1 {
		t.Fatalf("total = %d, products = %d", total, len(products))
	}
	p := products[0]
	if p.Specs["ram"] != model.NumberValue(16) || p.Specs["gpu"] != model.TextValue("RTX 4060") {
		t.Errorf("specs = %+v", p.Specs)
	}
	if p.ColorType != nil {
		t.Errorf("color_type = %v", *p.ColorType)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpdateSpecsMissingProduct(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(`UPDATE products SET specs = \$1`).
		WithArgs(sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSpecs(context.Background(), 3, model.Specs{"ram": model.NumberValue(8)})
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCharacteristicTypes(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`SELECT key, type FROM characteristics`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "type"}).
			AddRow("ram", "number").
			AddRow("touchscreen", "boolean"))

	types, err := repo.CharacteristicTypes(context.Background())
	if err != nil {
		t.Fatalf("CharacteristicTypes: %v", err)
	}
	if types["ram"] != model.CharacteristicNumber || types["touchscreen"] != model.CharacteristicBoolean {
		t.Errorf("types = %v", types)
	}
}
