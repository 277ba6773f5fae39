package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
)

var discountColumnNames = []string{
	"id", "code", "type", "value", "max_discount_amount", "minimum_purchase", "usage_limit", "usage_count",
	"starts_at", "ends_at", "is_active", "created_at",
}

func TestDiscountRepositoryReads(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &discountRepository{storage: storage}
	now := time.Now()
	maxAmount := int64(25000)
	limit := 100

	mock.ExpectQuery("FROM discounts WHERE code=").WithArgs("MERDEKA").WillReturnRows(
		pgxmockv3.NewRows(discountColumnNames).
			AddRow(int64(3), "MERDEKA", model.DiscountPercentage, decimal.NewFromInt(17), &maxAmount, int64(100000), &limit, 12, nil, nil, true, now))
	discount, err := repo.GetByCode(context.Background(), "MERDEKA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discount.MaxDiscountAmount == nil || *discount.MaxDiscountAmount != 25000 || *discount.UsageLimit != 100 || discount.StartsAt != nil {
		t.Fatalf("unexpected discount %+v", discount)
	}

	mock.ExpectQuery("FROM discounts WHERE id=").WithArgs(int64(4)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 4); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM discounts ORDER BY").WillReturnRows(
		pgxmockv3.NewRows(discountColumnNames).
			AddRow(int64(3), "MERDEKA", model.DiscountPercentage, decimal.NewFromInt(17), nil, int64(0), nil, 0, nil, nil, true, now).
			AddRow(int64(2), "ONGKIR", model.DiscountFixed, decimal.NewFromInt(10000), nil, int64(0), nil, 0, nil, nil, false, now))
	list, err := repo.List(context.Background())
	if err != nil || len(list) != 2 || list[1].Type != model.DiscountFixed {
		t.Fatalf("unexpected discounts %v %v", list, err)
	}

	mock.ExpectQuery("FROM discount_usages").WithArgs(int64(3), int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"exists"}).AddRow(true))
	used, err := repo.HasUsed(context.Background(), 3, 1)
	if err != nil || !used {
		t.Fatalf("expected usage, got %v %v", used, err)
	}

	expectMet(t, mock)
}

func TestDiscountRepositoryWrites(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &discountRepository{storage: storage}
	now := time.Now()

	discount := model.Discount{Code: "ONGKIR", Type: model.DiscountFixed, Value: decimal.NewFromInt(10000), IsActive: true}
	mock.ExpectQuery("INSERT INTO discounts").
		WithArgs("ONGKIR", model.DiscountFixed, decimal.NewFromInt(10000), (*int64)(nil), int64(0), (*int)(nil), (*time.Time)(nil), (*time.Time)(nil), true).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "usage_count", "created_at"}).AddRow(int64(2), 0, now))
	created, err := repo.Create(context.Background(), discount)
	if err != nil || created.ID != 2 {
		t.Fatalf("unexpected create result %v %v", created, err)
	}

	mock.ExpectQuery("INSERT INTO discounts").WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), discount); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	discount.ID = 2
	discount.IsActive = false
	mock.ExpectQuery("UPDATE discounts").
		WillReturnRows(pgxmockv3.NewRows([]string{"usage_count", "created_at"}).AddRow(5, now))
	updated, err := repo.Update(context.Background(), discount)
	if err != nil || updated.UsageCount != 5 || updated.IsActive {
		t.Fatalf("unexpected update result %v %v", updated, err)
	}

	mock.ExpectExec("DELETE FROM discounts").WithArgs(int64(2)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectMet(t, mock)
}
