package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
)

func TestCartRepositoryGet(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}
	discountID := int64(3)
	variantID := int64(2)

	mock.ExpectQuery("INSERT INTO carts").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "discount_id"}).AddRow(int64(10), &discountID))
	mock.ExpectQuery("FROM cart_items ci").WithArgs(int64(10)).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "product_id", "variant_id", "name", "slug", "variant", "price", "quantity", "weight", "stock"}).
			AddRow(int64(1), int64(5), nil, "Kopi Gayo", "kopi-gayo", "", int64(85000), 2, 250, 10).
			AddRow(int64(2), int64(6), &variantID, "Batik Tulis", "batik-tulis", "XL", int64(375000), 1, 320, 1))

	cart, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ID != 10 || cart.DiscountID == nil || *cart.DiscountID != 3 {
		t.Fatalf("unexpected cart %+v", cart)
	}
	if len(cart.Items) != 2 || cart.Items[0].VariantID != nil || *cart.Items[1].VariantID != 2 {
		t.Fatalf("unexpected items %+v", cart.Items)
	}

	mock.ExpectQuery("INSERT INTO carts").WithArgs(int64(2)).WillReturnError(errors.New("boom"))
	if _, err := repo.Get(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}

	expectMet(t, mock)
}

func TestCartRepositoryMutations(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &cartRepository{storage: storage}
	variantID := int64(2)

	mock.ExpectQuery("INSERT INTO carts").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "discount_id"}).AddRow(int64(10), nil))
	mock.ExpectExec("ON CONFLICT").WithArgs(int64(10), int64(6), &variantID, int64(375000), 2).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.AddItem(context.Background(), 1, 6, &variantID, 375000, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE cart_items SET quantity").WithArgs(3, int64(4), int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateItemQuantity(context.Background(), 1, 4, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE cart_items SET quantity").WithArgs(3, int64(5), int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdateItemQuantity(context.Background(), 1, 5, 3); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected foreign item not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM cart_items").WithArgs(int64(4), int64(1)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.RemoveItem(context.Background(), 1, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("INSERT INTO carts").WithArgs(int64(1), (*int64)(nil)).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	if err := repo.SetDiscount(context.Background(), 1, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectMet(t, mock)
}
