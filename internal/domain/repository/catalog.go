package repository

import (
	"context"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

// CategoryRepository manages product categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, name, slug string) (*model.Category, error)
	Update(ctx context.Context, id int64, name, slug string) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository manages products and their variants.
type ProductRepository interface {
	Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	Update(ctx context.Context, product model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
	CreateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error)
	UpdateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error)
	DeleteVariant(ctx context.Context, productID, variantID int64) error
}
