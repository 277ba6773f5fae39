package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/domain/repository"
)

const (
	defaultPerPage = 12
	maxPerPage     = 100
)

// CatalogUseCase serves storefront browsing and back-office catalog editing.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(categories repository.CategoryRepository, products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, products: products}
}

// Categories lists all categories.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}

// CreateCategory stores category with slug derived from name.
func (u *CatalogUseCase) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	slug := Slugify(name)
	if slug == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	return u.categories.Create(ctx, name, slug)
}

// UpdateCategory renames category and refreshes its slug.
func (u *CatalogUseCase) UpdateCategory(ctx context.Context, id int64, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	slug := Slugify(name)
	if slug == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	return u.categories.Update(ctx, id, name, slug)
}

// DeleteCategory removes category.
func (u *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return u.categories.Delete(ctx, id)
}

func normalizeFilter(filter model.ProductFilter) model.ProductFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = defaultPerPage
	}
	if filter.PerPage > maxPerPage {
		filter.PerPage = maxPerPage
	}
	switch filter.Sort {
	case model.SortNewest, model.SortPriceAsc, model.SortPriceDesc, model.SortName:
	default:
		filter.Sort = model.SortNewest
	}
	if filter.MinPrice < 0 {
		filter.MinPrice = 0
	}
	if filter.MaxPrice < 0 {
		filter.MaxPrice = 0
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return filter
}

// Products returns a page of active products.
func (u *CatalogUseCase) Products(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	filter = normalizeFilter(filter)
	filter.IncludeInactive = false
	return u.search(ctx, filter)
}

// AdminProducts returns a page of products including inactive ones.
func (u *CatalogUseCase) AdminProducts(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	filter = normalizeFilter(filter)
	filter.IncludeInactive = true
	return u.search(ctx, filter)
}

func (u *CatalogUseCase) search(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	items, total, err := u.products.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.ProductPage{Items: items, Total: total, Page: filter.Page, PerPage: filter.PerPage}, nil
}

// Product returns an active product with its variants.
func (u *CatalogUseCase) Product(ctx context.Context, slug string) (*model.Product, error) {
	product, err := u.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domainErrors.ErrNotFound
	}
	return product, nil
}

// ProductByID returns product regardless of its visibility.
func (u *CatalogUseCase) ProductByID(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

func prepareProduct(product model.Product) (model.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	} else {
		product.Slug = Slugify(product.Slug)
	}
	if product.Slug == "" {
		return product, domainErrors.ErrInvalidInput
	}
	if product.Price <= 0 {
		return product, domainErrors.ErrInvalidAmount
	}
	if product.Stock < 0 || product.Weight < 0 {
		return product, domainErrors.ErrInvalidQuantity
	}
	return product, nil
}

// CreateProduct stores a new product.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	product, err := prepareProduct(product)
	if err != nil {
		return nil, err
	}
	if _, err := u.categories.GetByID(ctx, product.CategoryID); err != nil {
		return nil, err
	}
	return u.products.Create(ctx, product)
}

// UpdateProduct replaces product attributes.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	product, err := prepareProduct(product)
	if err != nil {
		return nil, err
	}
	if _, err := u.categories.GetByID(ctx, product.CategoryID); err != nil {
		return nil, err
	}
	return u.products.Update(ctx, product)
}

// DeleteProduct removes product with its variants.
func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}

func validateVariant(variant model.ProductVariant) error {
	if strings.TrimSpace(variant.Name) == "" {
		return domainErrors.ErrInvalidInput
	}
	if variant.Price <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	if variant.Stock < 0 || variant.Weight < 0 {
		return domainErrors.ErrInvalidQuantity
	}
	return nil
}

// CreateVariant adds variant to product.
func (u *CatalogUseCase) CreateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error) {
	if err := validateVariant(variant); err != nil {
		return nil, err
	}
	if _, err := u.products.GetByID(ctx, variant.ProductID); err != nil {
		return nil, err
	}
	return u.products.CreateVariant(ctx, variant)
}

// UpdateVariant replaces variant attributes.
func (u *CatalogUseCase) UpdateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error) {
	if err := validateVariant(variant); err != nil {
		return nil, err
	}
	return u.products.UpdateVariant(ctx, variant)
}

// DeleteVariant removes variant from product.
func (u *CatalogUseCase) DeleteVariant(ctx context.Context, productID, variantID int64) error {
	return u.products.DeleteVariant(ctx, productID, variantID)
}
