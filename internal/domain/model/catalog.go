package model

import "time"

// Category groups products on the storefront.
type Category struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Product is a sellable catalog entry. Price is in rupiah, weight in grams.
type Product struct {
	ID          int64
	CategoryID  int64
	Category    string
	Name        string
	Slug        string
	Description string
	Price       int64
	Weight      int
	Stock       int
	IsActive    bool
	Variants    []ProductVariant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant returns product variant by identifier.
func (p Product) Variant(id int64) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// ProductVariant overrides price, weight and stock of its product.
type ProductVariant struct {
	ID        int64
	ProductID int64
	Name      string
	Price     int64
	Weight    int
	Stock     int
}

// ProductSort lists supported catalog orderings.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortName      ProductSort = "name"
)

// ProductFilter narrows catalog listing.
type ProductFilter struct {
	CategorySlug    string
	Search          string
	MinPrice        int64
	MaxPrice        int64
	Sort            ProductSort
	Page            int
	PerPage         int
	IncludeInactive bool
}

// Offset returns number of rows skipped for current page.
func (f ProductFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PerPage
}

// ProductPage is a single page of catalog listing.
type ProductPage struct {
	Items   []Product
	Total   int
	Page    int
	PerPage int
}
