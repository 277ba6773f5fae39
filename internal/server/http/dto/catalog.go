package dto

import "time"

// CategoryRequest creates or renames a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse describes a catalog category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// VariantRequest creates or updates a product variant.
type VariantRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Price  int64  `json:"price" validate:"gt=0"`
	Weight int    `json:"weight" validate:"gt=0"`
	Stock  int    `json:"stock" validate:"gte=0"`
}

// VariantResponse describes a product variant.
type VariantResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Weight int    `json:"weight"`
	Stock  int    `json:"stock"`
}

// ProductRequest creates or updates a product from the back office.
type ProductRequest struct {
	CategoryID  int64  `json:"category_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Price       int64  `json:"price" validate:"gt=0"`
	Weight      int    `json:"weight" validate:"gt=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	IsActive    *bool  `json:"is_active"`
}

// ProductResponse describes a product with its variants.
type ProductResponse struct {
	ID          int64             `json:"id"`
	CategoryID  int64             `json:"category_id"`
	Category    string            `json:"category"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Price       int64             `json:"price"`
	Weight      int               `json:"weight"`
	Stock       int               `json:"stock"`
	IsActive    bool              `json:"is_active"`
	Variants    []VariantResponse `json:"variants,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ProductQuery is the storefront listing filter taken from the query string.
type ProductQuery struct {
	Category string `form:"category" validate:"omitempty,max=100"`
	Search   string `form:"q" validate:"omitempty,max=100"`
	MinPrice int64  `form:"min_price" validate:"gte=0"`
	MaxPrice int64  `form:"max_price" validate:"gte=0"`
	Sort     string `form:"sort" validate:"omitempty,oneof=newest price_asc price_desc name"`
	Page     int    `form:"page" validate:"gte=0"`
	PerPage  int    `form:"per_page" validate:"gte=0,lte=100"`
}

// ProductPageResponse is a page of catalog listing.
type ProductPageResponse struct {
	Items   []ProductResponse `json:"items"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}
