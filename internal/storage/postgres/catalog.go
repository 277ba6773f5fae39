package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
)

// --- CategoryRepository implementation ---

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name, slug, created_at FROM categories ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	const query = `SELECT id, name, slug, created_at FROM categories WHERE id=$1`
	var c model.Category
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, name, slug string) (*model.Category, error) {
	const query = `INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id, created_at`
	c := model.Category{Name: name, Slug: slug}
	if err := r.storage.pool.QueryRow(ctx, query, name, slug).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepository) Update(ctx context.Context, id int64, name, slug string) (*model.Category, error) {
	const query = `UPDATE categories SET name=$1, slug=$2 WHERE id=$3 RETURNING created_at`
	c := model.Category{ID: id, Name: name, Slug: slug}
	if err := r.storage.pool.QueryRow(ctx, query, name, slug, id).Scan(&c.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Delete fails with ErrInUse while products still reference the category.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	return expectAffected(tag, err, domainErrors.ErrNotFound)
}

// --- ProductRepository implementation ---

const productColumns = `p.id, p.category_id, c.name, p.name, p.slug, p.description, p.price, p.weight, p.stock, p.is_active, p.created_at, p.updated_at`

var productOrder = map[model.ProductSort]string{
	model.SortNewest:    "p.created_at DESC, p.id DESC",
	model.SortPriceAsc:  "p.price ASC, p.id",
	model.SortPriceDesc: "p.price DESC, p.id",
	model.SortName:      "p.name ASC, p.id",
}

// productConditions renders WHERE clause and its positional arguments.
func productConditions(filter model.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if !filter.IncludeInactive {
		conds = append(conds, "p.is_active")
	}
	if filter.CategorySlug != "" {
		add("c.slug = $%d", filter.CategorySlug)
	}
	if filter.Search != "" {
		add("(p.name ILIKE $%[1]d OR p.description ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	if filter.MinPrice > 0 {
		add("p.price >= $%d", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		add("p.price <= $%d", filter.MaxPrice)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *productRepository) Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	where, args := productConditions(filter)
	const from = ` FROM products p JOIN categories c ON c.id = p.category_id`

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	order, ok := productOrder[filter.Sort]
	if !ok {
		order = productOrder[model.SortNewest]
	}
	args = append(args, filter.PerPage, filter.Offset())
	query := fmt.Sprintf(`SELECT %s%s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, from, where, order, len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products p JOIN categories c ON c.id = p.category_id WHERE p.slug=$1`
	return r.load(ctx, query, slug)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products p JOIN categories c ON c.id = p.category_id WHERE p.id=$1`
	return r.load(ctx, query, id)
}

// load reads a single product together with its variants.
func (r *productRepository) load(ctx context.Context, query string, arg any) (*model.Product, error) {
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, translate(err)
	}

	const variantsQuery = `SELECT id, product_id, name, price, weight, stock FROM product_variants WHERE product_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, variantsQuery, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v model.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.Weight, &v.Stock); err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (category_id, name, slug, description, price, weight, stock, is_active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		product.CategoryID, product.Name, product.Slug, product.Description,
		product.Price, product.Weight, product.Stock, product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `UPDATE products
                   SET category_id=$1, name=$2, slug=$3, description=$4, price=$5, weight=$6, stock=$7, is_active=$8, updated_at=NOW()
                   WHERE id=$9
                   RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		product.CategoryID, product.Name, product.Slug, product.Description,
		product.Price, product.Weight, product.Stock, product.IsActive, product.ID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return expectAffected(tag, err, domainErrors.ErrNotFound)
}

func (r *productRepository) CreateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error) {
	const query = `INSERT INTO product_variants (product_id, name, price, weight, stock) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.storage.pool.QueryRow(ctx, query, variant.ProductID, variant.Name, variant.Price, variant.Weight, variant.Stock).Scan(&variant.ID)
	if err != nil {
		err = translate(err)
		if errors.Is(err, domainErrors.ErrInUse) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

func (r *productRepository) UpdateVariant(ctx context.Context, variant model.ProductVariant) (*model.ProductVariant, error) {
	const query = `UPDATE product_variants SET name=$1, price=$2, weight=$3, stock=$4 WHERE id=$5 AND product_id=$6`
	tag, err := r.storage.pool.Exec(ctx, query, variant.Name, variant.Price, variant.Weight, variant.Stock, variant.ID, variant.ProductID)
	if err := expectAffected(tag, err, domainErrors.ErrNotFound); err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *productRepository) DeleteVariant(ctx context.Context, productID, variantID int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM product_variants WHERE id=$1 AND product_id=$2`, variantID, productID)
	return expectAffected(tag, err, domainErrors.ErrNotFound)
}

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Category, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.Weight, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
