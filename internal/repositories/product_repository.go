package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/catalog-admin/internal/models"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	"github.com/lib/pq"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

// document columns stored as JSONB
type productDocuments struct {
	inventory      []byte
	seo            []byte
	images         []byte
	specifications []byte
	compatibility  []byte
	videos         []byte
	ratings        []byte
}

func marshalDocuments(p *models.Product) (*productDocuments, error) {
	var docs productDocuments
	var err error

	targets := []struct {
		name string
		dst  *[]byte
		src  any
	}{
		{"inventory", &docs.inventory, p.Inventory},
		{"seo", &docs.seo, p.SEO},
		{"images", &docs.images, nonNil(p.Images)},
		{"specifications", &docs.specifications, nonNil(p.Specifications)},
		{"compatibility", &docs.compatibility, nonNil(p.Compatibility)},
		{"videos", &docs.videos, nonNil(p.Videos)},
		{"ratings", &docs.ratings, p.Ratings},
	}

	for _, t := range targets {
		if *t.dst, err = json.Marshal(t.src); err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", t.name, err)
		}
	}

	return &docs, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	docs, err := marshalDocuments(product)
	if err != nil {
		return err
	}

	query := `INSERT INTO products (category_id, name, description, short_description, sku, brand, price, compare_at_price, featured, status, tags, inventory, seo, images, specifications, compatibility, videos, ratings)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			  RETURNING id, created_at, updated_at
	`

	err = r.DB.QueryRowContext(dbCtx, query,
		product.CategoryID, product.Name, product.Description, product.ShortDescription, product.SKU, product.Brand,
		product.Price, product.CompareAtPrice, product.Featured, product.Status, pq.Array(product.Tags),
		docs.inventory, docs.seo, docs.images, docs.specifications, docs.compatibility, docs.videos, docs.ratings,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
        SELECT p.id, p.category_id, p.name, p.description, p.short_description, p.sku, p.brand,
               p.price, p.compare_at_price, p.featured, p.status, p.tags,
               p.inventory, p.seo, p.images, p.specifications, p.compatibility, p.videos, p.ratings,
               p.created_at, p.updated_at,
               c.id, c.name
        FROM products p
        LEFT JOIN categories c ON p.category_id = c.id
        WHERE p.id = $1`

	product := &models.Product{}
	var docs productDocuments
	var categoryID, categoryName sql.NullString

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&product.ID, &product.CategoryID, &product.Name, &product.Description, &product.ShortDescription, &product.SKU, &product.Brand,
		&product.Price, &product.CompareAtPrice, &product.Featured, &product.Status, pq.Array(&product.Tags),
		&docs.inventory, &docs.seo, &docs.images, &docs.specifications, &docs.compatibility, &docs.videos, &docs.ratings,
		&product.CreatedAt, &product.UpdatedAt,
		&categoryID, &categoryName,
	)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := unmarshalDocuments(&docs, product); err != nil {
		return nil, err
	}

	if categoryID.Valid {
		product.Category = &models.Category{ID: categoryID.String, Name: categoryName.String}
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	docs, err := marshalDocuments(product)
	if err != nil {
		return err
	}

	query := `
		UPDATE products SET category_id = $1, name = $2, description = $3, short_description = $4, sku = $5, brand = $6,
		price = $7, compare_at_price = $8, featured = $9, status = $10, tags = $11,
		inventory = $12, seo = $13, images = $14, specifications = $15, compatibility = $16, videos = $17, ratings = $18,
		updated_at = NOW()
		WHERE id = $19
		RETURNING created_at, updated_at
	`

	err = r.DB.QueryRowContext(dbCtx, query,
		product.CategoryID, product.Name, product.Description, product.ShortDescription, product.SKU, product.Brand,
		product.Price, product.CompareAtPrice, product.Featured, product.Status, pq.Array(product.Tags),
		docs.inventory, docs.seo, docs.images, docs.specifications, docs.compatibility, docs.videos, docs.ratings,
		product.ID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

func unmarshalDocuments(docs *productDocuments, p *models.Product) error {
	targets := []struct {
		name string
		src  []byte
		dst  any
	}{
		{"inventory", docs.inventory, &p.Inventory},
		{"seo", docs.seo, &p.SEO},
		{"images", docs.images, &p.Images},
		{"specifications", docs.specifications, &p.Specifications},
		{"compatibility", docs.compatibility, &p.Compatibility},
		{"videos", docs.videos, &p.Videos},
		{"ratings", docs.ratings, &p.Ratings},
	}

	for _, t := range targets {
		if len(t.src) == 0 {
			continue
		}
		if err := json.Unmarshal(t.src, t.dst); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", t.name, err)
		}
	}

	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
