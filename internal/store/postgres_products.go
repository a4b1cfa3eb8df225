package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"paint-catalog-service/internal/domain"
)

// scanRef builds a Ref from a nullable joined id/name pair.
func scanRef(id, name sql.NullString) *domain.Ref {
	if !id.Valid {
		return nil
	}
	return &domain.Ref{ID: id.String, Name: name.String}
}

func nullStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

const productColumns = `
		p.id, p.name, p.description, p.image_url,
		p.brand_id, p.sub_brand_id, p.category_id, p.status,
		b.id, b.name, sb.id, sb.name, c.id, c.name,
		p.created_at, p.updated_at`

const productJoins = `
	FROM catalog.products p
	LEFT JOIN catalog.brands b ON b.id = p.brand_id
	LEFT JOIN catalog.sub_brands sb ON sb.id = p.sub_brand_id
	LEFT JOIN catalog.categories c ON c.id = p.category_id`

func scanProduct(scanner interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var p domain.Product
	var description, imageURL sql.NullString
	var brandID, subBrandID, categoryID sql.NullString
	var bID, bName, sbID, sbName, cID, cName sql.NullString
	err := scanner.Scan(
		&p.ID, &p.Name, &description, &imageURL,
		&brandID, &subBrandID, &categoryID, &p.Status,
		&bID, &bName, &sbID, &sbName, &cID, &cName,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = nullStr(description)
	p.ImageURL = nullStr(imageURL)
	p.BrandID = nullStr(brandID)
	p.SubBrandID = nullStr(subBrandID)
	p.CategoryID = nullStr(categoryID)
	p.Brand = scanRef(bID, bName)
	p.SubBrand = scanRef(sbID, sbName)
	p.Category = scanRef(cID, cName)
	return &p, nil
}

// --- Products ---

func (s *PostgresStore) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		WITH inserted AS (
			INSERT INTO catalog.products (name, description, image_url, brand_id, sub_brand_id, category_id, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT` + productColumns + `
		FROM inserted p
		LEFT JOIN catalog.brands b ON b.id = p.brand_id
		LEFT JOIN catalog.sub_brands sb ON sb.id = p.sub_brand_id
		LEFT JOIN catalog.categories c ON c.id = p.category_id;
	`
	row := s.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.ImageURL,
		product.BrandID, product.SubBrandID, product.CategoryID, string(product.Status),
	)
	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("store: CreateProduct failed to scan row: %w", mapPqError(err, nil, ErrInvalidReference))
	}
	return created, nil
}

func (s *PostgresStore) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT` + productColumns + productJoins + `
		WHERE p.id = $1;
	`
	product, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: GetProductByID failed to scan row: %w", err)
	}
	return product, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context, params ListParams) ([]domain.Product, error) {
	where, args := statusFilter(params, "p.status")
	query := `
		SELECT` + productColumns + productJoins + where + `
		ORDER BY p.created_at DESC;
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListProducts failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProducts iteration error: %w", err)
	}
	return products, nil
}

// UpdateProduct rewrites every mutable product field, the sub-brand
// included: callers submit the sub-brand together with its brand (the API
// layer validates the pairing before the write), so switching brand and
// selecting one of the new brand's sub-brands lands in a single update.
// A brand change without a matching sub-brand arrives with SubBrandID nil
// and clears the column.
func (s *PostgresStore) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		WITH updated AS (
			UPDATE catalog.products
			SET name = $1, description = $2, image_url = $3, brand_id = $4,
				sub_brand_id = $5, category_id = $6, status = $7,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = $8
			RETURNING *
		)
		SELECT` + productColumns + `
		FROM updated p
		LEFT JOIN catalog.brands b ON b.id = p.brand_id
		LEFT JOIN catalog.sub_brands sb ON sb.id = p.sub_brand_id
		LEFT JOIN catalog.categories c ON c.id = p.category_id;
	`
	row := s.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.ImageURL, product.BrandID,
		product.SubBrandID, product.CategoryID, string(product.Status), product.ID,
	)
	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: UpdateProduct failed to scan row: %w", mapPqError(err, nil, ErrInvalidReference))
	}
	return updated, nil
}

func (s *PostgresStore) ArchiveProduct(ctx context.Context, id string) error {
	return s.archiveRow(ctx, "catalog.products", id, ErrProductNotFound)
}

// --- Product variants ---

func scanVariant(scanner interface{ Scan(...interface{}) error }) (*domain.ProductVariant, error) {
	var v domain.ProductVariant
	var sizeID, color, szID, szName sql.NullString
	err := scanner.Scan(
		&v.ID, &v.ProductID, &sizeID, &color, &v.SKU, &v.Status,
		&szID, &szName, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.SizeID = nullStr(sizeID)
	v.Color = nullStr(color)
	v.Size = scanRef(szID, szName)
	return &v, nil
}

const variantColumns = `
		v.id, v.product_id, v.size_id, v.color, v.sku, v.status,
		s.id, s.name, v.created_at, v.updated_at`

func (s *PostgresStore) CreateVariant(ctx context.Context, variant *domain.ProductVariant) (*domain.ProductVariant, error) {
	query := `
		WITH inserted AS (
			INSERT INTO catalog.product_variants (product_id, size_id, color, sku, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT` + variantColumns + `
		FROM inserted v
		LEFT JOIN catalog.sizes s ON s.id = v.size_id;
	`
	row := s.db.QueryRowContext(ctx, query,
		variant.ProductID, variant.SizeID, variant.Color, variant.SKU, string(variant.Status),
	)
	created, err := scanVariant(row)
	if err != nil {
		return nil, fmt.Errorf("store: CreateVariant failed to scan row: %w", mapPqError(err, ErrVariantSKUExists, ErrInvalidReference))
	}
	return created, nil
}

func (s *PostgresStore) ListVariants(ctx context.Context, productID string, params ListParams) ([]domain.ProductVariant, error) {
	query := `
		SELECT` + variantColumns + `
		FROM catalog.product_variants v
		LEFT JOIN catalog.sizes s ON s.id = v.size_id
		WHERE v.product_id = $1
	`
	args := []interface{}{productID}
	if params.Status != nil {
		query += ` AND v.status = $2`
		args = append(args, string(*params.Status))
	}
	query += ` ORDER BY v.created_at DESC;`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListVariants failed to query variants: %w", err)
	}
	defer rows.Close()

	variants := make([]domain.ProductVariant, 0)
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListVariants failed to scan variant row: %w", err)
		}
		variants = append(variants, *v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListVariants iteration error: %w", err)
	}
	return variants, nil
}

func (s *PostgresStore) UpdateVariant(ctx context.Context, variant *domain.ProductVariant) (*domain.ProductVariant, error) {
	query := `
		WITH updated AS (
			UPDATE catalog.product_variants
			SET size_id = $1, color = $2, sku = $3, status = $4, updated_at = CURRENT_TIMESTAMP
			WHERE id = $5
			RETURNING *
		)
		SELECT` + variantColumns + `
		FROM updated v
		LEFT JOIN catalog.sizes s ON s.id = v.size_id;
	`
	row := s.db.QueryRowContext(ctx, query,
		variant.SizeID, variant.Color, variant.SKU, string(variant.Status), variant.ID,
	)
	updated, err := scanVariant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVariantNotFound
		}
		return nil, fmt.Errorf("store: UpdateVariant failed to scan row: %w", mapPqError(err, ErrVariantSKUExists, ErrInvalidReference))
	}
	return updated, nil
}

func (s *PostgresStore) ArchiveVariant(ctx context.Context, id string) error {
	return s.archiveRow(ctx, "catalog.product_variants", id, ErrVariantNotFound)
}
