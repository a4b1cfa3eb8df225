package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"

	"paint-catalog-service/internal/domain"
)

// Predefined errors for store operations
var (
	ErrBrandNotFound     = errors.New("store: brand not found")
	ErrSubBrandNotFound  = errors.New("store: sub-brand not found")
	ErrCategoryNotFound  = errors.New("store: category not found")
	ErrSizeNotFound      = errors.New("store: size not found")
	ErrProductNotFound   = errors.New("store: product not found")
	ErrVariantNotFound   = errors.New("store: product variant not found")
	ErrPricelistNotFound = errors.New("store: pricelist not found")
	ErrCustomerNotFound  = errors.New("store: customer not found")
	ErrUserNotFound      = errors.New("store: user not found")
	ErrVariantSKUExists  = errors.New("store: variant SKU already exists")
	ErrInvalidReference  = errors.New("store: referenced row does not exist")
)

// Postgres error codes we translate into sentinel errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresStore implements every Storer interface using PostgreSQL.
// All tables live under the `catalog` schema; see migrations/.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// mapPqError translates a unique or FK violation into the supplied sentinel
// errors; anything else passes through.
func mapPqError(err error, onUnique, onFK error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			if onUnique != nil {
				return onUnique
			}
		case pgForeignKeyViolation:
			if onFK != nil {
				return onFK
			}
		}
	}
	return err
}

// archiveRow marks a row archived. Archiving an already-archived row still
// matches and succeeds, which keeps the operation idempotent; only a
// missing id reports notFound.
func (s *PostgresStore) archiveRow(ctx context.Context, table, id string, notFound error) error {
	query := fmt.Sprintf(`UPDATE %s SET status = 'archived', updated_at = CURRENT_TIMESTAMP WHERE id = $1;`, table)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("store: archive %s failed: %w", table, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: archive %s failed to get rows affected: %w", table, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

// statusFilter appends a status predicate when the params carry one.
// Queries using it take the status as their first argument.
func statusFilter(params ListParams, column string) (string, []interface{}) {
	if params.Status == nil {
		return "", nil
	}
	return fmt.Sprintf(" WHERE %s = $1", column), []interface{}{string(*params.Status)}
}

// --- Brands ---

func (s *PostgresStore) CreateBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	query := `
		INSERT INTO catalog.brands (name, status)
		VALUES ($1, $2)
		RETURNING id, name, status, created_at, updated_at;
	`
	var created domain.Brand
	err := s.db.QueryRowContext(ctx, query, brand.Name, string(brand.Status)).Scan(
		&created.ID, &created.Name, &created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("store: CreateBrand failed to scan row: %w", err)
	}
	created.SubBrands = []domain.SubBrand{}
	return &created, nil
}

// ListBrands returns brands with their sub-brands embedded, newest first.
// Sub-brands of archived state are still embedded; the caller's status
// filter applies to the brand rows only.
func (s *PostgresStore) ListBrands(ctx context.Context, params ListParams) ([]domain.Brand, error) {
	where, args := statusFilter(params, "status")
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM catalog.brands` + where + `
		ORDER BY created_at DESC;
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListBrands failed to query brands: %w", err)
	}
	defer rows.Close()

	brands := make([]domain.Brand, 0)
	index := make(map[string]int)
	ids := make([]string, 0)
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: ListBrands failed to scan brand row: %w", err)
		}
		b.SubBrands = []domain.SubBrand{}
		index[b.ID] = len(brands)
		ids = append(ids, b.ID)
		brands = append(brands, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListBrands iteration error: %w", err)
	}
	if len(brands) == 0 {
		return brands, nil
	}

	subQuery := `
		SELECT id, brand_id, name, status, created_at, updated_at
		FROM catalog.sub_brands
		WHERE brand_id = ANY($1)
		ORDER BY created_at DESC;
	`
	subRows, err := s.db.QueryContext(ctx, subQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("store: ListBrands failed to query sub-brands: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var sb domain.SubBrand
		if err := subRows.Scan(&sb.ID, &sb.BrandID, &sb.Name, &sb.Status, &sb.CreatedAt, &sb.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: ListBrands failed to scan sub-brand row: %w", err)
		}
		if i, ok := index[sb.BrandID]; ok {
			brands[i].SubBrands = append(brands[i].SubBrands, sb)
		}
	}
	if err = subRows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListBrands sub-brand iteration error: %w", err)
	}
	return brands, nil
}

func (s *PostgresStore) UpdateBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	query := `
		UPDATE catalog.brands
		SET name = $1, status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING id, name, status, created_at, updated_at;
	`
	var updated domain.Brand
	err := s.db.QueryRowContext(ctx, query, brand.Name, string(brand.Status), brand.ID).Scan(
		&updated.ID, &updated.Name, &updated.Status, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("store: UpdateBrand failed to scan row: %w", err)
	}
	updated.SubBrands = []domain.SubBrand{}
	return &updated, nil
}

func (s *PostgresStore) ArchiveBrand(ctx context.Context, id string) error {
	return s.archiveRow(ctx, "catalog.brands", id, ErrBrandNotFound)
}

// --- Sub-brands ---

func (s *PostgresStore) CreateSubBrand(ctx context.Context, sb *domain.SubBrand) (*domain.SubBrand, error) {
	query := `
		INSERT INTO catalog.sub_brands (brand_id, name, status)
		VALUES ($1, $2, $3)
		RETURNING id, brand_id, name, status, created_at, updated_at;
	`
	var created domain.SubBrand
	err := s.db.QueryRowContext(ctx, query, sb.BrandID, sb.Name, string(sb.Status)).Scan(
		&created.ID, &created.BrandID, &created.Name, &created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("store: CreateSubBrand failed to scan row: %w", mapPqError(err, nil, ErrInvalidReference))
	}
	return &created, nil
}

func (s *PostgresStore) ListSubBrands(ctx context.Context, brandID string, params ListParams) ([]domain.SubBrand, error) {
	query := `
		SELECT id, brand_id, name, status, created_at, updated_at
		FROM catalog.sub_brands
		WHERE brand_id = $1
	`
	args := []interface{}{brandID}
	if params.Status != nil {
		query += ` AND status = $2`
		args = append(args, string(*params.Status))
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListSubBrands failed to query sub-brands: %w", err)
	}
	defer rows.Close()

	subBrands := make([]domain.SubBrand, 0)
	for rows.Next() {
		var sb domain.SubBrand
		if err := rows.Scan(&sb.ID, &sb.BrandID, &sb.Name, &sb.Status, &sb.CreatedAt, &sb.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: ListSubBrands failed to scan row: %w", err)
		}
		subBrands = append(subBrands, sb)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListSubBrands iteration error: %w", err)
	}
	return subBrands, nil
}

func (s *PostgresStore) GetSubBrandByID(ctx context.Context, id string) (*domain.SubBrand, error) {
	query := `
		SELECT id, brand_id, name, status, created_at, updated_at
		FROM catalog.sub_brands
		WHERE id = $1;
	`
	var sb domain.SubBrand
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sb.ID, &sb.BrandID, &sb.Name, &sb.Status, &sb.CreatedAt, &sb.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubBrandNotFound
		}
		return nil, fmt.Errorf("store: GetSubBrandByID failed to scan row: %w", err)
	}
	return &sb, nil
}

func (s *PostgresStore) UpdateSubBrand(ctx context.Context, sb *domain.SubBrand) (*domain.SubBrand, error) {
	query := `
		UPDATE catalog.sub_brands
		SET name = $1, status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING id, brand_id, name, status, created_at, updated_at;
	`
	var updated domain.SubBrand
	err := s.db.QueryRowContext(ctx, query, sb.Name, string(sb.Status), sb.ID).Scan(
		&updated.ID, &updated.BrandID, &updated.Name, &updated.Status, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubBrandNotFound
		}
		return nil, fmt.Errorf("store: UpdateSubBrand failed to scan row: %w", err)
	}
	return &updated, nil
}

func (s *PostgresStore) ArchiveSubBrand(ctx context.Context, id string) error {
	return s.archiveRow(ctx, "catalog.sub_brands", id, ErrSubBrandNotFound)
}

// --- Categories ---

func (s *PostgresStore) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO catalog.categories (name, status)
		VALUES ($1, $2)
		RETURNING id, name, status, created_at, updated_at;
	`
	var created domain.Category
	err := s.db.QueryRowContext(ctx, query, category.Name, string(category.Status)).Scan(
		&created.ID, &created.Name, &created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("store: CreateCategory failed to scan row: %w", err)
	}
	return &created, nil
}

// ListCategories embeds a derived count of products referencing each
// category, which is why a product write invalidates cached category
// listings.
func (s *PostgresStore) ListCategories(ctx context.Context, params ListParams) ([]domain.Category, error) {
	where, args := statusFilter(params, "c.status")
	query := `
		SELECT c.id, c.name, c.status, COUNT(p.id) AS products_count, c.created_at, c.updated_at
		FROM catalog.categories c
		LEFT JOIN catalog.products p ON p.category_id = c.id` + where + `
		GROUP BY c.id
		ORDER BY c.created_at DESC;
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListCategories failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Status, &c.ProductsCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: ListCategories failed to scan row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListCategories iteration error: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		UPDATE catalog.categories
		SET name = $1, status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING id, name, status, created_at, updated_at;
	`
	var updated domain.Category
	err := s.db.QueryRowContext(ctx, query, category.Name, string(category.Status), category.ID).Scan(
		&updated.ID, &updated.Name, &updated.Status, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("store: UpdateCategory failed to scan row: %w", err)
	}
	return &updated, nil
}

func (s *PostgresStore) ArchiveCategory(ctx context.Context, id string) error {
	return s.archiveRow(ctx, "catalog.categories", id, ErrCategoryNotFound)
}

// --- Sizes ---

func (s *PostgresStore) CreateSize(ctx context.Context, size *domain.Size) (*domain.Size, error) {
	query := `
		INSERT INTO catalog.sizes (name, status)
		VALUES ($1, $2)
		RETURNING id, name, status, created_at, updated_at;
	`
	var created domain.Size
	err := s.db.QueryRowContext(ctx, query, size.Name, string(size.Status)).Scan(
		&created.ID, &created.Name, &created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("store: CreateSize failed to scan row: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) ListSizes(ctx context.Context, params ListParams) ([]domain.Size, error) {
	where, args := statusFilter(params, "status")
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM catalog.sizes` + where + `
		ORDER BY name ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListSizes failed to query sizes: %w", err)
	}
	defer rows.Close()

	sizes := make([]domain.Size, 0)
	for rows.Next() {
		var sz domain.Size
		if err := rows.Scan(&sz.ID, &sz.Name, &sz.Status, &sz.CreatedAt, &sz.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: ListSizes failed to scan row: %w", err)
		}
		sizes = append(sizes, sz)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListSizes iteration error: %w", err)
	}
	return sizes, nil
}

func (s *PostgresStore) UpdateSize(ctx context.Context, size *domain.Size) (*domain.Size, error) {
	query := `
		UPDATE catalog.sizes
		SET name = $1, status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING id, name, status, created_at, updated_at;
	`
	var updated domain.Size
	err := s.db.QueryRowContext(ctx, query, size.Name, string(size.Status), size.ID).Scan(
		&updated.ID, &updated.Name, &updated.Status, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSizeNotFound
		}
		return nil, fmt.Errorf("store: UpdateSize failed to scan row: %w", err)
	}
	return &updated, nil
}

func (s *PostgresStore) ArchiveSize(ctx context.Context, id string) error {
	return s.archiveRow(ctx, "catalog.sizes", id, ErrSizeNotFound)
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Println("INFO: Closing database connection pool...")
		if err := s.db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database connection pool: %v", err)
			return err
		}
	}
	return nil
}
