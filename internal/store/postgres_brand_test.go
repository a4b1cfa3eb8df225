package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paint-catalog-service/internal/domain"
)

// Helper function to create a mock DB and PostgresStore for testing
func newMockDBAndStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresStore) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	store := NewPostgresStore(db)
	require.NotNil(t, store, "Store should not be nil")

	return db, mock, store
}

// Helper function to get a pointer (useful for optional fields in domain structs)
func PtrTo[T any](v T) *T {
	return &v
}

const (
	brandID    = "7b0e8c1a-9b0f-4a6e-8f2d-0c1b2a3d4e5f"
	subBrandID = "1f2e3d4c-5b6a-4708-9a8b-7c6d5e4f3a2b"
)

func TestPostgresStore_CreateBrand(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	brandToCreate := &domain.Brand{Name: "Dulux", Status: domain.StatusActive}

	rows := sqlmock.NewRows([]string{"id", "name", "status", "created_at", "updated_at"}).
		AddRow(brandID, brandToCreate.Name, "active", now, now)

	mock.ExpectQuery(`INSERT INTO catalog\.brands \(name, status\)`).
		WithArgs(brandToCreate.Name, "active").
		WillReturnRows(rows)

	created, err := store.CreateBrand(context.Background(), brandToCreate)

	require.NoError(t, err, "CreateBrand should not return an error")
	require.NotNil(t, created, "Created brand should not be nil")
	assert.Equal(t, brandID, created.ID)
	assert.Equal(t, brandToCreate.Name, created.Name)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.NotNil(t, created.SubBrands, "SubBrands should render as an empty list, not null")
	assert.Empty(t, created.SubBrands)

	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_ListBrands_EmbedsSubBrands(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	otherBrandID := "2a1b3c4d-5e6f-4a0b-8c9d-0e1f2a3b4c5d"

	brandRows := sqlmock.NewRows([]string{"id", "name", "status", "created_at", "updated_at"}).
		AddRow(brandID, "Dulux", "active", now, now).
		AddRow(otherBrandID, "Crown", "active", now, now)
	mock.ExpectQuery(`SELECT id, name, status, created_at, updated_at\s+FROM catalog\.brands`).
		WillReturnRows(brandRows)

	subRows := sqlmock.NewRows([]string{"id", "brand_id", "name", "status", "created_at", "updated_at"}).
		AddRow(subBrandID, brandID, "Weathershield", "active", now, now)
	mock.ExpectQuery(`FROM catalog\.sub_brands\s+WHERE brand_id = ANY\(\$1\)`).
		WithArgs(pq.Array([]string{brandID, otherBrandID})).
		WillReturnRows(subRows)

	brands, err := store.ListBrands(context.Background(), ListParams{})

	require.NoError(t, err, "ListBrands should not return an error")
	require.Len(t, brands, 2)
	require.Len(t, brands[0].SubBrands, 1, "First brand should embed its sub-brand")
	assert.Equal(t, "Weathershield", brands[0].SubBrands[0].Name)
	assert.NotNil(t, brands[1].SubBrands)
	assert.Empty(t, brands[1].SubBrands, "Brand without sub-brands should carry an empty list")

	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_ListBrands_StatusFilter(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectQuery(`FROM catalog\.brands WHERE status = \$1`).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "created_at", "updated_at"}))

	brands, err := store.ListBrands(context.Background(), ListParams{Status: PtrTo(domain.StatusActive)})

	require.NoError(t, err)
	assert.Empty(t, brands)
	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_UpdateBrand_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE catalog\.brands`).
		WithArgs("Dulux", "inactive", brandID).
		WillReturnError(sql.ErrNoRows)

	updated, err := store.UpdateBrand(context.Background(), &domain.Brand{
		ID: brandID, Name: "Dulux", Status: domain.StatusInactive,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBrandNotFound), "Error should be ErrBrandNotFound")
	assert.Nil(t, updated)
	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_ArchiveBrand(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE catalog\.brands SET status = 'archived'`).
		WithArgs(brandID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.ArchiveBrand(context.Background(), brandID)

	require.NoError(t, err, "ArchiveBrand should not return an error")
	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_ArchiveBrand_AlreadyArchived(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	// The archive UPDATE matches already-archived rows, so repeating the
	// call still affects one row and succeeds.
	mock.ExpectExec(`UPDATE catalog\.brands SET status = 'archived'`).
		WithArgs(brandID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.ArchiveBrand(context.Background(), brandID)

	require.NoError(t, err, "Archiving an archived brand should stay a success")
	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_ArchiveBrand_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE catalog\.brands SET status = 'archived'`).
		WithArgs(brandID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.ArchiveBrand(context.Background(), brandID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBrandNotFound), "Error should be ErrBrandNotFound")
	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_CreateSubBrand_InvalidBrand(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	pqErr := &pq.Error{Code: "23503", Constraint: "sub_brands_brand_id_fkey"}
	mock.ExpectQuery(`INSERT INTO catalog\.sub_brands`).
		WithArgs(brandID, "Weathershield", "active").
		WillReturnError(pqErr)

	created, err := store.CreateSubBrand(context.Background(), &domain.SubBrand{
		BrandID: brandID, Name: "Weathershield", Status: domain.StatusActive,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidReference), "Error should be ErrInvalidReference")
	assert.Nil(t, created)
	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_GetSubBrandByID_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectQuery(`FROM catalog\.sub_brands\s+WHERE id = \$1`).
		WithArgs(subBrandID).
		WillReturnError(sql.ErrNoRows)

	sb, err := store.GetSubBrandByID(context.Background(), subBrandID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubBrandNotFound), "Error should be ErrSubBrandNotFound")
	assert.Nil(t, sb)
	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_ListCategories_ProductsCount(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	categoryID := "3c4d5e6f-7a8b-4c0d-9e1f-2a3b4c5d6e7f"

	rows := sqlmock.NewRows([]string{"id", "name", "status", "products_count", "created_at", "updated_at"}).
		AddRow(categoryID, "Interior", "active", 7, now, now)
	mock.ExpectQuery(`COUNT\(p\.id\) AS products_count\s+FROM catalog\.categories c\s+LEFT JOIN catalog\.products p`).
		WillReturnRows(rows)

	categories, err := store.ListCategories(context.Background(), ListParams{})

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 7, categories[0].ProductsCount)
	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}
