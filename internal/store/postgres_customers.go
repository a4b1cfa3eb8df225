package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"paint-catalog-service/internal/domain"
)

// --- Pricelists ---

func (s *PostgresStore) CreatePricelist(ctx context.Context, pl *domain.Pricelist) (*domain.Pricelist, error) {
	query := `
		INSERT INTO catalog.pricelists (name, description, status)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, status, created_at, updated_at;
	`
	var created domain.Pricelist
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, query, pl.Name, pl.Description, string(pl.Status)).Scan(
		&created.ID, &created.Name, &description, &created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("store: CreatePricelist failed to scan row: %w", err)
	}
	created.Description = nullStr(description)
	return &created, nil
}

func (s *PostgresStore) ListPricelists(ctx context.Context, params ListParams) ([]domain.Pricelist, error) {
	where, args := statusFilter(params, "status")
	query := `
		SELECT id, name, description, status, created_at, updated_at
		FROM catalog.pricelists` + where + `
		ORDER BY name ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListPricelists failed to query pricelists: %w", err)
	}
	defer rows.Close()

	pricelists := make([]domain.Pricelist, 0)
	for rows.Next() {
		var pl domain.Pricelist
		var description sql.NullString
		if err := rows.Scan(&pl.ID, &pl.Name, &description, &pl.Status, &pl.CreatedAt, &pl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: ListPricelists failed to scan row: %w", err)
		}
		pl.Description = nullStr(description)
		pricelists = append(pricelists, pl)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListPricelists iteration error: %w", err)
	}
	return pricelists, nil
}

func (s *PostgresStore) UpdatePricelist(ctx context.Context, pl *domain.Pricelist) (*domain.Pricelist, error) {
	query := `
		UPDATE catalog.pricelists
		SET name = $1, description = $2, status = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING id, name, description, status, created_at, updated_at;
	`
	var updated domain.Pricelist
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, query, pl.Name, pl.Description, string(pl.Status), pl.ID).Scan(
		&updated.ID, &updated.Name, &description, &updated.Status, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPricelistNotFound
		}
		return nil, fmt.Errorf("store: UpdatePricelist failed to scan row: %w", err)
	}
	updated.Description = nullStr(description)
	return &updated, nil
}

func (s *PostgresStore) ArchivePricelist(ctx context.Context, id string) error {
	return s.archiveRow(ctx, "catalog.pricelists", id, ErrPricelistNotFound)
}

// --- Price entries ---

func (s *PostgresStore) ListPriceEntries(ctx context.Context, pricelistID string) ([]domain.PriceEntry, error) {
	query := `
		SELECT id, pricelist_id, variant_id, price, created_at, updated_at
		FROM catalog.pricelist_items
		WHERE pricelist_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := s.db.QueryContext(ctx, query, pricelistID)
	if err != nil {
		return nil, fmt.Errorf("store: ListPriceEntries failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.PriceEntry, 0)
	for rows.Next() {
		var e domain.PriceEntry
		if err := rows.Scan(&e.ID, &e.PricelistID, &e.VariantID, &e.Price, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: ListPriceEntries failed to scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListPriceEntries iteration error: %w", err)
	}
	return entries, nil
}

// UpsertPriceEntry sets the price for (pricelist, variant), creating the
// entry on first write. Price entries are never deleted by this layer.
func (s *PostgresStore) UpsertPriceEntry(ctx context.Context, pricelistID, variantID string, price decimal.Decimal) (*domain.PriceEntry, error) {
	query := `
		INSERT INTO catalog.pricelist_items (pricelist_id, variant_id, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (pricelist_id, variant_id)
		DO UPDATE SET price = EXCLUDED.price, updated_at = CURRENT_TIMESTAMP
		RETURNING id, pricelist_id, variant_id, price, created_at, updated_at;
	`
	var e domain.PriceEntry
	err := s.db.QueryRowContext(ctx, query, pricelistID, variantID, price).Scan(
		&e.ID, &e.PricelistID, &e.VariantID, &e.Price, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("store: UpsertPriceEntry failed to scan row: %w", mapPqError(err, nil, ErrInvalidReference))
	}
	return &e, nil
}

// GetProductsForPricelist resolves the customer catalog: active products,
// their active variants, and each variant's price entry for the given
// pricelist. The price join is a LEFT JOIN: a variant without an entry
// stays in the listing with no price, it never disappears and never reads
// as zero.
func (s *PostgresStore) GetProductsForPricelist(ctx context.Context, pricelistID string) ([]domain.CustomerProduct, error) {
	query := `
		SELECT p.id, p.name, p.description, p.image_url,
			b.id, b.name, sb.id, sb.name, c.id, c.name,
			v.id, v.sku, v.color, s.id, s.name, pi.price
		FROM catalog.products p
		LEFT JOIN catalog.brands b ON b.id = p.brand_id
		LEFT JOIN catalog.sub_brands sb ON sb.id = p.sub_brand_id
		LEFT JOIN catalog.categories c ON c.id = p.category_id
		LEFT JOIN catalog.product_variants v ON v.product_id = p.id AND v.status = 'active'
		LEFT JOIN catalog.sizes s ON s.id = v.size_id
		LEFT JOIN catalog.pricelist_items pi ON pi.variant_id = v.id AND pi.pricelist_id = $1
		WHERE p.status = 'active'
		ORDER BY p.created_at DESC, v.created_at ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, pricelistID)
	if err != nil {
		return nil, fmt.Errorf("store: GetProductsForPricelist failed to query: %w", err)
	}
	defer rows.Close()

	products := make([]domain.CustomerProduct, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			productID, productName            string
			description, imageURL             sql.NullString
			bID, bName, sbID, sbName          sql.NullString
			cID, cName                        sql.NullString
			variantID, sku, color, szID, szNm sql.NullString
			price                             decimal.NullDecimal
		)
		if err := rows.Scan(
			&productID, &productName, &description, &imageURL,
			&bID, &bName, &sbID, &sbName, &cID, &cName,
			&variantID, &sku, &color, &szID, &szNm, &price,
		); err != nil {
			return nil, fmt.Errorf("store: GetProductsForPricelist failed to scan row: %w", err)
		}

		i, ok := index[productID]
		if !ok {
			i = len(products)
			index[productID] = i
			products = append(products, domain.CustomerProduct{
				ID:          productID,
				Name:        productName,
				Description: nullStr(description),
				ImageURL:    nullStr(imageURL),
				Brand:       scanRef(bID, bName),
				SubBrand:    scanRef(sbID, sbName),
				Category:    scanRef(cID, cName),
				Variants:    []domain.CustomerVariant{},
			})
		}

		// Products without any active variant still produce one row, with
		// every variant column NULL.
		if !variantID.Valid {
			continue
		}
		cv := domain.CustomerVariant{
			ID:    variantID.String,
			SKU:   sku.String,
			Color: nullStr(color),
			Size:  scanRef(szID, szNm),
		}
		if price.Valid {
			p := price.Decimal
			cv.Price = &p
			cv.PriceAvailable = true
		}
		products[i].Variants = append(products[i].Variants, cv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: GetProductsForPricelist iteration error: %w", err)
	}
	return products, nil
}

// --- Customers ---

const customerColumns = `
		cu.id, cu.company_name, cu.contact_person, cu.pricelist_id, cu.user_id, cu.status,
		pl.id, pl.name, cu.created_at, cu.updated_at`

func scanCustomer(scanner interface{ Scan(...interface{}) error }) (*domain.Customer, error) {
	var cu domain.Customer
	var pricelistID, userID, plID, plName sql.NullString
	err := scanner.Scan(
		&cu.ID, &cu.CompanyName, &cu.ContactPerson, &pricelistID, &userID, &cu.Status,
		&plID, &plName, &cu.CreatedAt, &cu.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	cu.PricelistID = nullStr(pricelistID)
	cu.UserID = nullStr(userID)
	cu.Pricelist = scanRef(plID, plName)
	return &cu, nil
}

// CreateCustomer inserts the customer record only. It never provisions a
// login: user_id stays NULL until a higher-privilege process links one.
func (s *PostgresStore) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	query := `
		WITH inserted AS (
			INSERT INTO catalog.customers (company_name, contact_person, pricelist_id, status)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		)
		SELECT` + customerColumns + `
		FROM inserted cu
		LEFT JOIN catalog.pricelists pl ON pl.id = cu.pricelist_id;
	`
	row := s.db.QueryRowContext(ctx, query,
		customer.CompanyName, customer.ContactPerson, customer.PricelistID, string(customer.Status),
	)
	created, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("store: CreateCustomer failed to scan row: %w", mapPqError(err, nil, ErrInvalidReference))
	}
	return created, nil
}

func (s *PostgresStore) ListCustomers(ctx context.Context, params ListParams) ([]domain.Customer, error) {
	where, args := statusFilter(params, "cu.status")
	query := `
		SELECT` + customerColumns + `
		FROM catalog.customers cu
		LEFT JOIN catalog.pricelists pl ON pl.id = cu.pricelist_id` + where + `
		ORDER BY cu.created_at DESC;
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListCustomers failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		cu, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListCustomers failed to scan row: %w", err)
		}
		customers = append(customers, *cu)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListCustomers iteration error: %w", err)
	}
	return customers, nil
}

func (s *PostgresStore) UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	query := `
		WITH updated AS (
			UPDATE catalog.customers
			SET company_name = $1, contact_person = $2, pricelist_id = $3, status = $4, updated_at = CURRENT_TIMESTAMP
			WHERE id = $5
			RETURNING *
		)
		SELECT` + customerColumns + `
		FROM updated cu
		LEFT JOIN catalog.pricelists pl ON pl.id = cu.pricelist_id;
	`
	row := s.db.QueryRowContext(ctx, query,
		customer.CompanyName, customer.ContactPerson, customer.PricelistID, string(customer.Status), customer.ID,
	)
	updated, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("store: UpdateCustomer failed to scan row: %w", mapPqError(err, nil, ErrInvalidReference))
	}
	return updated, nil
}

func (s *PostgresStore) ArchiveCustomer(ctx context.Context, id string) error {
	return s.archiveRow(ctx, "catalog.customers", id, ErrCustomerNotFound)
}

func (s *PostgresStore) GetCustomerByUserID(ctx context.Context, userID string) (*domain.Customer, error) {
	query := `
		SELECT` + customerColumns + `
		FROM catalog.customers cu
		LEFT JOIN catalog.pricelists pl ON pl.id = cu.pricelist_id
		WHERE cu.user_id = $1;
	`
	customer, err := scanCustomer(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("store: GetCustomerByUserID failed to scan row: %w", err)
	}
	return customer, nil
}

// --- Users ---

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, role, created_at
		FROM catalog.users
		WHERE email = $1;
	`
	var u domain.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("store: GetUserByEmail failed to scan row: %w", err)
	}
	return &u, nil
}

// --- Dashboard and settings ---

func (s *PostgresStore) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM catalog.products),
			(SELECT COUNT(*) FROM catalog.brands WHERE status = 'active'),
			(SELECT COUNT(*) FROM catalog.categories),
			(SELECT COUNT(*) FROM catalog.customers);
	`
	var stats domain.DashboardStats
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalProducts, &stats.ActiveBrands, &stats.Categories, &stats.Customers,
	)
	if err != nil {
		return nil, fmt.Errorf("store: GetDashboardStats failed to scan row: %w", err)
	}
	return &stats, nil
}

func (s *PostgresStore) GetSettings(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT company_name, contact_email, notify_new_orders, notify_new_customers, updated_at
		FROM catalog.settings
		WHERE id = 1;
	`
	var st domain.Settings
	err := s.db.QueryRowContext(ctx, query).Scan(
		&st.CompanyName, &st.ContactEmail, &st.NotifyNewOrders, &st.NotifyNewCustomers, &st.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("store: GetSettings failed to scan row: %w", err)
	}
	return &st, nil
}

func (s *PostgresStore) UpdateSettings(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	query := `
		UPDATE catalog.settings
		SET company_name = $1, contact_email = $2, notify_new_orders = $3, notify_new_customers = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
		RETURNING company_name, contact_email, notify_new_orders, notify_new_customers, updated_at;
	`
	var st domain.Settings
	err := s.db.QueryRowContext(ctx, query,
		settings.CompanyName, settings.ContactEmail, settings.NotifyNewOrders, settings.NotifyNewCustomers,
	).Scan(&st.CompanyName, &st.ContactEmail, &st.NotifyNewOrders, &st.NotifyNewCustomers, &st.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: UpdateSettings failed to scan row: %w", err)
	}
	return &st, nil
}
