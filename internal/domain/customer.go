package domain

import (
	"time"
)

// Roles attached to an identity. The role claim gates which route subtree
// is reachable; an identity without a role resolves to RoleCustomer.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// Customer is a storefront account. PricelistID selects the price schedule
// the customer sees; UserID links the customer to a login identity.
// Both links are optional: provisioning a login is outside this service's
// write authority and happens in a higher-privilege backend process.
type Customer struct {
	ID            string    `json:"id"`
	CompanyName   string    `json:"company_name"`
	ContactPerson string    `json:"contact_person"`
	PricelistID   *string   `json:"pricelist_id,omitempty"`
	UserID        *string   `json:"user_id,omitempty"`
	Status        Status    `json:"status"`
	Pricelist     *Ref      `json:"pricelist,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// User is a login identity. This service only ever reads users (at sign-in);
// it never creates, updates or archives them.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Settings is the single-row application settings record.
type Settings struct {
	CompanyName        string    `json:"company_name"`
	ContactEmail       string    `json:"contact_email"`
	NotifyNewOrders    bool      `json:"notify_new_orders"`
	NotifyNewCustomers bool      `json:"notify_new_customers"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DashboardStats backs the admin dashboard counters.
type DashboardStats struct {
	TotalProducts int `json:"total_products"`
	ActiveBrands  int `json:"active_brands"`
	Categories    int `json:"categories"`
	Customers     int `json:"customers"`
}
