package domain

import "time"

// CustomerRole role of a customer account
type CustomerRole string

const (
	RoleCustomer CustomerRole = "customer"
	RoleAdmin    CustomerRole = "admin"
)

// LoyaltyRewardThreshold сколько штампов дают один бесплатный визит.
// Счётчик только накапливается, списание штампов сервис не выполняет.
const LoyaltyRewardThreshold = 5

// Customer represents a registered customer of the carwash
type Customer struct {
	ID            int64
	Phone         string
	Name          string
	Role          CustomerRole
	LoyaltyStamps int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin returns true for operator accounts
func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// FreeWashes returns the number of earned free washes (display helper)
func (c *Customer) FreeWashes() int {
	return c.LoyaltyStamps / LoyaltyRewardThreshold
}

// StampsTowardNext returns progress toward the next free wash (display helper)
func (c *Customer) StampsTowardNext() int {
	return c.LoyaltyStamps % LoyaltyRewardThreshold
}
