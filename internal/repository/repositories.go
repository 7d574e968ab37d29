// Package repository persists the domain model through gorm.
//
// Repositories translate between storage records and domain types with the
// mapper package and never return gorm records to callers. Lookups of
// missing rows fail with an error that IsNotFound recognises.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Repositories struct {
	db *gorm.DB

	Customers *CustomerRepository
	Accounts  *AccountRepository
	Bookings  *BookingRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:        db,
		Customers: NewCustomerRepository(db),
		Accounts:  NewAccountRepository(db),
		Bookings:  NewBookingRepository(db),
	}
}

// Transaction runs fn with repositories bound to one database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// notFound follows the "table:<name>:" convention sqlerr uses to name the
// missing entity.
func notFound(table string) error {
	return fmt.Errorf("table:%s: %w", table, gorm.ErrRecordNotFound)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
