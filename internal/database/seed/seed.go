// Package seed fills an empty store with demo customers and accounts.
package seed

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-banking/internal/mapper"
	"github.com/deppfellow/go-banking/internal/model"
	"github.com/deppfellow/go-banking/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Entry is one demo customer with a single checking account.
type Entry struct {
	CustomerNumber string
	FirstName      string
	LastName       string
	IBAN           string
	Balance        string
}

var DemoData = []Entry{
	{"K0001", "Max", "Mustermann", "DE89370400440532013000", "1000.50"},
	{"K0002", "Anna", "Musterfrau", "DE62370400440532013001", "2000.00"},
	{"K0003", "John", "Doe", "DE35370400440532013002", "1500.75"},
	{"K0004", "Jane", "Doe", "DE08370400440532013003", "3000.20"},
	{"K0005", "Lara", "Lustig", "DE78370400440532013004", "500.10"},
}

var entryMapper = mapper.NewSplit(func(e Entry) (model.Customer, model.CheckingAccount) {
	customer := model.Customer{
		Number:    model.CustomerNumber(e.CustomerNumber),
		FirstName: e.FirstName,
		LastName:  e.LastName,
	}
	account := model.NewCheckingAccount(
		model.IBAN(e.IBAN),
		customer.Number,
		model.RestoreAmount(decimal.RequireFromString(e.Balance), model.DefaultCurrency),
	)
	return customer, *account
})

// Demo inserts entries in one transaction. It does nothing when customers
// already exist and reports whether it seeded.
func Demo(ctx context.Context, repos *repository.Repositories, logger *zerolog.Logger, entries []Entry) (bool, error) {
	count, err := repos.Customers.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		logger.Debug().Int64("customers", count).Msg("store not empty, skipping demo data")
		return false, nil
	}

	customers, accounts := entryMapper.MapList(entries)

	err = repos.Transaction(ctx, func(tx *repository.Repositories) error {
		for i := range customers {
			if err := tx.Customers.Create(ctx, &customers[i]); err != nil {
				return err
			}
			if err := tx.Accounts.Create(ctx, &accounts[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seeding demo data: %w", err)
	}

	logger.Info().Int("customers", len(customers)).Msg("seeded demo data")
	return true, nil
}
