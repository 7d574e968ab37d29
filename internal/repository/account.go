package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/go-banking/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const accountsTable = "checking_accounts"

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// List returns all checking accounts ordered by IBAN.
func (r *AccountRepository) List(ctx context.Context) ([]*model.CheckingAccount, error) {
	var records []AccountRecord
	if err := r.db.WithContext(ctx).Order("iban").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return toAccounts(records), nil
}

func (r *AccountRepository) ListByCustomer(ctx context.Context, number model.CustomerNumber) ([]*model.CheckingAccount, error) {
	var records []AccountRecord
	err := r.db.WithContext(ctx).
		Where("customer_number = ?", number.String()).
		Order("iban").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts of customer %s: %w", number, err)
	}
	return toAccounts(records), nil
}

func (r *AccountRepository) GetByIBAN(ctx context.Context, iban model.IBAN) (*model.CheckingAccount, error) {
	return r.get(r.db.WithContext(ctx), iban)
}

// GetByIBANForUpdate locks the row until the surrounding transaction ends.
// Dialects without row locks (SQLite) ignore the locking clause.
func (r *AccountRepository) GetByIBANForUpdate(ctx context.Context, iban model.IBAN) (*model.CheckingAccount, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), iban)
}

func (r *AccountRepository) get(db *gorm.DB, iban model.IBAN) (*model.CheckingAccount, error) {
	var record AccountRecord
	err := db.Where("iban = ?", iban.String()).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(accountsTable)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", iban, err)
	}

	account := accountMapper.ToOutput(record)
	return &account, nil
}

// GetWithOwner loads an account and its owning customer in one query.
func (r *AccountRepository) GetWithOwner(ctx context.Context, iban model.IBAN) (*model.Customer, *model.CheckingAccount, error) {
	var record AccountRecord
	err := r.db.WithContext(ctx).
		Joins("Customer").
		Where("checking_accounts.iban = ?", iban.String()).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, notFound(accountsTable)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get account %s: %w", iban, err)
	}
	if record.Customer == nil {
		return nil, nil, notFound(customersTable)
	}

	customer := customerMapper.ToOutput(*record.Customer)
	account := accountMapper.ToOutput(record)
	return &customer, &account, nil
}

func (r *AccountRepository) Exists(ctx context.Context, iban model.IBAN) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AccountRecord{}).
		Where("iban = ?", iban.String()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check account %s: %w", iban, err)
	}
	return count > 0, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *model.CheckingAccount) error {
	record := accountMapper.ToInput(*account)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to create account %s: %w", account.IBAN, err)
	}
	return nil
}

// UpdateBalance persists the balance of account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, account *model.CheckingAccount) error {
	result := r.db.WithContext(ctx).
		Model(&AccountRecord{}).
		Where("iban = ?", account.IBAN.String()).
		Updates(map[string]any{
			"balance":    account.Balance.Value(),
			"currency":   string(account.Balance.Currency()),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update balance of %s: %w", account.IBAN, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(accountsTable)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, iban model.IBAN) error {
	result := r.db.WithContext(ctx).
		Where("iban = ?", iban.String()).
		Delete(&AccountRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete account %s: %w", iban, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(accountsTable)
	}
	return nil
}
