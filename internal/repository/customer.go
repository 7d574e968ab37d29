package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/go-banking/internal/model"
	"gorm.io/gorm"
)

const customersTable = "customers"

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns all customers ordered by customer number.
func (r *CustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	records := make([]CustomerRecord, 0)
	if err := r.db.WithContext(ctx).Order("customer_number").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customerMapper.ToOutputs(records), nil
}

func (r *CustomerRepository) GetByNumber(ctx context.Context, number model.CustomerNumber) (*model.Customer, error) {
	var record CustomerRecord
	err := r.db.WithContext(ctx).
		Where("customer_number = ?", number.String()).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(customersTable)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", number, err)
	}

	customer := customerMapper.ToOutput(record)
	return &customer, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, number model.CustomerNumber) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CustomerRecord{}).
		Where("customer_number = ?", number.String()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check customer %s: %w", number, err)
	}
	return count > 0, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&CustomerRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	record := customerMapper.ToInput(*customer)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to create customer %s: %w", customer.Number, err)
	}
	return nil
}

// Update overwrites the names of an existing customer.
func (r *CustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	result := r.db.WithContext(ctx).
		Model(&CustomerRecord{}).
		Where("customer_number = ?", customer.Number.String()).
		Updates(map[string]any{
			"first_name": customer.FirstName,
			"last_name":  customer.LastName,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update customer %s: %w", customer.Number, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(customersTable)
	}
	return nil
}

// Delete removes a customer together with its accounts.
func (r *CustomerRepository) Delete(ctx context.Context, number model.CustomerNumber) error {
	result := r.db.WithContext(ctx).
		Where("customer_number = ?", number.String()).
		Delete(&CustomerRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete customer %s: %w", number, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(customersTable)
	}
	return nil
}
